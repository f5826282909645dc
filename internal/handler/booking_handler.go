package handler

import (
	"net/http"
	"strconv"
	"time"

	"hospital-ops-backend/internal/apperror"
	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/repository"
	"hospital-ops-backend/internal/service"
	"hospital-ops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService *service.BookingService
}

func NewBookingHandler(bookingService *service.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

type CreateBookingRequest struct {
	BookingType        string                      `json:"booking_type" binding:"required,oneof=appointment surgery test"`
	PatientID          uint                        `json:"patient_id" binding:"required"`
	DoctorID           uint                        `json:"doctor_id" binding:"required"`
	ScheduledStart     time.Time                   `json:"scheduled_start" binding:"required"`
	DurationMinutes    int                         `json:"duration_minutes" binding:"required,gt=0"`
	Notes              string                      `json:"notes"`
	AllocatedResources []service.AllocationRequest `json:"allocated_resources" binding:"omitempty,dive"`
}

// CreateBooking creates a booking, reserving any requested resources
// all-or-nothing. A conflict on any single resource fails the whole request.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	booking := &models.Booking{
		BookingType:     models.BookingType(req.BookingType),
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		ScheduledStart:  req.ScheduledStart,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	}

	created, err := h.bookingService.CreateBooking(booking, req.AllocatedResources, userID.(uint))
	if err != nil {
		utils.ErrorResponse(c, apperror.HTTPStatus(err), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Booking created successfully",
		"booking": created,
	})
}

// GetBooking retrieves a booking with its allocations
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.GetBooking(uint(id))
	if err != nil {
		utils.ErrorResponse(c, apperror.HTTPStatus(err), err.Error())
		return
	}

	utils.SuccessResponse(c, booking)
}

// ListBookings retrieves bookings matching optional query filters
func (h *BookingHandler) ListBookings(c *gin.Context) {
	filters := repository.BookingFilters{
		BookingType: models.BookingType(c.Query("type")),
		Status:      models.BookingStatus(c.Query("status")),
	}
	if v := c.Query("patient"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
			return
		}
		filters.PatientID = uint(id)
	}
	if v := c.Query("doctor"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid doctor ID")
			return
		}
		filters.DoctorID = uint(id)
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "from must be an RFC3339 timestamp")
			return
		}
		filters.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "to must be an RFC3339 timestamp")
			return
		}
		filters.To = t
	}

	bookings, err := h.bookingService.ListBookings(filters)
	if err != nil {
		utils.ErrorResponse(c, apperror.HTTPStatus(err), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// StartBooking transitions a booking to in_progress
func (h *BookingHandler) StartBooking(c *gin.Context) {
	h.transition(c, h.bookingService.StartBooking, "Booking started")
}

// CompleteBooking transitions a booking to completed, releasing non-bed resources
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	h.transition(c, h.bookingService.CompleteBooking, "Booking completed")
}

// CancelBooking transitions a booking to cancelled, releasing all resources
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transition(c, h.bookingService.CancelBooking, "Booking cancelled")
}

func (h *BookingHandler) transition(c *gin.Context, op func(uint, uint) (*models.Booking, error), message string) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	userID, _ := c.Get("userID")

	booking, err := op(uint(id), userID.(uint))
	if err != nil {
		utils.ErrorResponse(c, apperror.HTTPStatus(err), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": message,
		"booking": booking,
	})
}
