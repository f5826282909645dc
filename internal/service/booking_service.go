package service

import (
	"fmt"
	"log"

	"hospital-ops-backend/internal/apperror"
	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/repository"
)

// BookingService owns booking records and the booking status state machine.
// It never touches resource state itself; all reservation and release goes
// through the allocation engine.
type BookingService struct {
	bookingRepo BookingStore
	engine      Allocator
	auditRepo   AuditLogger
}

func NewBookingService(bookingRepo BookingStore, engine Allocator, auditRepo AuditLogger) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		engine:      engine,
		auditRepo:   auditRepo,
	}
}

// CreateBooking creates a booking and reserves the requested resources in one
// all-or-nothing flow. A booking with resource requests is persisted as
// pending and only promoted to scheduled once the allocation commits, so no
// reader ever observes a scheduled booking whose resources are unconfirmed.
// If any allocation fails the pending draft is rolled back and the typed
// conflict is returned; a booking with no resource requests is scheduled
// immediately.
func (s *BookingService) CreateBooking(booking *models.Booking, requests []AllocationRequest, userID uint) (*models.Booking, error) {
	if err := s.validateDraft(booking); err != nil {
		return nil, err
	}

	booking.Status = models.BookingScheduled
	if len(requests) > 0 {
		booking.Status = models.BookingPending
	}
	if err := s.bookingRepo.CreateBooking(booking); err != nil {
		return nil, err
	}

	if len(requests) > 0 {
		allocations, err := s.engine.Allocate(booking.ID, requests, booking.Window())
		if err != nil {
			// Roll back the draft; no partial state survives a failed allocation
			if delErr := s.bookingRepo.DeleteBooking(booking.ID); delErr != nil {
				log.Printf("Warning: failed to roll back booking %d after allocation failure: %v", booking.ID, delErr)
			}
			return nil, err
		}
		booking.Allocations = allocations

		if _, _, err := s.bookingRepo.TransitionStatus(booking.ID,
			[]models.BookingStatus{models.BookingPending}, models.BookingScheduled); err != nil {
			return nil, err
		}
		booking.Status = models.BookingScheduled
	}

	uid := userID
	_ = s.auditRepo.CreateAuditLog(&uid, "booking_created",
		fmt.Sprintf("Booking %d (%s) created with %d resource(s)", booking.ID, booking.BookingType, len(requests)))

	return booking, nil
}

// GetBooking retrieves a booking with its allocations
func (s *BookingService) GetBooking(id uint) (*models.Booking, error) {
	return s.bookingRepo.GetBookingByID(id)
}

// ListBookings retrieves bookings matching the filters
func (s *BookingService) ListBookings(filters repository.BookingFilters) ([]models.Booking, error) {
	return s.bookingRepo.ListBookings(filters)
}

// StartBooking moves a booking from scheduled to in_progress. Allocations are
// untouched; the resources stay reserved.
func (s *BookingService) StartBooking(id uint, userID uint) (*models.Booking, error) {
	booking, err := s.transition(id, "start",
		[]models.BookingStatus{models.BookingScheduled}, models.BookingInProgress)
	if err != nil {
		return nil, err
	}

	uid := userID
	_ = s.auditRepo.CreateAuditLog(&uid, "booking_started", fmt.Sprintf("Booking %d started", id))
	return booking, nil
}

// CompleteBooking moves a booking to completed and releases its non-bed
// resources. Bed allocations stay active until an explicit discharge.
func (s *BookingService) CompleteBooking(id uint, userID uint) (*models.Booking, error) {
	booking, err := s.transition(id, "complete",
		[]models.BookingStatus{models.BookingScheduled, models.BookingInProgress}, models.BookingCompleted)
	if err != nil {
		return nil, err
	}

	// The transition is already committed; a failed release is repaired by the
	// sweeper, which releases leftover allocations on terminal bookings
	if err := s.engine.ReleaseBooking(id, false); err != nil {
		log.Printf("Warning: failed to release resources for completed booking %d: %v", id, err)
	}

	uid := userID
	_ = s.auditRepo.CreateAuditLog(&uid, "booking_completed", fmt.Sprintf("Booking %d completed", id))
	return booking, nil
}

// CancelBooking moves a booking to cancelled and releases everything it held,
// beds included.
func (s *BookingService) CancelBooking(id uint, userID uint) (*models.Booking, error) {
	booking, err := s.transition(id, "cancel",
		[]models.BookingStatus{models.BookingScheduled, models.BookingInProgress}, models.BookingCancelled)
	if err != nil {
		return nil, err
	}

	if err := s.engine.ReleaseBooking(id, true); err != nil {
		log.Printf("Warning: failed to release resources for cancelled booking %d: %v", id, err)
	}

	uid := userID
	_ = s.auditRepo.CreateAuditLog(&uid, "booking_cancelled", fmt.Sprintf("Booking %d cancelled", id))
	return booking, nil
}

func (s *BookingService) transition(id uint, action string, allowedFrom []models.BookingStatus, to models.BookingStatus) (*models.Booking, error) {
	booking, transitioned, err := s.bookingRepo.TransitionStatus(id, allowedFrom, to)
	if err != nil {
		return nil, err
	}
	if !transitioned {
		return nil, apperror.NewInvalidState(action, string(booking.Status))
	}
	return booking, nil
}

func (s *BookingService) validateDraft(booking *models.Booking) error {
	if !models.ValidBookingType(booking.BookingType) {
		return apperror.NewValidation("unknown booking type %q", booking.BookingType)
	}
	if booking.PatientID == 0 {
		return apperror.NewValidation("patient_id is required")
	}
	if booking.DoctorID == 0 {
		return apperror.NewValidation("doctor_id is required")
	}
	if booking.ScheduledStart.IsZero() {
		return apperror.NewValidation("scheduled_start is required")
	}
	if booking.DurationMinutes <= 0 {
		return apperror.NewValidation("duration_minutes must be positive")
	}
	return nil
}
