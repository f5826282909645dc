package handler

import (
	"net/http"
	"strconv"
	"time"

	"hospital-ops-backend/internal/apperror"
	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/service"
	"hospital-ops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DischargeHandler struct {
	dischargeService *service.DischargeService
}

func NewDischargeHandler(dischargeService *service.DischargeService) *DischargeHandler {
	return &DischargeHandler{
		dischargeService: dischargeService,
	}
}

type CreateDischargeRequest struct {
	PatientID     uint      `json:"patient_id" binding:"required"`
	DoctorID      uint      `json:"doctor_id" binding:"required"`
	AdmissionDate time.Time `json:"admission_date" binding:"required"`
	DischargeDate time.Time `json:"discharge_date" binding:"required"`
	BedID         *uint     `json:"bed_id"`
	Notes         string    `json:"notes"`
}

// CreateDischarge records a discharge and, when a bed is named, releases it
func (h *DischargeHandler) CreateDischarge(c *gin.Context) {
	var req CreateDischargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")

	discharge := &models.Discharge{
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		AdmissionDate: req.AdmissionDate,
		DischargeDate: req.DischargeDate,
		BedID:         req.BedID,
		Notes:         req.Notes,
	}

	if err := h.dischargeService.CreateDischarge(discharge, userID.(uint)); err != nil {
		utils.ErrorResponse(c, apperror.HTTPStatus(err), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   "Discharge created successfully",
		"discharge": discharge,
	})
}

// GetDischarge retrieves a discharge by ID
func (h *DischargeHandler) GetDischarge(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid discharge ID")
		return
	}

	discharge, err := h.dischargeService.GetDischarge(uint(id))
	if err != nil {
		utils.ErrorResponse(c, apperror.HTTPStatus(err), err.Error())
		return
	}

	utils.SuccessResponse(c, discharge)
}

// ListDischarges retrieves discharges, optionally filtered by patient
func (h *DischargeHandler) ListDischarges(c *gin.Context) {
	var patientID uint
	if v := c.Query("patient"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
			return
		}
		patientID = uint(id)
	}

	discharges, err := h.dischargeService.ListDischarges(patientID)
	if err != nil {
		utils.ErrorResponse(c, apperror.HTTPStatus(err), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"discharges": discharges,
		"count":      len(discharges),
	})
}

// ApproveDischarge records the doctor's approval; repeat calls are no-ops
func (h *DischargeHandler) ApproveDischarge(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid discharge ID")
		return
	}

	userID, _ := c.Get("userID")

	discharge, err := h.dischargeService.ApproveDischarge(uint(id), userID.(uint))
	if err != nil {
		utils.ErrorResponse(c, apperror.HTTPStatus(err), err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   "Discharge approved",
		"discharge": discharge,
	})
}
