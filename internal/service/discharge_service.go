package service

import (
	"fmt"
	"log"

	"hospital-ops-backend/internal/apperror"
	"hospital-ops-backend/internal/models"
)

// DischargeService finalizes inpatient stays. Creating a discharge that names
// a bed is the one path (besides cancellation) that releases a held bed.
type DischargeService struct {
	dischargeRepo DischargeStore
	engine        Allocator
	auditRepo     AuditLogger
}

func NewDischargeService(dischargeRepo DischargeStore, engine Allocator, auditRepo AuditLogger) *DischargeService {
	return &DischargeService{
		dischargeRepo: dischargeRepo,
		engine:        engine,
		auditRepo:     auditRepo,
	}
}

// CreateDischarge validates and records a discharge. When a bed is named, the
// bed must hold an active allocation for this patient; releasing it returns
// the bed to available. A failed bed release rolls the discharge back.
func (s *DischargeService) CreateDischarge(discharge *models.Discharge, userID uint) error {
	if discharge.PatientID == 0 {
		return apperror.NewValidation("patient_id is required")
	}
	if discharge.DoctorID == 0 {
		return apperror.NewValidation("doctor_id is required")
	}
	if discharge.AdmissionDate.IsZero() || discharge.DischargeDate.IsZero() {
		return apperror.NewValidation("admission_date and discharge_date are required")
	}
	if !discharge.DischargeDate.After(discharge.AdmissionDate) {
		return apperror.NewValidation("discharge_date must be after admission_date")
	}

	if err := s.dischargeRepo.CreateDischarge(discharge); err != nil {
		return err
	}

	if discharge.BedID != nil {
		if err := s.engine.ReleaseBed(discharge.PatientID, *discharge.BedID); err != nil {
			if delErr := s.dischargeRepo.DeleteDischarge(discharge.ID); delErr != nil {
				log.Printf("Warning: failed to roll back discharge %d after bed release failure: %v", discharge.ID, delErr)
			}
			return err
		}
	}

	uid := userID
	_ = s.auditRepo.CreateAuditLog(&uid, "discharge_created",
		fmt.Sprintf("Discharge %d created for patient %d", discharge.ID, discharge.PatientID))
	return nil
}

// GetDischarge retrieves a discharge by ID
func (s *DischargeService) GetDischarge(id uint) (*models.Discharge, error) {
	return s.dischargeRepo.GetDischargeByID(id)
}

// ListDischarges retrieves discharges, optionally filtered by patient
func (s *DischargeService) ListDischarges(patientID uint) ([]models.Discharge, error) {
	return s.dischargeRepo.ListDischarges(patientID)
}

// ApproveDischarge records the doctor's approval. Approving an already
// approved discharge is a no-op, not an error.
func (s *DischargeService) ApproveDischarge(id uint, userID uint) (*models.Discharge, error) {
	discharge, err := s.dischargeRepo.GetDischargeByID(id)
	if err != nil {
		return nil, err
	}

	if discharge.DoctorApproval {
		return discharge, nil
	}

	if err := s.dischargeRepo.SetApproval(id, true); err != nil {
		return nil, err
	}
	discharge.DoctorApproval = true

	uid := userID
	_ = s.auditRepo.CreateAuditLog(&uid, "discharge_approved", fmt.Sprintf("Discharge %d approved", id))
	return discharge, nil
}
