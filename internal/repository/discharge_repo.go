package repository

import (
	"errors"

	"hospital-ops-backend/internal/apperror"
	"hospital-ops-backend/internal/models"

	"gorm.io/gorm"
)

type DischargeRepository struct {
	db *gorm.DB
}

func NewDischargeRepo(db *gorm.DB) *DischargeRepository {
	return &DischargeRepository{db: db}
}

// CreateDischarge inserts a new discharge record
func (r *DischargeRepository) CreateDischarge(discharge *models.Discharge) error {
	return r.db.Create(discharge).Error
}

// GetDischargeByID retrieves a discharge by ID
func (r *DischargeRepository) GetDischargeByID(id uint) (*models.Discharge, error) {
	var discharge models.Discharge
	err := r.db.First(&discharge, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("discharge", id)
		}
		return nil, err
	}
	return &discharge, nil
}

// ListDischarges retrieves discharges, optionally filtered by patient, newest first
func (r *DischargeRepository) ListDischarges(patientID uint) ([]models.Discharge, error) {
	query := r.db.Model(&models.Discharge{})
	if patientID != 0 {
		query = query.Where("patient_id = ?", patientID)
	}

	var discharges []models.Discharge
	err := query.Order("discharge_date DESC").Find(&discharges).Error
	return discharges, err
}

// SetApproval records the doctor's approval on a discharge
func (r *DischargeRepository) SetApproval(id uint, approved bool) error {
	return r.db.Model(&models.Discharge{}).
		Where("id = ?", id).
		Update("doctor_approval", approved).Error
}

// DeleteDischarge removes a discharge row. Only used to roll back a draft
// whose bed release failed.
func (r *DischargeRepository) DeleteDischarge(id uint) error {
	return r.db.Delete(&models.Discharge{}, id).Error
}
