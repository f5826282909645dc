package repository

import (
	"time"

	"hospital-ops-backend/internal/models"

	"gorm.io/gorm"
)

type AllocationRepository struct {
	db *gorm.DB
}

func NewAllocationRepo(db *gorm.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

// CountOverlappingActive counts active allocations on a resource whose
// half-open window overlaps [start, end)
func (r *AllocationRepository) CountOverlappingActive(resourceID uint, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Allocation{}).
		Where("resource_id = ? AND active = ?", resourceID, true).
		Where("start_time < ? AND ? < end_time", end, start).
		Count(&count).Error
	return count, err
}

// CountActiveForResource counts all active allocations referencing a resource
func (r *AllocationRepository) CountActiveForResource(resourceID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Allocation{}).
		Where("resource_id = ? AND active = ?", resourceID, true).
		Count(&count).Error
	return count, err
}

// CommitAllocations inserts the allocations and marks their resources booked
// in a single transaction, so a crash can never leave a partial reservation.
func (r *AllocationRepository) CommitAllocations(allocations []models.Allocation) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&allocations).Error; err != nil {
			return err
		}
		for _, alloc := range allocations {
			err := tx.Model(&models.Resource{}).
				Where("id = ?", alloc.ResourceID).
				Update("status", models.ResourceBooked).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ActiveByBooking retrieves the active allocations belonging to a booking
func (r *AllocationRepository) ActiveByBooking(bookingID uint) ([]models.Allocation, error) {
	var allocations []models.Allocation
	err := r.db.Where("booking_id = ? AND active = ?", bookingID, true).
		Find(&allocations).Error
	return allocations, err
}

// ActiveBedAllocationsForPatient retrieves active bed allocations on a
// resource that belong to any booking of the given patient. Used by the
// discharge path; the type filter keeps a mislabeled discharge from matching
// a theatre or machine allocation.
func (r *AllocationRepository) ActiveBedAllocationsForPatient(bedID, patientID uint) ([]models.Allocation, error) {
	var allocations []models.Allocation
	err := r.db.
		Joins("JOIN bookings ON bookings.id = allocations.booking_id").
		Where("allocations.resource_id = ? AND allocations.active = ?", bedID, true).
		Where("allocations.resource_type = ?", models.ResourceBed).
		Where("bookings.patient_id = ?", patientID).
		Find(&allocations).Error
	return allocations, err
}

// Deactivate marks the given allocations inactive. Rows are never deleted.
func (r *AllocationRepository) Deactivate(allocationIDs []uint) error {
	if len(allocationIDs) == 0 {
		return nil
	}
	return r.db.Model(&models.Allocation{}).
		Where("id IN ?", allocationIDs).
		Update("active", false).Error
}
