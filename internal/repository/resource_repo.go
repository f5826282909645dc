package repository

import (
	"errors"
	"time"

	"hospital-ops-backend/internal/apperror"
	"hospital-ops-backend/internal/models"

	"gorm.io/gorm"
)

type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepo(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// CreateResource inserts a new resource
func (r *ResourceRepository) CreateResource(resource *models.Resource) error {
	return r.db.Create(resource).Error
}

// GetResourceByID retrieves an active resource by ID
func (r *ResourceRepository) GetResourceByID(id uint) (*models.Resource, error) {
	var resource models.Resource
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&resource).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("resource", id)
		}
		return nil, err
	}
	return &resource, nil
}

// CountByTypeAndIdentifier counts active resources sharing a type/identifier pair.
// Used to enforce identifier uniqueness within a type.
func (r *ResourceRepository) CountByTypeAndIdentifier(resourceType models.ResourceType, identifier string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Resource{}).
		Where("resource_type = ? AND identifier = ? AND is_active = ?", resourceType, identifier, true).
		Count(&count).Error
	return count, err
}

// ListResources retrieves active resources, optionally filtered by type and status
func (r *ResourceRepository) ListResources(resourceType models.ResourceType, status models.ResourceStatus) ([]models.Resource, error) {
	query := r.db.Where("is_active = ?", true)
	if resourceType != "" {
		query = query.Where("resource_type = ?", resourceType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var resources []models.Resource
	err := query.Order("resource_type ASC, identifier ASC").Find(&resources).Error
	return resources, err
}

// ListAvailableForWindow retrieves resources of a type that are allocatable for
// the given window: not in maintenance or cleaning, and with no active
// allocation whose half-open window overlaps [start, end).
func (r *ResourceRepository) ListAvailableForWindow(resourceType models.ResourceType, start, end time.Time) ([]models.Resource, error) {
	overlapping := r.db.Model(&models.Allocation{}).
		Select("1").
		Where("allocations.resource_id = resources.id").
		Where("allocations.active = ?", true).
		Where("allocations.start_time < ? AND ? < allocations.end_time", end, start)

	var resources []models.Resource
	err := r.db.Model(&models.Resource{}).
		Where("resource_type = ? AND is_active = ?", resourceType, true).
		Where("status NOT IN ?", []models.ResourceStatus{models.ResourceMaintenance, models.ResourceCleaning}).
		Where("NOT EXISTS (?)", overlapping).
		Order("identifier ASC").
		Find(&resources).Error
	return resources, err
}

// UpdateStatus sets a resource's cached status
func (r *ResourceRepository) UpdateStatus(id uint, status models.ResourceStatus) error {
	return r.db.Model(&models.Resource{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// ListByStatus retrieves active resources with the given status
func (r *ResourceRepository) ListByStatus(status models.ResourceStatus) ([]models.Resource, error) {
	var resources []models.Resource
	err := r.db.Where("status = ? AND is_active = ?", status, true).Find(&resources).Error
	return resources, err
}

// SoftDelete marks a resource inactive. The row is kept because historical
// allocations still reference it.
func (r *ResourceRepository) SoftDelete(id uint) error {
	return r.db.Model(&models.Resource{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
