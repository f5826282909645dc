package service

import (
	"fmt"
	"time"

	"hospital-ops-backend/internal/apperror"
	"hospital-ops-backend/internal/models"
)

// ResourceService is the registry of allocatable resources. It owns
// registration, catalog queries, and administrative status overrides;
// allocation-driven status changes belong to the allocation engine.
type ResourceService struct {
	resourceRepo   ResourceStore
	allocationRepo AllocationStore
	auditRepo      AuditLogger
}

func NewResourceService(resourceRepo ResourceStore, allocationRepo AllocationStore, auditRepo AuditLogger) *ResourceService {
	return &ResourceService{
		resourceRepo:   resourceRepo,
		allocationRepo: allocationRepo,
		auditRepo:      auditRepo,
	}
}

// RegisterResource adds a resource to the catalog. The identifier must be
// unique within the resource type.
func (s *ResourceService) RegisterResource(resource *models.Resource, userID uint) error {
	if !models.ValidResourceType(resource.ResourceType) {
		return apperror.NewValidation("unknown resource type %q", resource.ResourceType)
	}
	if resource.Identifier == "" {
		return apperror.NewValidation("identifier is required")
	}
	if resource.Status == "" {
		resource.Status = models.ResourceAvailable
	}
	if !models.ValidResourceStatus(resource.Status) {
		return apperror.NewValidation("unknown resource status %q", resource.Status)
	}
	if resource.Status == models.ResourceBooked {
		return apperror.NewValidation("a resource cannot be registered as booked")
	}

	count, err := s.resourceRepo.CountByTypeAndIdentifier(resource.ResourceType, resource.Identifier)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflict("a %s with identifier %q already exists", resource.ResourceType, resource.Identifier)
	}

	resource.IsActive = true
	if err := s.resourceRepo.CreateResource(resource); err != nil {
		return err
	}

	uid := userID
	_ = s.auditRepo.CreateAuditLog(&uid, "resource_registered",
		fmt.Sprintf("Resource %d (%s %s) registered", resource.ID, resource.ResourceType, resource.Identifier))
	return nil
}

// GetResource retrieves a resource by ID
func (s *ResourceService) GetResource(id uint) (*models.Resource, error) {
	return s.resourceRepo.GetResourceByID(id)
}

// GetStatus returns a resource's current status
func (s *ResourceService) GetStatus(id uint) (models.ResourceStatus, error) {
	resource, err := s.resourceRepo.GetResourceByID(id)
	if err != nil {
		return "", err
	}
	return resource.Status, nil
}

// ListResources retrieves resources filtered by optional type and status
func (s *ResourceService) ListResources(resourceType models.ResourceType, status models.ResourceStatus) ([]models.Resource, error) {
	if resourceType != "" && !models.ValidResourceType(resourceType) {
		return nil, apperror.NewValidation("unknown resource type %q", resourceType)
	}
	if status != "" && !models.ValidResourceStatus(status) {
		return nil, apperror.NewValidation("unknown resource status %q", status)
	}
	return s.resourceRepo.ListResources(resourceType, status)
}

// ListAvailable retrieves resources of a type that can be allocated for the
// window: not under maintenance or cleaning and free of overlapping active
// allocations.
func (s *ResourceService) ListAvailable(resourceType models.ResourceType, window models.TimeWindow) ([]models.Resource, error) {
	if !models.ValidResourceType(resourceType) {
		return nil, apperror.NewValidation("unknown resource type %q", resourceType)
	}
	if !window.End.After(window.Start) {
		return nil, apperror.NewValidation("window must have a positive duration")
	}
	return s.resourceRepo.ListAvailableForWindow(resourceType, window.Start, window.End)
}

// SetStatus is the administrative status override (e.g. taking a machine into
// maintenance). Moving an actively allocated resource anywhere but back to
// available is refused.
func (s *ResourceService) SetStatus(id uint, status models.ResourceStatus, userID uint) error {
	if !models.ValidResourceStatus(status) {
		return apperror.NewValidation("unknown resource status %q", status)
	}

	resource, err := s.resourceRepo.GetResourceByID(id)
	if err != nil {
		return err
	}

	if status != models.ResourceAvailable {
		active, err := s.allocationRepo.CountActiveForResource(id)
		if err != nil {
			return err
		}
		if active > 0 {
			return apperror.NewResourceConflict(id, "resource has active allocations")
		}
	}

	if err := s.resourceRepo.UpdateStatus(id, status); err != nil {
		return err
	}

	uid := userID
	_ = s.auditRepo.CreateAuditLog(&uid, "resource_status_override",
		fmt.Sprintf("Resource %d status set from %s to %s", id, resource.Status, status))
	return nil
}

// DeleteResource soft-deletes a resource. Refused while any active allocation
// references it.
func (s *ResourceService) DeleteResource(id uint, userID uint) error {
	if _, err := s.resourceRepo.GetResourceByID(id); err != nil {
		return err
	}

	active, err := s.allocationRepo.CountActiveForResource(id)
	if err != nil {
		return err
	}
	if active > 0 {
		return apperror.NewResourceConflict(id, "resource has active allocations")
	}

	if err := s.resourceRepo.SoftDelete(id); err != nil {
		return err
	}

	uid := userID
	_ = s.auditRepo.CreateAuditLog(&uid, "resource_deleted", fmt.Sprintf("Resource %d deleted", id))
	return nil
}

// ParseWindow builds a half-open window from a start time and duration in minutes
func ParseWindow(start time.Time, durationMinutes int) models.TimeWindow {
	return models.TimeWindow{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}
