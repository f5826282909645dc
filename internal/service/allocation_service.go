package service

import (
	"fmt"
	"log"

	"hospital-ops-backend/internal/apperror"
	"hospital-ops-backend/internal/locking"
	"hospital-ops-backend/internal/models"
)

// AllocationRequest names one resource a booking wants to reserve
type AllocationRequest struct {
	ResourceType models.ResourceType `json:"resource_type" binding:"required"`
	ResourceID   uint                `json:"resource_id" binding:"required"`
}

// AllocationEngine reserves heterogeneous resource sets for bookings with
// all-or-nothing semantics. All resource status mutation funnels through here
// (and the discharge bed-release path); nothing else writes resources.status.
type AllocationEngine struct {
	resources   ResourceStore
	allocations AllocationStore
	locks       *locking.Manager
}

func NewAllocationEngine(resources ResourceStore, allocations AllocationStore, locks *locking.Manager) *AllocationEngine {
	return &AllocationEngine{
		resources:   resources,
		allocations: allocations,
		locks:       locks,
	}
}

// Allocate reserves every requested resource for the window or none of them.
// Locks are taken per resource in ascending ID order with a bounded wait;
// a lock timeout surfaces as TimeoutError (retryable as-is), any failed check
// as ConflictError naming the offending resource. Between two concurrent
// requests racing for the same resource the first to acquire the lock wins.
func (e *AllocationEngine) Allocate(bookingID uint, requests []AllocationRequest, window models.TimeWindow) ([]models.Allocation, error) {
	if len(requests) == 0 {
		return nil, nil
	}
	if !window.End.After(window.Start) {
		return nil, apperror.NewValidation("allocation window must have a positive duration")
	}

	resourceIDs := make([]uint, 0, len(requests))
	for _, req := range requests {
		if req.ResourceID == 0 {
			return nil, apperror.NewValidation("allocation request is missing a resource id")
		}
		if !models.ValidResourceType(req.ResourceType) {
			return nil, apperror.NewValidation("unknown resource type %q", req.ResourceType)
		}
		resourceIDs = append(resourceIDs, req.ResourceID)
	}

	release, err := e.locks.AcquireAll(resourceIDs)
	if err != nil {
		return nil, err
	}
	defer release()

	allocations := make([]models.Allocation, 0, len(requests))
	for _, req := range requests {
		resource, err := e.resources.GetResourceByID(req.ResourceID)
		if err != nil {
			return nil, apperror.NewResourceConflict(req.ResourceID, "resource does not exist")
		}
		if resource.ResourceType != req.ResourceType {
			return nil, apperror.NewResourceConflict(req.ResourceID,
				fmt.Sprintf("resource is a %s, not a %s", resource.ResourceType, req.ResourceType))
		}
		if resource.Status == models.ResourceMaintenance || resource.Status == models.ResourceCleaning {
			return nil, apperror.NewResourceConflict(req.ResourceID,
				fmt.Sprintf("resource is under %s", resource.Status))
		}

		overlapping, err := e.allocations.CountOverlappingActive(req.ResourceID, window.Start, window.End)
		if err != nil {
			return nil, err
		}
		if overlapping > 0 {
			return nil, apperror.NewResourceConflict(req.ResourceID, "time window overlaps an active allocation")
		}

		allocations = append(allocations, models.Allocation{
			BookingID:    bookingID,
			ResourceID:   req.ResourceID,
			ResourceType: req.ResourceType,
			StartTime:    window.Start,
			EndTime:      window.End,
			Active:       true,
		})
	}

	// All checks passed while holding every lock; commit is a single transaction
	if err := e.allocations.CommitAllocations(allocations); err != nil {
		return nil, err
	}

	return allocations, nil
}

// ReleaseBooking marks a booking's active allocations inactive and recomputes
// each touched resource's status. With includeBeds false, bed allocations are
// left active: a patient may stay in the bed after the booking is completed,
// and only a discharge releases it.
//
// The touched resources' locks are held across deactivate-and-recompute, so a
// concurrent Allocate cannot commit between the recount and the status write
// and have its booked status clobbered back to available.
func (e *AllocationEngine) ReleaseBooking(bookingID uint, includeBeds bool) error {
	active, err := e.allocations.ActiveByBooking(bookingID)
	if err != nil {
		return err
	}

	toRelease := make([]models.Allocation, 0, len(active))
	resourceIDs := make([]uint, 0, len(active))
	for _, alloc := range active {
		if !includeBeds && alloc.ResourceType == models.ResourceBed {
			continue
		}
		toRelease = append(toRelease, alloc)
		resourceIDs = append(resourceIDs, alloc.ResourceID)
	}
	if len(toRelease) == 0 {
		return nil
	}

	release, err := e.locks.AcquireAll(resourceIDs)
	if err != nil {
		return err
	}
	defer release()

	return e.releaseAllocations(toRelease)
}

// ReleaseBed releases a bed's allocations held by the given patient, as
// triggered by discharge creation. Fails with ConflictError when the given
// resource is not a bed or has no active allocation for this patient.
func (e *AllocationEngine) ReleaseBed(patientID, bedID uint) error {
	release, err := e.locks.Acquire(bedID)
	if err != nil {
		return err
	}
	defer release()

	resource, err := e.resources.GetResourceByID(bedID)
	if err != nil {
		return err
	}
	if resource.ResourceType != models.ResourceBed {
		return apperror.NewResourceConflict(bedID,
			fmt.Sprintf("resource is a %s, not a bed", resource.ResourceType))
	}

	active, err := e.allocations.ActiveBedAllocationsForPatient(bedID, patientID)
	if err != nil {
		return err
	}
	if len(active) == 0 {
		return apperror.NewResourceConflict(bedID, "bed has no active allocation for this patient")
	}

	return e.releaseAllocations(active)
}

// releaseAllocations deactivates the allocations and returns each touched
// resource to available when nothing else holds it. A maintenance or cleaning
// override set while the resource was booked is preserved.
func (e *AllocationEngine) releaseAllocations(allocations []models.Allocation) error {
	if len(allocations) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(allocations))
	resourceIDs := make(map[uint]struct{})
	for _, alloc := range allocations {
		ids = append(ids, alloc.ID)
		resourceIDs[alloc.ResourceID] = struct{}{}
	}

	if err := e.allocations.Deactivate(ids); err != nil {
		return err
	}

	for resourceID := range resourceIDs {
		remaining, err := e.allocations.CountActiveForResource(resourceID)
		if err != nil {
			return err
		}
		if remaining > 0 {
			continue
		}

		resource, err := e.resources.GetResourceByID(resourceID)
		if err != nil {
			log.Printf("Warning: released allocations for missing resource %d: %v", resourceID, err)
			continue
		}
		if resource.Status != models.ResourceBooked {
			continue
		}
		if err := e.resources.UpdateStatus(resourceID, models.ResourceAvailable); err != nil {
			return err
		}
	}

	return nil
}
