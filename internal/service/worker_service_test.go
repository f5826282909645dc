package service

import (
	"testing"
	"time"

	"hospital-ops-backend/internal/models"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSweepReconcilesOrphanedBookedResources(t *testing.T) {
	resources := &mockResourceStore{}
	allocations := &mockAllocationStore{}
	worker := NewWorkerService(resources, allocations, &mockBookingStore{}, &mockAllocator{}, time.Minute)

	booked := []models.Resource{
		{ID: 1, ResourceType: models.ResourceBed, Status: models.ResourceBooked, IsActive: true},
		{ID: 2, ResourceType: models.ResourceMachine, Status: models.ResourceBooked, IsActive: true},
	}
	resources.On("ListByStatus", models.ResourceBooked).Return(booked, nil)
	// Resource 1 still has a live allocation, resource 2 is orphaned
	allocations.On("CountActiveForResource", uint(1)).Return(int64(1), nil)
	allocations.On("CountActiveForResource", uint(2)).Return(int64(0), nil)
	resources.On("UpdateStatus", uint(2), models.ResourceAvailable).Return(nil)

	worker.reconcileResourceStatus()

	resources.AssertCalled(t, "UpdateStatus", uint(2), models.ResourceAvailable)
	resources.AssertNotCalled(t, "UpdateStatus", uint(1), mock.Anything)
}

func TestSweepLeavesHeldResourcesAlone(t *testing.T) {
	resources := &mockResourceStore{}
	allocations := &mockAllocationStore{}
	worker := NewWorkerService(resources, allocations, &mockBookingStore{}, &mockAllocator{}, time.Minute)

	resources.On("ListByStatus", models.ResourceBooked).Return([]models.Resource{
		{ID: 1, ResourceType: models.ResourceBed, Status: models.ResourceBooked, IsActive: true},
	}, nil)
	allocations.On("CountActiveForResource", uint(1)).Return(int64(1), nil)

	worker.reconcileResourceStatus()

	resources.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	require.True(t, resources.AssertExpectations(t))
}

func TestSweepReleasesTerminalBookingsWithActiveAllocations(t *testing.T) {
	bookings := &mockBookingStore{}
	engine := &mockAllocator{}
	worker := NewWorkerService(&mockResourceStore{}, &mockAllocationStore{}, bookings, engine, time.Minute)

	bookings.On("ListTerminalWithActiveAllocations").Return([]models.Booking{
		{ID: 42, Status: models.BookingCompleted},
		{ID: 43, Status: models.BookingCancelled},
	}, nil)
	// Completed bookings keep their beds; cancelled bookings give up everything
	engine.On("ReleaseBooking", uint(42), false).Return(nil)
	engine.On("ReleaseBooking", uint(43), true).Return(nil)

	worker.releaseTerminalBookings()

	engine.AssertExpectations(t)
}

func TestSweepPurgesStalePendingBookings(t *testing.T) {
	bookings := &mockBookingStore{}
	worker := NewWorkerService(&mockResourceStore{}, &mockAllocationStore{}, bookings, &mockAllocator{}, time.Minute)

	bookings.On("DeleteStalePending", mock.AnythingOfType("time.Time")).Return(int64(2), nil)

	worker.purgeStalePending()

	bookings.AssertCalled(t, "DeleteStalePending", mock.AnythingOfType("time.Time"))
}
