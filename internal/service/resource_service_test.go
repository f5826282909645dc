package service

import (
	"testing"
	"time"

	"hospital-ops-backend/internal/apperror"
	"hospital-ops-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterResource(t *testing.T) {
	resources := &mockResourceStore{}
	svc := NewResourceService(resources, &mockAllocationStore{}, relaxedAudit())

	resources.On("CountByTypeAndIdentifier", models.ResourceBed, "B-001").Return(int64(0), nil)
	resources.On("CreateResource", mock.AnythingOfType("*models.Resource")).Return(nil)

	resource := &models.Resource{ResourceType: models.ResourceBed, Identifier: "B-001"}
	err := svc.RegisterResource(resource, 1)

	require.NoError(t, err)
	assert.Equal(t, models.ResourceAvailable, resource.Status)
	assert.True(t, resource.IsActive)
}

func TestRegisterResourceDuplicateIdentifier(t *testing.T) {
	resources := &mockResourceStore{}
	svc := NewResourceService(resources, &mockAllocationStore{}, relaxedAudit())

	resources.On("CountByTypeAndIdentifier", models.ResourceBed, "B-001").Return(int64(1), nil)

	err := svc.RegisterResource(&models.Resource{ResourceType: models.ResourceBed, Identifier: "B-001"}, 1)

	var conflict *apperror.ConflictError
	require.ErrorAs(t, err, &conflict)
	resources.AssertNotCalled(t, "CreateResource", mock.Anything)
}

func TestRegisterResourceValidation(t *testing.T) {
	svc := NewResourceService(&mockResourceStore{}, &mockAllocationStore{}, relaxedAudit())

	cases := []struct {
		name     string
		resource *models.Resource
	}{
		{"unknown type", &models.Resource{ResourceType: "helipad", Identifier: "H-1"}},
		{"missing identifier", &models.Resource{ResourceType: models.ResourceBed}},
		{"registered as booked", &models.Resource{ResourceType: models.ResourceBed, Identifier: "B-1", Status: models.ResourceBooked}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.RegisterResource(tc.resource, 1)

			var validation *apperror.ValidationError
			require.ErrorAs(t, err, &validation)
		})
	}
}

func TestSetStatusRefusedWhileActivelyAllocated(t *testing.T) {
	resources := &mockResourceStore{}
	allocations := &mockAllocationStore{}
	svc := NewResourceService(resources, allocations, relaxedAudit())

	resources.On("GetResourceByID", uint(1)).Return(&models.Resource{
		ID: 1, ResourceType: models.ResourceMachine, Status: models.ResourceBooked, IsActive: true,
	}, nil)
	allocations.On("CountActiveForResource", uint(1)).Return(int64(1), nil)

	err := svc.SetStatus(1, models.ResourceMaintenance, 1)

	var conflict *apperror.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, uint(1), conflict.ResourceID)
	resources.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
}

func TestSetStatusMaintenanceWhenFree(t *testing.T) {
	resources := &mockResourceStore{}
	allocations := &mockAllocationStore{}
	svc := NewResourceService(resources, allocations, relaxedAudit())

	resources.On("GetResourceByID", uint(1)).Return(&models.Resource{
		ID: 1, ResourceType: models.ResourceMachine, Status: models.ResourceAvailable, IsActive: true,
	}, nil)
	allocations.On("CountActiveForResource", uint(1)).Return(int64(0), nil)
	resources.On("UpdateStatus", uint(1), models.ResourceMaintenance).Return(nil)

	err := svc.SetStatus(1, models.ResourceMaintenance, 1)

	require.NoError(t, err)
	resources.AssertExpectations(t)
}

func TestDeleteResourceRefusedWhileActivelyAllocated(t *testing.T) {
	resources := &mockResourceStore{}
	allocations := &mockAllocationStore{}
	svc := NewResourceService(resources, allocations, relaxedAudit())

	resources.On("GetResourceByID", uint(1)).Return(&models.Resource{
		ID: 1, ResourceType: models.ResourceBed, Status: models.ResourceBooked, IsActive: true,
	}, nil)
	allocations.On("CountActiveForResource", uint(1)).Return(int64(1), nil)

	err := svc.DeleteResource(1, 1)

	var conflict *apperror.ConflictError
	require.ErrorAs(t, err, &conflict)
	resources.AssertNotCalled(t, "SoftDelete", mock.Anything)
}

func TestListAvailableValidatesWindow(t *testing.T) {
	svc := NewResourceService(&mockResourceStore{}, &mockAllocationStore{}, relaxedAudit())

	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	_, err := svc.ListAvailable(models.ResourceBed, models.TimeWindow{Start: start, End: start})

	var validation *apperror.ValidationError
	require.ErrorAs(t, err, &validation)
}
