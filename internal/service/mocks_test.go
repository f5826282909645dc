package service

import (
	"time"

	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

type mockResourceStore struct {
	mock.Mock
}

func (m *mockResourceStore) CreateResource(resource *models.Resource) error {
	args := m.Called(resource)
	return args.Error(0)
}

func (m *mockResourceStore) GetResourceByID(id uint) (*models.Resource, error) {
	args := m.Called(id)
	if r := args.Get(0); r != nil {
		return r.(*models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceStore) CountByTypeAndIdentifier(resourceType models.ResourceType, identifier string) (int64, error) {
	args := m.Called(resourceType, identifier)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockResourceStore) ListResources(resourceType models.ResourceType, status models.ResourceStatus) ([]models.Resource, error) {
	args := m.Called(resourceType, status)
	if r := args.Get(0); r != nil {
		return r.([]models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceStore) ListAvailableForWindow(resourceType models.ResourceType, start, end time.Time) ([]models.Resource, error) {
	args := m.Called(resourceType, start, end)
	if r := args.Get(0); r != nil {
		return r.([]models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceStore) ListByStatus(status models.ResourceStatus) ([]models.Resource, error) {
	args := m.Called(status)
	if r := args.Get(0); r != nil {
		return r.([]models.Resource), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockResourceStore) UpdateStatus(id uint, status models.ResourceStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *mockResourceStore) SoftDelete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type mockAllocationStore struct {
	mock.Mock
}

func (m *mockAllocationStore) CountOverlappingActive(resourceID uint, start, end time.Time) (int64, error) {
	args := m.Called(resourceID, start, end)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAllocationStore) CountActiveForResource(resourceID uint) (int64, error) {
	args := m.Called(resourceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAllocationStore) CommitAllocations(allocations []models.Allocation) error {
	args := m.Called(allocations)
	return args.Error(0)
}

func (m *mockAllocationStore) ActiveByBooking(bookingID uint) ([]models.Allocation, error) {
	args := m.Called(bookingID)
	if r := args.Get(0); r != nil {
		return r.([]models.Allocation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAllocationStore) ActiveBedAllocationsForPatient(bedID, patientID uint) ([]models.Allocation, error) {
	args := m.Called(bedID, patientID)
	if r := args.Get(0); r != nil {
		return r.([]models.Allocation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAllocationStore) Deactivate(allocationIDs []uint) error {
	args := m.Called(allocationIDs)
	return args.Error(0)
}

type mockBookingStore struct {
	mock.Mock
}

func (m *mockBookingStore) CreateBooking(booking *models.Booking) error {
	args := m.Called(booking)
	return args.Error(0)
}

func (m *mockBookingStore) GetBookingByID(id uint) (*models.Booking, error) {
	args := m.Called(id)
	if r := args.Get(0); r != nil {
		return r.(*models.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingStore) ListBookings(filters repository.BookingFilters) ([]models.Booking, error) {
	args := m.Called(filters)
	if r := args.Get(0); r != nil {
		return r.([]models.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingStore) TransitionStatus(id uint, allowedFrom []models.BookingStatus, to models.BookingStatus) (*models.Booking, bool, error) {
	args := m.Called(id, allowedFrom, to)
	if r := args.Get(0); r != nil {
		return r.(*models.Booking), args.Bool(1), args.Error(2)
	}
	return nil, args.Bool(1), args.Error(2)
}

func (m *mockBookingStore) DeleteBooking(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *mockBookingStore) DeleteStalePending(cutoff time.Time) (int64, error) {
	args := m.Called(cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingStore) ListTerminalWithActiveAllocations() ([]models.Booking, error) {
	args := m.Called()
	if r := args.Get(0); r != nil {
		return r.([]models.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockDischargeStore struct {
	mock.Mock
}

func (m *mockDischargeStore) CreateDischarge(discharge *models.Discharge) error {
	args := m.Called(discharge)
	return args.Error(0)
}

func (m *mockDischargeStore) GetDischargeByID(id uint) (*models.Discharge, error) {
	args := m.Called(id)
	if r := args.Get(0); r != nil {
		return r.(*models.Discharge), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDischargeStore) ListDischarges(patientID uint) ([]models.Discharge, error) {
	args := m.Called(patientID)
	if r := args.Get(0); r != nil {
		return r.([]models.Discharge), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDischargeStore) SetApproval(id uint, approved bool) error {
	args := m.Called(id, approved)
	return args.Error(0)
}

func (m *mockDischargeStore) DeleteDischarge(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

type mockAllocator struct {
	mock.Mock
}

func (m *mockAllocator) Allocate(bookingID uint, requests []AllocationRequest, window models.TimeWindow) ([]models.Allocation, error) {
	args := m.Called(bookingID, requests, window)
	if r := args.Get(0); r != nil {
		return r.([]models.Allocation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAllocator) ReleaseBooking(bookingID uint, includeBeds bool) error {
	args := m.Called(bookingID, includeBeds)
	return args.Error(0)
}

func (m *mockAllocator) ReleaseBed(patientID, bedID uint) error {
	args := m.Called(patientID, bedID)
	return args.Error(0)
}

type mockAuditLogger struct {
	mock.Mock
}

func (m *mockAuditLogger) CreateAuditLog(userID *uint, action string, details string) error {
	args := m.Called(userID, action, details)
	return args.Error(0)
}

// relaxedAudit returns an audit logger that accepts anything; most tests do not
// care about audit entries
func relaxedAudit() *mockAuditLogger {
	audit := &mockAuditLogger{}
	audit.On("CreateAuditLog", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	return audit
}
