package service

import (
	"time"

	"hospital-ops-backend/internal/models"
	"hospital-ops-backend/internal/repository"
)

// Store interfaces consumed by the services. The gorm repositories satisfy
// them; tests substitute mocks.

type ResourceStore interface {
	CreateResource(resource *models.Resource) error
	GetResourceByID(id uint) (*models.Resource, error)
	CountByTypeAndIdentifier(resourceType models.ResourceType, identifier string) (int64, error)
	ListResources(resourceType models.ResourceType, status models.ResourceStatus) ([]models.Resource, error)
	ListAvailableForWindow(resourceType models.ResourceType, start, end time.Time) ([]models.Resource, error)
	ListByStatus(status models.ResourceStatus) ([]models.Resource, error)
	UpdateStatus(id uint, status models.ResourceStatus) error
	SoftDelete(id uint) error
}

type AllocationStore interface {
	CountOverlappingActive(resourceID uint, start, end time.Time) (int64, error)
	CountActiveForResource(resourceID uint) (int64, error)
	CommitAllocations(allocations []models.Allocation) error
	ActiveByBooking(bookingID uint) ([]models.Allocation, error)
	ActiveBedAllocationsForPatient(bedID, patientID uint) ([]models.Allocation, error)
	Deactivate(allocationIDs []uint) error
}

type BookingStore interface {
	CreateBooking(booking *models.Booking) error
	GetBookingByID(id uint) (*models.Booking, error)
	ListBookings(filters repository.BookingFilters) ([]models.Booking, error)
	TransitionStatus(id uint, allowedFrom []models.BookingStatus, to models.BookingStatus) (*models.Booking, bool, error)
	DeleteBooking(id uint) error
	DeleteStalePending(cutoff time.Time) (int64, error)
	ListTerminalWithActiveAllocations() ([]models.Booking, error)
}

type DischargeStore interface {
	CreateDischarge(discharge *models.Discharge) error
	GetDischargeByID(id uint) (*models.Discharge, error)
	ListDischarges(patientID uint) ([]models.Discharge, error)
	SetApproval(id uint, approved bool) error
	DeleteDischarge(id uint) error
}

type AuditLogger interface {
	CreateAuditLog(userID *uint, action string, details string) error
}

// Allocator is the allocation engine surface the booking and discharge
// services depend on
type Allocator interface {
	Allocate(bookingID uint, requests []AllocationRequest, window models.TimeWindow) ([]models.Allocation, error)
	ReleaseBooking(bookingID uint, includeBeds bool) error
	ReleaseBed(patientID, bedID uint) error
}
