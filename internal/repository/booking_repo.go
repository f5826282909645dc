package repository

import (
	"errors"
	"time"

	"hospital-ops-backend/internal/apperror"
	"hospital-ops-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepo(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateBooking inserts a new booking
func (r *BookingRepository) CreateBooking(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

// GetBookingByID retrieves a booking with its allocations
func (r *BookingRepository) GetBookingByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.Preload("Allocations").First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NewNotFound("booking", id)
		}
		return nil, err
	}
	return &booking, nil
}

// BookingFilters narrows ListBookings results; zero values are ignored
type BookingFilters struct {
	BookingType models.BookingType
	Status      models.BookingStatus
	PatientID   uint
	DoctorID    uint
	From        time.Time
	To          time.Time
}

// ListBookings retrieves bookings matching the filters, newest first
func (r *BookingRepository) ListBookings(filters BookingFilters) ([]models.Booking, error) {
	query := r.db.Model(&models.Booking{})
	if filters.BookingType != "" {
		query = query.Where("booking_type = ?", filters.BookingType)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.PatientID != 0 {
		query = query.Where("patient_id = ?", filters.PatientID)
	}
	if filters.DoctorID != 0 {
		query = query.Where("doctor_id = ?", filters.DoctorID)
	}
	if !filters.From.IsZero() {
		query = query.Where("scheduled_start >= ?", filters.From)
	}
	if !filters.To.IsZero() {
		query = query.Where("scheduled_start < ?", filters.To)
	}

	var bookings []models.Booking
	err := query.Order("scheduled_start DESC").Find(&bookings).Error
	return bookings, err
}

// TransitionStatus moves a booking to a new status if its current status is in
// allowedFrom. The booking row is locked for the duration of the transaction so
// concurrent transitions on the same booking serialize; the loser observes the
// winner's status. Returns the booking as read under the lock and whether the
// transition was applied.
func (r *BookingRepository) TransitionStatus(id uint, allowedFrom []models.BookingStatus, to models.BookingStatus) (*models.Booking, bool, error) {
	var booking models.Booking
	transitioned := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NewNotFound("booking", id)
			}
			return err
		}

		for _, from := range allowedFrom {
			if booking.Status == from {
				transitioned = true
				break
			}
		}
		if !transitioned {
			return nil
		}

		booking.Status = to
		return tx.Model(&models.Booking{}).
			Where("id = ?", id).
			Update("status", to).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &booking, transitioned, nil
}

// DeleteBooking removes a booking row. Only used to roll back a draft whose
// allocation failed; committed bookings are cancelled, never deleted.
func (r *BookingRepository) DeleteBooking(id uint) error {
	return r.db.Delete(&models.Booking{}, id).Error
}

// DeleteStalePending removes pending bookings created before the cutoff.
// A pending row that old means a crash interrupted the create-allocate flow;
// its allocation never committed, so the row can simply be dropped.
func (r *BookingRepository) DeleteStalePending(cutoff time.Time) (int64, error) {
	result := r.db.
		Where("status = ? AND created_at < ?", models.BookingPending, cutoff).
		Delete(&models.Booking{})
	return result.RowsAffected, result.Error
}

// ListTerminalWithActiveAllocations retrieves completed or cancelled bookings
// that still hold active allocations needing release. Bed allocations on
// completed bookings stay active until discharge and are excluded.
func (r *BookingRepository) ListTerminalWithActiveAllocations() ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.
		Distinct("bookings.*").
		Joins("JOIN allocations ON allocations.booking_id = bookings.id AND allocations.active = ?", true).
		Where("bookings.status IN ?", []models.BookingStatus{models.BookingCompleted, models.BookingCancelled}).
		Where("bookings.status = ? OR allocations.resource_type <> ?", models.BookingCancelled, models.ResourceBed).
		Find(&bookings).Error
	return bookings, err
}
