package models

import "time"

// BookingType identifies the kind of booking
type BookingType string

const (
	BookingAppointment BookingType = "appointment"
	BookingSurgery     BookingType = "surgery"
	BookingTest        BookingType = "test"
)

// ValidBookingType reports whether t is one of the known booking types
func ValidBookingType(t BookingType) bool {
	switch t {
	case BookingAppointment, BookingSurgery, BookingTest:
		return true
	}
	return false
}

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	// BookingPending is a draft whose resource allocation has not confirmed
	// yet. It is promoted to scheduled once the allocation commits and deleted
	// if the allocation fails; a stale pending row means a crash interrupted
	// the flow and the sweeper purges it.
	BookingPending    BookingStatus = "pending"
	BookingScheduled  BookingStatus = "scheduled"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// Terminal reports whether no further transitions may leave this status
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled
}

// Booking represents a time-bounded reservation (appointment, surgery, or test)
// for a patient with a doctor. Resource assignment lives in the allocations table.
type Booking struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	BookingType     BookingType   `gorm:"type:enum('appointment','surgery','test');not null;index" json:"booking_type"`
	PatientID       uint          `gorm:"not null;index" json:"patient_id"`
	DoctorID        uint          `gorm:"not null;index" json:"doctor_id"`
	ScheduledStart  time.Time     `gorm:"not null;index" json:"scheduled_start"`
	DurationMinutes int           `gorm:"not null" json:"duration_minutes"`
	Status          BookingStatus `gorm:"type:enum('pending','scheduled','in_progress','completed','cancelled');default:'pending';index" json:"status"`
	Notes           string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time     `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	Allocations []Allocation `gorm:"foreignKey:BookingID" json:"allocations,omitempty"`
}

// TableName specifies the table name for Booking model
func (Booking) TableName() string {
	return "bookings"
}

// Window returns the booking's half-open time window [start, start+duration)
func (b *Booking) Window() TimeWindow {
	return TimeWindow{
		Start: b.ScheduledStart,
		End:   b.ScheduledStart.Add(time.Duration(b.DurationMinutes) * time.Minute),
	}
}

// TimeWindow is a half-open interval [Start, End)
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps reports whether two half-open windows intersect
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}
