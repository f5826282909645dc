package models

import "time"

// Allocation ties one resource to one booking for the booking's time window.
// Allocations are never deleted; release marks them inactive so the table
// doubles as an append-only audit trail of every reservation ever made.
type Allocation struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	BookingID    uint         `gorm:"not null;index" json:"booking_id"`
	ResourceID   uint         `gorm:"not null;index" json:"resource_id"`
	ResourceType ResourceType `gorm:"type:enum('bed','operation_theatre','machine','staff_slot');not null" json:"resource_type"`
	StartTime    time.Time    `gorm:"not null" json:"start_time"`
	EndTime      time.Time    `gorm:"not null" json:"end_time"`
	Active       bool         `gorm:"default:true;index" json:"active"`
	CreatedAt    time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	Resource Resource `gorm:"foreignKey:ResourceID" json:"resource,omitempty"`
}

// TableName specifies the table name for Allocation model
func (Allocation) TableName() string {
	return "allocations"
}

// Window returns the allocation's half-open time window
func (a *Allocation) Window() TimeWindow {
	return TimeWindow{Start: a.StartTime, End: a.EndTime}
}
