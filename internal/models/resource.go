package models

import "time"

// ResourceType identifies the kind of allocatable resource
type ResourceType string

const (
	ResourceBed             ResourceType = "bed"
	ResourceOperationTheatre ResourceType = "operation_theatre"
	ResourceMachine         ResourceType = "machine"
	ResourceStaffSlot       ResourceType = "staff_slot"
)

// ValidResourceType reports whether t is one of the known resource types
func ValidResourceType(t ResourceType) bool {
	switch t {
	case ResourceBed, ResourceOperationTheatre, ResourceMachine, ResourceStaffSlot:
		return true
	}
	return false
}

// ResourceStatus is the current availability state of a resource
type ResourceStatus string

const (
	ResourceAvailable   ResourceStatus = "available"
	ResourceBooked      ResourceStatus = "booked"
	ResourceMaintenance ResourceStatus = "maintenance"
	ResourceCleaning    ResourceStatus = "cleaning"
)

// ValidResourceStatus reports whether s is one of the known resource statuses
func ValidResourceStatus(s ResourceStatus) bool {
	switch s {
	case ResourceAvailable, ResourceBooked, ResourceMaintenance, ResourceCleaning:
		return true
	}
	return false
}

// Resource represents an allocatable hospital resource (bed, operation theatre,
// machine, or staff slot). Status is mutated only through the allocation engine
// and the discharge coordinator, never directly by API callers.
type Resource struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ResourceType ResourceType   `gorm:"type:enum('bed','operation_theatre','machine','staff_slot');not null;index:idx_type_identifier,unique" json:"resource_type"`
	Identifier   string         `gorm:"size:50;not null;index:idx_type_identifier,unique" json:"identifier"`
	Location     string         `gorm:"size:100" json:"location,omitempty"`
	Status       ResourceStatus `gorm:"type:enum('available','booked','maintenance','cleaning');default:'available'" json:"status"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
}

// TableName specifies the table name for Resource model
func (Resource) TableName() string {
	return "resources"
}
