package models

import "time"

// Discharge finalizes a patient's inpatient stay. When BedID is set, creating
// the discharge is what releases that bed back to available.
type Discharge struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	PatientID      uint      `gorm:"not null;index" json:"patient_id"`
	DoctorID       uint      `gorm:"not null;index" json:"doctor_id"`
	AdmissionDate  time.Time `gorm:"not null" json:"admission_date"`
	DischargeDate  time.Time `gorm:"not null" json:"discharge_date"`
	BedID          *uint     `gorm:"index" json:"bed_id,omitempty"`
	DoctorApproval bool      `gorm:"default:false" json:"doctor_approval"`
	Notes          string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	Bed *Resource `gorm:"foreignKey:BedID" json:"bed,omitempty"`
}

// TableName specifies the table name for Discharge model
func (Discharge) TableName() string {
	return "discharges"
}
