package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment status constants
const (
	AppointmentStatusPending   = "PENDING"
	AppointmentStatusCompleted = "COMPLETED"
	AppointmentStatusCancelled = "CANCELLED"
)

// Appointment is a scheduled notarial act with a notary
type Appointment struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	NotaryID string  `gorm:"type:uuid;index;not null" json:"notary_id"`
	Notary   *Notary `gorm:"foreignKey:NotaryID" json:"notary,omitempty"`

	// Optional act category
	ActCategoryID *string      `gorm:"type:uuid;index" json:"act_category_id,omitempty"`
	ActCategory   *ActCategory `gorm:"foreignKey:ActCategoryID" json:"act_category,omitempty"`

	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ScheduledAt time.Time `gorm:"not null;index" json:"scheduled_at"` // UTC

	Status      string     `gorm:"size:20;default:'PENDING';index" json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// BeforeCreate hook to generate UUID
func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = AppointmentStatusPending
	}
	return nil
}

// TableName specifies the table name
func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if the appointment has not been completed or cancelled
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsCompleted checks if the appointment was completed
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentStatusCompleted
}
