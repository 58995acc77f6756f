package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Partner status constants
const (
	PartnerStatusActive   = "active"
	PartnerStatusDisabled = "disabled"
)

// Partner is an external organization listed on the dashboard
type Partner struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name     string `gorm:"size:200;not null" json:"name"`
	Category string `gorm:"size:100;index" json:"category"`
	Email    string `gorm:"size:255" json:"email"`
	City     string `gorm:"size:100;index" json:"city"`
	Phone    string `gorm:"size:30" json:"phone"`
	IsActive bool   `gorm:"not null;index" json:"is_active"`
}

// BeforeCreate hook to generate UUID
func (p *Partner) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (Partner) TableName() string {
	return "partners"
}

// Status mirrors IsActive
func (p *Partner) Status() string {
	if p.IsActive {
		return PartnerStatusActive
	}
	return PartnerStatusDisabled
}
