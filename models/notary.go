package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment frequency constants
const (
	PaymentFrequencyMonthly = "monthly"
	PaymentFrequencyAnnual  = "annual"
)

// Notary is a licensed entity whose lifecycle status is derived from its license dates
type Notary struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Identity
	Name  string `gorm:"size:200;not null" json:"name"`
	Email string `gorm:"size:255;index" json:"email"`
	City  string `gorm:"size:100;index" json:"city"`

	// License
	LicenseActive     bool       `gorm:"not null;index" json:"license_active"`
	LicenseStartDate  *time.Time `json:"license_start_date,omitempty"`
	LicenseExpiryDate *time.Time `gorm:"index" json:"license_expiry_date,omitempty"`

	// Server-attached label, refreshed by the nightly sweep. Display override only.
	LicenseStatus string `gorm:"size:20;index" json:"license_status,omitempty"`

	// Billing
	PaymentAmount    float64 `gorm:"not null;default:0" json:"payment_amount"`
	PaymentFrequency string  `gorm:"size:10;not null;default:'monthly'" json:"payment_frequency"`

	Notes string `gorm:"type:text" json:"notes"`
}

// BeforeCreate hook to generate UUID
func (n *Notary) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.PaymentFrequency == "" {
		n.PaymentFrequency = PaymentFrequencyMonthly
	}
	return nil
}

// TableName specifies the table name
func (Notary) TableName() string {
	return "notaries"
}

// IsAnnual reports whether the notary is billed yearly
func (n *Notary) IsAnnual() bool {
	return n.PaymentFrequency == PaymentFrequencyAnnual
}
