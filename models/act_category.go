package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActCategory groups the notarial acts offered on the platform
type ActCategory struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name        string `gorm:"size:150;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"not null" json:"is_active"`
}

// BeforeCreate hook to generate UUID
func (a *ActCategory) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (ActCategory) TableName() string {
	return "act_categories"
}
