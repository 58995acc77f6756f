package models

import "time"

// Display record types
const (
	DisplayRecordTypeAppointment   = "appointment"
	DisplayRecordTypeLicenseExpiry = "license_expiry"
)

// DisplayRecord is the normalized, render-only view of a dashboard item.
// It is rebuilt on every request and never persisted.
type DisplayRecord struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
}
