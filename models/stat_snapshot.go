package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// NotaryStats holds the license counters shown on the dashboard
type NotaryStats struct {
	Total           int64 `json:"total"`
	ActiveLicenses  int64 `json:"active_licenses"`
	ExpiredLicenses int64 `json:"expired_licenses"`
	ExpiringSoon    int64 `json:"expiring_soon"`
}

// AppointmentStats holds the appointment counters shown on the dashboard
type AppointmentStats struct {
	Pending   int64 `json:"pending"`
	Completed int64 `json:"completed"`
	Total     int64 `json:"total"`
}

// RevenueStats holds the billing figures shown on the dashboard
type RevenueStats struct {
	Monthly         float64 `json:"monthly"`
	Annual          float64 `json:"annual"`
	ProjectedAnnual float64 `json:"projected_annual"`
}

// StatSnapshot is the aggregate statistics value fetched at one point in time.
// It is comparable with ==, and is replaced wholesale instead of being mutated.
type StatSnapshot struct {
	Notaries     NotaryStats      `json:"notaries"`
	Appointments AppointmentStats `json:"appointments"`
	Revenue      RevenueStats     `json:"revenue"`
}

// Equal reports whether both snapshots carry the same figures
func (s StatSnapshot) Equal(other StatSnapshot) bool {
	return s == other
}

// Hash returns a content hash of the snapshot
func (s StatSnapshot) Hash() string {
	// Marshalling a struct of numbers cannot fail
	data, _ := json.Marshal(s)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
