package models

// LicenseStatus is the lifecycle status of a licensed entity
type LicenseStatus string

// License status constants
const (
	LicenseStatusActive       LicenseStatus = "active"
	LicenseStatusExpiringSoon LicenseStatus = "expiring_soon"
	LicenseStatusExpired      LicenseStatus = "expired"
	LicenseStatusDisabled     LicenseStatus = "disabled"
)

// IsValid checks if the value is one of the known statuses
func (s LicenseStatus) IsValid() bool {
	switch s {
	case LicenseStatusActive, LicenseStatusExpiringSoon, LicenseStatusExpired, LicenseStatusDisabled:
		return true
	}
	return false
}

// GetStatusDisplay returns a human-readable status
func (s LicenseStatus) GetStatusDisplay() string {
	switch s {
	case LicenseStatusActive:
		return "Active"
	case LicenseStatusExpiringSoon:
		return "Expiring Soon"
	case LicenseStatusExpired:
		return "Expired"
	case LicenseStatusDisabled:
		return "Disabled"
	default:
		return string(s)
	}
}
