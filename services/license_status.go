package services

import (
	"notary_admin_go/models"
	"time"
)

// DefaultWarningWindowDays is how many days before expiry a license is flagged
const DefaultWarningWindowDays = 30

// ClassifyLicense derives the lifecycle status of a license.
// The checks run in precedence order, so exactly one status is returned for any input.
func ClassifyLicense(now time.Time, active bool, expiry *time.Time, warningWindowDays int) models.LicenseStatus {
	if warningWindowDays <= 0 {
		warningWindowDays = DefaultWarningWindowDays
	}

	switch {
	case !active:
		return models.LicenseStatusDisabled
	case expiry == nil || expiry.IsZero():
		return models.LicenseStatusActive
	case !expiry.After(now):
		return models.LicenseStatusExpired
	case !expiry.After(now.AddDate(0, 0, warningWindowDays)):
		return models.LicenseStatusExpiringSoon
	default:
		return models.LicenseStatusActive
	}
}

// ClassifyNotary classifies a notary from its raw license fields
func ClassifyNotary(now time.Time, n *models.Notary, warningWindowDays int) models.LicenseStatus {
	return ClassifyLicense(now, n.LicenseActive, n.LicenseExpiryDate, warningWindowDays)
}

// DisplayStatus returns the status to show for a single notary.
// A valid server-attached label wins; otherwise the status is computed from the dates.
// Aggregate counts never use the label.
func DisplayStatus(now time.Time, n *models.Notary, warningWindowDays int) models.LicenseStatus {
	if label := models.LicenseStatus(n.LicenseStatus); label.IsValid() {
		return label
	}
	return ClassifyNotary(now, n, warningWindowDays)
}

// DaysUntilExpiry returns whole days left on the license, 0 when expired or without expiry
func DaysUntilExpiry(now time.Time, n *models.Notary) int {
	if n.LicenseExpiryDate == nil {
		return 0
	}
	days := int(n.LicenseExpiryDate.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
