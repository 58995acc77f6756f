package services

import (
	"notary_admin_go/models"
	"time"
)

// LicenseCounts holds per-status notary counts for summary widgets
type LicenseCounts struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	ExpiringSoon int64 `json:"expiring_soon"`
	Expired      int64 `json:"expired"`
	Disabled     int64 `json:"disabled"`
}

// Sum adds up the status buckets
func (c LicenseCounts) Sum() int64 {
	return c.Active + c.ExpiringSoon + c.Expired + c.Disabled
}

// Add counts one notary in the bucket for status. Total is left to the caller.
func (c *LicenseCounts) Add(status models.LicenseStatus) {
	switch status {
	case models.LicenseStatusActive:
		c.Active++
	case models.LicenseStatusExpiringSoon:
		c.ExpiringSoon++
	case models.LicenseStatusExpired:
		c.Expired++
	case models.LicenseStatusDisabled:
		c.Disabled++
	}
}

// PartnerCounts holds partner counts for summary widgets
type PartnerCounts struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Disabled int64 `json:"disabled"`
}

// AggregateLicenseStats counts notaries per lifecycle status using ClassifyLicense.
// Buckets are mutually exclusive, so Sum() always equals Total.
func AggregateLicenseStats(notaries []models.Notary, now time.Time, warningWindowDays int) LicenseCounts {
	counts := LicenseCounts{Total: int64(len(notaries))}

	for i := range notaries {
		counts.Add(ClassifyNotary(now, &notaries[i], warningWindowDays))
	}

	return counts
}

// AggregateLicenseStatsLegacy reproduces the older counting rule where expired ignores
// the active flag. An inactive, expired notary lands in both Disabled and Expired,
// so Sum() may exceed Total. Kept for reconciling historical reports.
func AggregateLicenseStatsLegacy(notaries []models.Notary, now time.Time, warningWindowDays int) LicenseCounts {
	if warningWindowDays <= 0 {
		warningWindowDays = DefaultWarningWindowDays
	}
	warningEdge := now.AddDate(0, 0, warningWindowDays)
	counts := LicenseCounts{Total: int64(len(notaries))}

	for _, n := range notaries {
		expiry := n.LicenseExpiryDate
		hasExpiry := expiry != nil && !expiry.IsZero()

		if !n.LicenseActive {
			counts.Disabled++
		}
		if hasExpiry && !expiry.After(now) {
			counts.Expired++
		}
		if n.LicenseActive {
			switch {
			case !hasExpiry || expiry.After(warningEdge):
				counts.Active++
			case expiry.After(now):
				counts.ExpiringSoon++
			}
		}
	}

	return counts
}

// AggregatePartnerStats counts partners by their derived status
func AggregatePartnerStats(partners []models.Partner) PartnerCounts {
	counts := PartnerCounts{Total: int64(len(partners))}
	for i := range partners {
		if partners[i].Status() == models.PartnerStatusActive {
			counts.Active++
		} else {
			counts.Disabled++
		}
	}
	return counts
}
