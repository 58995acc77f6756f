package services

import (
	"fmt"
	"notary_admin_go/models"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

var displayTextPolicy = bluemonday.StrictPolicy()

// DayBuckets maps a YYYY-MM-DD key to the records due that day
type DayBuckets map[string][]models.DisplayRecord

// Count returns the number of records across all days
func (b DayBuckets) Count() int {
	total := 0
	for _, records := range b {
		total += len(records)
	}
	return total
}

// BuildDayBuckets derives the dashboard's day-bucketed records.
// Cancelled appointments are skipped; notaries appear only while their license is
// inside the warning window, keyed by the expiry day.
func BuildDayBuckets(appointments []models.Appointment, notaries []models.Notary, now time.Time, warningWindowDays int) DayBuckets {
	buckets := DayBuckets{}

	for _, apt := range appointments {
		if apt.Status == models.AppointmentStatusCancelled {
			continue
		}
		key := DayKey(apt.ScheduledAt)
		buckets[key] = append(buckets[key], models.DisplayRecord{
			ID:          apt.ID,
			Type:        models.DisplayRecordTypeAppointment,
			Title:       sanitizeDisplayText(apt.Title),
			Description: sanitizeDisplayText(apt.Description),
			Deadline:    apt.ScheduledAt,
		})
	}

	for i := range notaries {
		n := &notaries[i]
		if ClassifyNotary(now, n, warningWindowDays) != models.LicenseStatusExpiringSoon {
			continue
		}
		key := DayKey(*n.LicenseExpiryDate)
		buckets[key] = append(buckets[key], models.DisplayRecord{
			ID:          n.ID,
			Type:        models.DisplayRecordTypeLicenseExpiry,
			Title:       fmt.Sprintf("License expiry: %s", sanitizeDisplayText(n.Name)),
			Description: licenseExpiryDescription(now, n),
			Deadline:    *n.LicenseExpiryDate,
		})
	}

	for key := range buckets {
		records := buckets[key]
		sort.SliceStable(records, func(i, j int) bool {
			if !records[i].Deadline.Equal(records[j].Deadline) {
				return records[i].Deadline.Before(records[j].Deadline)
			}
			return records[i].ID < records[j].ID
		})
	}

	return buckets
}

func licenseExpiryDescription(now time.Time, n *models.Notary) string {
	parts := []string{fmt.Sprintf("%d days left", DaysUntilExpiry(now, n))}
	if n.City != "" {
		parts = append(parts, sanitizeDisplayText(n.City))
	}
	if notes := sanitizeDisplayText(n.Notes); notes != "" {
		parts = append(parts, notes)
	}
	return strings.Join(parts, " · ")
}

func sanitizeDisplayText(s string) string {
	return strings.TrimSpace(displayTextPolicy.Sanitize(s))
}
