package services

import (
	"notary_admin_go/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDayBuckets(t *testing.T) {
	appointments := []models.Appointment{
		{ID: "apt-2", Title: "Deed signing", Description: "Office 3", ScheduledAt: testNow.Add(26 * time.Hour), Status: models.AppointmentStatusPending},
		{ID: "apt-1", Title: "<b>Urgent</b> will", Description: "<script>x()</script>Estate", ScheduledAt: testNow.Add(25 * time.Hour), Status: models.AppointmentStatusCompleted},
		{ID: "apt-3", Title: "Cancelled act", ScheduledAt: testNow.Add(25 * time.Hour), Status: models.AppointmentStatusCancelled},
	}
	notaries := []models.Notary{
		{ID: "n-soon", Name: "Ana Ruiz", City: "Bogotá", LicenseActive: true, LicenseExpiryDate: daysFromNow(5)},
		{ID: "n-far", Name: "Far Away", LicenseActive: true, LicenseExpiryDate: daysFromNow(90)},
		{ID: "n-off", Name: "Disabled", LicenseActive: false, LicenseExpiryDate: daysFromNow(5)},
		{ID: "n-none", Name: "No Expiry", LicenseActive: true},
	}

	buckets := BuildDayBuckets(appointments, notaries, testNow, 30)

	require.Len(t, buckets, 2)
	assert.Equal(t, 3, buckets.Count())

	tomorrow := buckets[DayKey(testNow.AddDate(0, 0, 1))]
	require.Len(t, tomorrow, 2)
	assert.Equal(t, "apt-1", tomorrow[0].ID, "records are ordered by deadline")
	assert.Equal(t, "Urgent will", tomorrow[0].Title)
	assert.Equal(t, "Estate", tomorrow[0].Description)
	assert.Equal(t, models.DisplayRecordTypeAppointment, tomorrow[0].Type)
	assert.Equal(t, "apt-2", tomorrow[1].ID)

	expiry := buckets[DayKey(*daysFromNow(5))]
	require.Len(t, expiry, 1)
	assert.Equal(t, "n-soon", expiry[0].ID)
	assert.Equal(t, models.DisplayRecordTypeLicenseExpiry, expiry[0].Type)
	assert.Equal(t, "License expiry: Ana Ruiz", expiry[0].Title)
	assert.Equal(t, "5 days left · Bogotá", expiry[0].Description)
}

func TestBuildDayBuckets_Empty(t *testing.T) {
	buckets := BuildDayBuckets(nil, nil, testNow, 30)
	assert.Empty(t, buckets)
	assert.Equal(t, 0, buckets.Count())
}

func TestBuildDayBuckets_FeedsGrid(t *testing.T) {
	day := testNow.AddDate(0, 0, 2)
	appointments := []models.Appointment{
		{ID: "a", Title: "First", ScheduledAt: day},
		{ID: "b", Title: "Second", ScheduledAt: day.Add(time.Hour)},
	}

	buckets := BuildDayBuckets(appointments, nil, testNow, 30)
	records := FilterRecords(buckets, DayKey(day), "", DefaultSearchLimit)
	grid := PackSlots(records, false, DefaultGridSlots)

	var kinds []string
	for _, slot := range grid {
		kinds = append(kinds, slot.Kind)
	}
	assert.Equal(t, []string{SlotKindDocument, SlotKindDocument, SlotKindEmpty, SlotKindEmpty}, kinds)
}
