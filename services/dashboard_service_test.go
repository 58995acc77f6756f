package services

import (
	"context"
	"notary_admin_go/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedDashboardData(t *testing.T, database *gorm.DB) {
	t.Helper()

	notaries := []models.Notary{
		{Name: "Alba", LicenseActive: true, PaymentAmount: 100, PaymentFrequency: models.PaymentFrequencyMonthly},
		{Name: "Bruno", LicenseActive: true, LicenseExpiryDate: daysFromNow(10), PaymentAmount: 1200, PaymentFrequency: models.PaymentFrequencyAnnual},
		{Name: "Carla", LicenseActive: false, LicenseExpiryDate: daysFromNow(-5), PaymentAmount: 50, PaymentFrequency: models.PaymentFrequencyMonthly},
		{Name: "Diego", LicenseActive: true, LicenseExpiryDate: daysFromNow(-1), PaymentAmount: 70, PaymentFrequency: models.PaymentFrequencyMonthly},
		{Name: "Elena", LicenseActive: true, LicenseExpiryDate: daysFromNow(200), PaymentAmount: 30.5, PaymentFrequency: models.PaymentFrequencyMonthly},
	}
	for i := range notaries {
		require.NoError(t, database.Create(&notaries[i]).Error)
	}

	appointments := []models.Appointment{
		{NotaryID: notaries[0].ID, Title: "Deed signing", ScheduledAt: testNow.Add(24 * time.Hour), Status: models.AppointmentStatusPending},
		{NotaryID: notaries[0].ID, Title: "Power of attorney", ScheduledAt: testNow.Add(48 * time.Hour), Status: models.AppointmentStatusPending},
		{NotaryID: notaries[1].ID, Title: "Will reading", ScheduledAt: testNow.Add(-48 * time.Hour), Status: models.AppointmentStatusCompleted},
		{NotaryID: notaries[1].ID, Title: "Cancelled", ScheduledAt: testNow.Add(24 * time.Hour), Status: models.AppointmentStatusCancelled},
	}
	for i := range appointments {
		require.NoError(t, database.Create(&appointments[i]).Error)
	}

	partners := []models.Partner{
		{Name: "Registry Office", Category: "government", IsActive: true},
		{Name: "Bank Uno", Category: "bank", IsActive: true},
		{Name: "Old Courier", Category: "logistics", IsActive: false},
	}
	for i := range partners {
		require.NoError(t, database.Create(&partners[i]).Error)
	}
}

func newTestDashboardService(database *gorm.DB) *DashboardService {
	svc := NewDashboardService(database, 30)
	svc.Now = fixedClock(testNow)
	return svc
}

func TestDashboardService_GetStats(t *testing.T) {
	database := setupServiceTestDB(t)
	seedDashboardData(t, database)
	svc := newTestDashboardService(database)

	snapshot, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, models.NotaryStats{Total: 5, ActiveLicenses: 2, ExpiredLicenses: 1, ExpiringSoon: 1}, snapshot.Notaries)
	assert.Equal(t, models.AppointmentStats{Pending: 2, Completed: 1, Total: 4}, snapshot.Appointments)
	assert.Equal(t, models.RevenueStats{Monthly: 130.5, Annual: 1200, ProjectedAnnual: 2766}, snapshot.Revenue)
}

func TestDashboardService_GetStatsIsStable(t *testing.T) {
	database := setupServiceTestDB(t)
	seedDashboardData(t, database)
	svc := newTestDashboardService(database)

	first, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	second, err := svc.GetStats(context.Background())
	require.NoError(t, err)

	published, _ := ReconcileSnapshot(nil, first)
	again, changed := ReconcileSnapshot(published, second)
	assert.False(t, changed)
	assert.Same(t, published, again)
}

func TestDashboardService_GetStatsEmptyDatabase(t *testing.T) {
	svc := newTestDashboardService(setupServiceTestDB(t))

	snapshot, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StatSnapshot{}, snapshot)
}

func TestDashboardService_GetStatsCancelledContext(t *testing.T) {
	svc := newTestDashboardService(setupServiceTestDB(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.GetStats(ctx)
	assert.Error(t, err)
}

func TestDashboardService_Summary(t *testing.T) {
	database := setupServiceTestDB(t)
	seedDashboardData(t, database)
	svc := newTestDashboardService(database)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, LicenseCounts{Total: 5, Active: 2, ExpiringSoon: 1, Expired: 1, Disabled: 1}, summary.Licenses)
	assert.Equal(t, summary.Licenses.Total, summary.Licenses.Sum())
	assert.Equal(t, PartnerCounts{Total: 3, Active: 2, Disabled: 1}, summary.Partners)
}

func TestDashboardService_DayBuckets(t *testing.T) {
	database := setupServiceTestDB(t)
	seedDashboardData(t, database)
	svc := newTestDashboardService(database)

	buckets, err := svc.DayBuckets(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, buckets.Count())

	tomorrow := buckets[DayKey(testNow.Add(24*time.Hour))]
	require.Len(t, tomorrow, 1)
	assert.Equal(t, "Deed signing", tomorrow[0].Title)

	expiring := buckets[DayKey(*daysFromNow(10))]
	require.Len(t, expiring, 1)
	assert.Equal(t, "License expiry: Bruno", expiring[0].Title)

	past := buckets[DayKey(testNow.Add(-48*time.Hour))]
	require.Len(t, past, 1)
	assert.Equal(t, "Will reading", past[0].Title)
}
