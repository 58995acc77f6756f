package jobs

import (
	"context"
	"notary_admin_go/config"
	"notary_admin_go/metrics"
	"notary_admin_go/models"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var sweepNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func setupSweepTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:sweep_"+uuid.New().String()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.Notary{}))
	return db
}

func expiryIn(days int) *time.Time {
	t := sweepNow.AddDate(0, 0, days)
	return &t
}

func TestSweepLicenseStatuses(t *testing.T) {
	db := setupSweepTestDB(t)

	notaries := []models.Notary{
		{Name: "Current", LicenseActive: true, LicenseExpiryDate: expiryIn(200), LicenseStatus: "active"},
		{Name: "Drifting", LicenseActive: true, LicenseExpiryDate: expiryIn(5), LicenseStatus: "active"},
		{Name: "Lapsed", LicenseActive: true, LicenseExpiryDate: expiryIn(-2), LicenseStatus: "expiring_soon"},
		{Name: "Switched off", LicenseActive: false, LicenseExpiryDate: expiryIn(100)},
	}
	for i := range notaries {
		require.NoError(t, db.Create(&notaries[i]).Error)
	}

	updated, err := SweepLicenseStatuses(context.Background(), db, sweepNow, 30)
	require.NoError(t, err)
	assert.Equal(t, 3, updated)

	labels := map[string]string{}
	var stored []models.Notary
	require.NoError(t, db.Find(&stored).Error)
	for _, n := range stored {
		labels[n.Name] = n.LicenseStatus
	}
	assert.Equal(t, map[string]string{
		"Current":      "active",
		"Drifting":     "expiring_soon",
		"Lapsed":       "expired",
		"Switched off": "disabled",
	}, labels)

	// A second run finds nothing to change
	updated, err = SweepLicenseStatuses(context.Background(), db, sweepNow, 30)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestSweepLicenseStatuses_WarningWindow(t *testing.T) {
	db := setupSweepTestDB(t)
	n := models.Notary{Name: "Edge", LicenseActive: true, LicenseExpiryDate: expiryIn(45), LicenseStatus: "active"}
	require.NoError(t, db.Create(&n).Error)

	updated, err := SweepLicenseStatuses(context.Background(), db, sweepNow, 60)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	var stored models.Notary
	require.NoError(t, db.First(&stored, "id = ?", n.ID).Error)
	assert.Equal(t, "expiring_soon", stored.LicenseStatus)
}

func TestStartLicenseSweep(t *testing.T) {
	db := setupSweepTestDB(t)
	m := metrics.NewNop()

	c, err := StartLicenseSweep(db, &config.Config{SweepTimezone: "America/Bogota", WarningWindowDays: 30}, m, nil)
	require.NoError(t, err)
	defer c.Stop()

	entries := c.Entries()
	require.Len(t, entries, 1)
	next := entries[0].Next.In(c.Location())
	assert.Equal(t, 0, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.Zero(t, testutil.ToFloat64(m.LicenseSweepUpdate))
}

func TestStartLicenseSweep_InvalidTimezone(t *testing.T) {
	_, err := StartLicenseSweep(setupSweepTestDB(t), &config.Config{SweepTimezone: "Mars/Olympus"}, nil, nil)
	assert.Error(t, err)
}
