package services

import (
	"context"
	"notary_admin_go/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSeedDemoData(t *testing.T) {
	t.Run("Populates an empty database", func(t *testing.T) {
		database := setupServiceTestDB(t)
		core, logs := observer.New(zapcore.InfoLevel)
		require.NoError(t, SeedDemoData(database, testNow, zap.New(core)))

		created := logs.FilterMessage("Demo data created").All()
		require.Len(t, created, 1)
		assert.Equal(t, int64(6), created[0].ContextMap()["notaries"])
		assert.Equal(t, "seed", created[0].LoggerName)

		svc := newTestDashboardService(database)
		summary, err := svc.Summary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, LicenseCounts{Total: 6, Active: 2, ExpiringSoon: 2, Expired: 1, Disabled: 1}, summary.Licenses)
		assert.Equal(t, PartnerCounts{Total: 3, Active: 2, Disabled: 1}, summary.Partners)

		stats, err := svc.GetStats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStats{Pending: 6, Completed: 1, Total: 8}, stats.Appointments)

		// Five appointments today overflow the four-slot grid
		buckets, err := svc.DayBuckets(context.Background())
		require.NoError(t, err)
		today := FilterRecords(buckets, DayKey(testNow), "", DefaultSearchLimit)
		assert.Len(t, today, 5)
		assert.Len(t, PackSlots(today, false, DefaultGridSlots), DefaultGridSlots)
	})

	t.Run("Skips when notaries exist", func(t *testing.T) {
		database := setupServiceTestDB(t)
		require.NoError(t, database.Create(&models.Notary{Name: "Existing", LicenseActive: true}).Error)

		core, logs := observer.New(zapcore.InfoLevel)
		require.NoError(t, SeedDemoData(database, testNow, zap.New(core)))
		assert.Equal(t, 1, logs.FilterMessage("Notaries already exist, skipping demo data").Len())

		var count int64
		database.Model(&models.Notary{}).Count(&count)
		assert.Equal(t, int64(1), count)
		database.Model(&models.Partner{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("Nil logger is allowed", func(t *testing.T) {
		database := setupServiceTestDB(t)
		assert.NoError(t, SeedDemoData(database, testNow, nil))
	})
}
