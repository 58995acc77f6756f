package services

import (
	"notary_admin_go/models"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique shared-cache name so concurrent queries see the same in-memory database
	dbName := "mem_" + uuid.New().String()
	database, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(
		&models.Notary{},
		&models.Partner{},
		&models.ActCategory{},
		&models.Appointment{},
	))
	return database
}

func fixedClock(now time.Time) func() time.Time {
	return func() time.Time { return now }
}
