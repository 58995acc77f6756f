package handlers

import (
	"io"
	"net/http/httptest"
	"notary_admin_go/config"
	"notary_admin_go/db"
	"notary_admin_go/metrics"
	"notary_admin_go/models"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var handlerTestNow = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	return &config.Config{
		Environment:       "test",
		WarningWindowDays: 30,
		GridSlots:         4,
		SearchLimit:       4,
	}
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Use unique shared memory name to isolate tests while allowing concurrent queries
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, testDB.AutoMigrate(db.Models()...))

	InitServices(testDB, testConfig(), metrics.NewNop(), nil)
	dashboardService.Now = func() time.Time { return handlerTestNow }
	entityService.Now = func() time.Time { return handlerTestNow }

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return e, c, rec
}

func daysAhead(days int) *time.Time {
	t := handlerTestNow.AddDate(0, 0, days)
	return &t
}

func seedHandlerData(t *testing.T, database *gorm.DB) {
	t.Helper()

	notaries := []models.Notary{
		{Name: "Alba Ríos", City: "Bogotá", LicenseActive: true, PaymentAmount: 100, PaymentFrequency: models.PaymentFrequencyMonthly},
		{Name: "Bruno Paz", City: "Cali", LicenseActive: true, LicenseExpiryDate: daysAhead(10), PaymentAmount: 1200, PaymentFrequency: models.PaymentFrequencyAnnual},
		{Name: "Carla Gil", City: "Bogotá", LicenseActive: false, LicenseExpiryDate: daysAhead(-5), PaymentAmount: 50},
	}
	for i := range notaries {
		require.NoError(t, database.Create(&notaries[i]).Error)
	}

	appointments := []models.Appointment{
		{NotaryID: notaries[0].ID, Title: "Deed signing", ScheduledAt: handlerTestNow.Add(time.Hour), Status: models.AppointmentStatusPending},
		{NotaryID: notaries[0].ID, Title: "Power of attorney", ScheduledAt: handlerTestNow.Add(2 * time.Hour), Status: models.AppointmentStatusPending},
		{NotaryID: notaries[1].ID, Title: "Will reading", ScheduledAt: handlerTestNow.AddDate(0, 0, 1), Status: models.AppointmentStatusCompleted},
	}
	for i := range appointments {
		require.NoError(t, database.Create(&appointments[i]).Error)
	}

	partners := []models.Partner{
		{Name: "Registry Office", Category: "government", City: "Bogotá", IsActive: true},
		{Name: "Old Courier", Category: "logistics", City: "Cali", IsActive: false},
	}
	for i := range partners {
		require.NoError(t, database.Create(&partners[i]).Error)
	}
}
