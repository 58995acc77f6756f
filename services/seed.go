package services

import (
	"fmt"
	"notary_admin_go/logging"
	"notary_admin_go/models"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedDemoData fills an empty database with notaries, partners, act categories and
// appointments spread around now. It does nothing when notaries already exist.
func SeedDemoData(db *gorm.DB, now time.Time, logger *zap.Logger) error {
	logger = logging.OrNop(logger).Named("seed")

	var count int64
	if err := db.Model(&models.Notary{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Info("Notaries already exist, skipping demo data", zap.Int64("notaries", count))
		return nil
	}

	day := func(offset int) *time.Time {
		t := now.AddDate(0, 0, offset)
		return &t
	}

	notaries := []models.Notary{
		{Name: "Notaría Primera", Email: "primera@notarias.example", City: "Bogotá", LicenseActive: true, LicenseStartDate: day(-400), LicenseExpiryDate: day(330), PaymentAmount: 180, PaymentFrequency: models.PaymentFrequencyMonthly},
		{Name: "Notaría Segunda", Email: "segunda@notarias.example", City: "Bogotá", LicenseActive: true, LicenseStartDate: day(-350), LicenseExpiryDate: day(12), PaymentAmount: 1900, PaymentFrequency: models.PaymentFrequencyAnnual, Notes: "Renewal paperwork sent"},
		{Name: "Notaría Tercera", Email: "tercera@notarias.example", City: "Medellín", LicenseActive: true, LicenseStartDate: day(-380), LicenseExpiryDate: day(-3), PaymentAmount: 150, PaymentFrequency: models.PaymentFrequencyMonthly},
		{Name: "Notaría Cuarta", Email: "cuarta@notarias.example", City: "Cali", LicenseActive: false, LicenseStartDate: day(-200), LicenseExpiryDate: day(160), PaymentAmount: 120, PaymentFrequency: models.PaymentFrequencyMonthly, Notes: "Suspended pending audit"},
		{Name: "Notaría Quinta", Email: "quinta@notarias.example", City: "Barranquilla", LicenseActive: true, PaymentAmount: 95.5, PaymentFrequency: models.PaymentFrequencyMonthly},
		{Name: "Notaría Sexta", Email: "sexta@notarias.example", City: "Medellín", LicenseActive: true, LicenseStartDate: day(-330), LicenseExpiryDate: day(25), PaymentAmount: 2100, PaymentFrequency: models.PaymentFrequencyAnnual},
	}

	partners := []models.Partner{
		{Name: "Superintendencia de Notariado", Category: "government", City: "Bogotá", Email: "contacto@super.example", IsActive: true},
		{Name: "Banco Andino", Category: "bank", City: "Medellín", Phone: "+57 604 555 0101", IsActive: true},
		{Name: "Mensajería Express", Category: "logistics", City: "Cali", IsActive: false},
	}

	categories := []models.ActCategory{
		{Name: "Deeds", Description: "Property deeds and transfers", IsActive: true},
		{Name: "Powers of attorney", Description: "General and special powers", IsActive: true},
		{Name: "Wills", Description: "Open and closed wills", IsActive: true},
		{Name: "Marriages", Description: "Civil marriages before a notary", IsActive: false},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&notaries).Error; err != nil {
			return fmt.Errorf("failed to seed notaries: %w", err)
		}
		if err := tx.Create(&partners).Error; err != nil {
			return fmt.Errorf("failed to seed partners: %w", err)
		}
		if err := tx.Create(&categories).Error; err != nil {
			return fmt.Errorf("failed to seed act categories: %w", err)
		}

		at := func(offsetDays, hour int) time.Time {
			d := now.AddDate(0, 0, offsetDays)
			return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
		}
		appointments := []models.Appointment{
			{NotaryID: notaries[0].ID, ActCategoryID: &categories[0].ID, Title: "Deed signing", Description: "Apartment 402 transfer", ScheduledAt: at(0, 9), Status: models.AppointmentStatusPending},
			{NotaryID: notaries[0].ID, ActCategoryID: &categories[1].ID, Title: "Power of attorney", Description: "Special power for vehicle sale", ScheduledAt: at(0, 11), Status: models.AppointmentStatusPending},
			{NotaryID: notaries[1].ID, ActCategoryID: &categories[2].ID, Title: "Will reading", ScheduledAt: at(0, 15), Status: models.AppointmentStatusPending},
			{NotaryID: notaries[1].ID, ActCategoryID: &categories[0].ID, Title: "Mortgage release", Description: "Banco Andino release letter", ScheduledAt: at(0, 16), Status: models.AppointmentStatusPending},
			{NotaryID: notaries[2].ID, ActCategoryID: &categories[0].ID, Title: "Property transfer", ScheduledAt: at(0, 17), Status: models.AppointmentStatusPending},
			{NotaryID: notaries[4].ID, ActCategoryID: &categories[1].ID, Title: "Power of attorney", ScheduledAt: at(1, 10), Status: models.AppointmentStatusPending},
			{NotaryID: notaries[5].ID, ActCategoryID: &categories[2].ID, Title: "Will update", ScheduledAt: at(-1, 10), Status: models.AppointmentStatusCompleted, CompletedAt: timePointer(at(-1, 11))},
			{NotaryID: notaries[5].ID, Title: "Deed signing", ScheduledAt: at(2, 14), Status: models.AppointmentStatusCancelled},
		}
		if err := tx.Create(&appointments).Error; err != nil {
			return fmt.Errorf("failed to seed appointments: %w", err)
		}

		logger.Info("Demo data created",
			zap.Int("notaries", len(notaries)),
			zap.Int("partners", len(partners)),
			zap.Int("act_categories", len(categories)),
			zap.Int("appointments", len(appointments)))
		return nil
	})
}

func timePointer(t time.Time) *time.Time {
	return &t
}
