package jobs

import (
	"context"
	"fmt"
	"notary_admin_go/config"
	"notary_admin_go/logging"
	"notary_admin_go/metrics"
	"notary_admin_go/models"
	"notary_admin_go/services"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LicenseSweepSchedule runs the sweep at midnight in the configured timezone
const LicenseSweepSchedule = "0 0 * * *"

// StartLicenseSweep schedules the nightly license label sweep and starts the cron runner.
// The caller stops the returned cron on shutdown.
func StartLicenseSweep(database *gorm.DB, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) (*cron.Cron, error) {
	logger = logging.OrNop(logger).Named("license_sweep")

	loc, err := time.LoadLocation(cfg.SweepTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid sweep timezone %q: %w", cfg.SweepTimezone, err)
	}
	c := cron.New(cron.WithLocation(loc))

	_, err = c.AddFunc(LicenseSweepSchedule, func() {
		logger.Info("running license sweep")
		updated, err := SweepLicenseStatuses(context.Background(), database, time.Now().UTC(), cfg.WarningWindowDays)
		if err != nil {
			logger.Error("license sweep failed", zap.Error(err))
			return
		}
		if m != nil {
			m.LicenseSweepUpdate.Add(float64(updated))
		}
		logger.Info("license sweep completed", zap.Int("updated", updated))
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule license sweep: %w", err)
	}

	c.Start()
	logger.Info("license sweep scheduled",
		zap.String("schedule", LicenseSweepSchedule),
		zap.String("timezone", loc.String()))
	return c, nil
}

// SweepLicenseStatuses rewrites the stored license label of every notary whose
// computed status differs from it. Returns the number of rows updated.
func SweepLicenseStatuses(ctx context.Context, database *gorm.DB, now time.Time, warningWindowDays int) (int, error) {
	var notaries []models.Notary
	err := database.WithContext(ctx).
		Select("id", "license_active", "license_expiry_date", "license_status").
		Find(&notaries).Error
	if err != nil {
		return 0, fmt.Errorf("failed to load notaries: %w", err)
	}

	updated := 0
	err = database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range notaries {
			computed := string(services.ClassifyNotary(now, &notaries[i], warningWindowDays))
			if notaries[i].LicenseStatus == computed {
				continue
			}
			if err := tx.Model(&models.Notary{}).
				Where("id = ?", notaries[i].ID).
				Update("license_status", computed).Error; err != nil {
				return fmt.Errorf("failed to update notary %s: %w", notaries[i].ID, err)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}
