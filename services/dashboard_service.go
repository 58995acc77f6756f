package services

import (
	"context"
	"fmt"
	"math"
	"notary_admin_go/models"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// DayBucketRangeDays bounds how far back and ahead appointments are bucketed
const DayBucketRangeDays = 90

// DashboardSummary feeds the summary widgets
type DashboardSummary struct {
	Licenses LicenseCounts `json:"licenses"`
	Partners PartnerCounts `json:"partners"`
}

// DashboardService computes the read-side dashboard figures from the database
type DashboardService struct {
	DB                *gorm.DB
	WarningWindowDays int
	Now               func() time.Time
}

// NewDashboardService creates a dashboard service using the wall clock
func NewDashboardService(db *gorm.DB, warningWindowDays int) *DashboardService {
	return &DashboardService{
		DB:                db,
		WarningWindowDays: warningWindowDays,
		Now:               func() time.Time { return time.Now().UTC() },
	}
}

// GetStats builds a fresh StatSnapshot
func (s *DashboardService) GetStats(ctx context.Context) (models.StatSnapshot, error) {
	now := s.Now()
	var (
		notaries     []models.Notary
		appointments models.AppointmentStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.DB.WithContext(gctx).
			Select("id", "license_active", "license_expiry_date", "payment_amount", "payment_frequency").
			Find(&notaries).Error
	})
	g.Go(func() error {
		var err error
		appointments, err = s.countAppointments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.StatSnapshot{}, fmt.Errorf("failed to load dashboard stats: %w", err)
	}

	counts := AggregateLicenseStats(notaries, now, s.WarningWindowDays)
	return models.StatSnapshot{
		Notaries: models.NotaryStats{
			Total:           counts.Total,
			ActiveLicenses:  counts.Active,
			ExpiredLicenses: counts.Expired,
			ExpiringSoon:    counts.ExpiringSoon,
		},
		Appointments: appointments,
		Revenue:      computeRevenue(notaries, now, s.WarningWindowDays),
	}, nil
}

func (s *DashboardService) countAppointments(ctx context.Context) (models.AppointmentStats, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := s.DB.WithContext(ctx).Model(&models.Appointment{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return models.AppointmentStats{}, err
	}

	var stats models.AppointmentStats
	for _, row := range rows {
		stats.Total += row.Count
		switch row.Status {
		case models.AppointmentStatusPending:
			stats.Pending = row.Count
		case models.AppointmentStatusCompleted:
			stats.Completed = row.Count
		}
	}
	return stats, nil
}

// computeRevenue sums fees of notaries whose license is still in force.
// Monthly and annual are the raw sums per billing frequency; the projection
// annualizes both.
func computeRevenue(notaries []models.Notary, now time.Time, warningWindowDays int) models.RevenueStats {
	var revenue models.RevenueStats
	for i := range notaries {
		status := ClassifyNotary(now, &notaries[i], warningWindowDays)
		if status != models.LicenseStatusActive && status != models.LicenseStatusExpiringSoon {
			continue
		}
		if notaries[i].IsAnnual() {
			revenue.Annual += notaries[i].PaymentAmount
		} else {
			revenue.Monthly += notaries[i].PaymentAmount
		}
	}
	revenue.ProjectedAnnual = roundCents(revenue.Monthly*12 + revenue.Annual)
	revenue.Monthly = roundCents(revenue.Monthly)
	revenue.Annual = roundCents(revenue.Annual)
	return revenue
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summary returns the license and partner counts for the summary widgets
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	var (
		notaries []models.Notary
		partners []models.Partner
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.DB.WithContext(gctx).Select("id", "license_active", "license_expiry_date").Find(&notaries).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(gctx).Select("id", "is_active").Find(&partners).Error
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard summary: %w", err)
	}

	return &DashboardSummary{
		Licenses: AggregateLicenseStats(notaries, s.Now(), s.WarningWindowDays),
		Partners: AggregatePartnerStats(partners),
	}, nil
}

// DayBuckets loads appointments around today and expiring licenses, bucketed by day
func (s *DashboardService) DayBuckets(ctx context.Context) (DayBuckets, error) {
	now := s.Now()
	from := now.AddDate(0, 0, -DayBucketRangeDays)
	to := now.AddDate(0, 0, DayBucketRangeDays)

	var (
		appointments []models.Appointment
		notaries     []models.Notary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.DB.WithContext(gctx).
			Where("scheduled_at >= ? AND scheduled_at <= ?", from, to).
			Where("status <> ?", models.AppointmentStatusCancelled).
			Order("scheduled_at ASC").
			Find(&appointments).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(gctx).
			Where("license_active = ? AND license_expiry_date IS NOT NULL", true).
			Find(&notaries).Error
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard records: %w", err)
	}

	return BuildDayBuckets(appointments, notaries, now, s.WarningWindowDays), nil
}
