package services

import (
	"context"
	"errors"
	"fmt"
	"notary_admin_go/models"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrInvalidFilter is returned when a list filter has an unknown value
var ErrInvalidFilter = errors.New("invalid filter")

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern builds a lower-cased LIKE pattern that matches search literally.
// Callers must pair it with ESCAPE '\'.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}

// NotaryFilters constrains ListNotaries. Zero values mean no constraint.
type NotaryFilters struct {
	Status models.LicenseStatus
	Active *bool
	City   string
	Search string
}

// PartnerFilters constrains ListPartners. Zero values mean no constraint.
type PartnerFilters struct {
	Status   string
	Active   *bool
	City     string
	Category string
	Search   string
}

// NotaryView is a notary together with its derived status
type NotaryView struct {
	models.Notary
	Status          models.LicenseStatus `json:"status"`
	ComputedStatus  models.LicenseStatus `json:"computed_status"`
	DaysUntilExpiry int                  `json:"days_until_expiry"`
}

// PartnerView is a partner together with its derived status
type PartnerView struct {
	models.Partner
	Status string `json:"status"`
}

// EntityService lists notaries and partners for the dashboard tables
type EntityService struct {
	DB                *gorm.DB
	WarningWindowDays int
	Now               func() time.Time
}

// NewEntityService creates an entity service using the wall clock
func NewEntityService(db *gorm.DB, warningWindowDays int) *EntityService {
	return &EntityService{
		DB:                db,
		WarningWindowDays: warningWindowDays,
		Now:               func() time.Time { return time.Now().UTC() },
	}
}

// ListNotaries returns notaries matching the filters, ordered by name.
// The status filter uses the computed status, never the stored label.
func (s *EntityService) ListNotaries(ctx context.Context, filters NotaryFilters) ([]NotaryView, error) {
	if filters.Status != "" && !filters.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown license status %q", ErrInvalidFilter, filters.Status)
	}

	query := s.DB.WithContext(ctx).Model(&models.Notary{})
	if filters.Active != nil {
		query = query.Where("license_active = ?", *filters.Active)
	}
	if city := strings.TrimSpace(filters.City); city != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(city))
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		like := containsPattern(search)
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(notes) LIKE ? ESCAPE '\')`, like, like, like)
	}

	var notaries []models.Notary
	if err := query.Order("name ASC").Find(&notaries).Error; err != nil {
		return nil, fmt.Errorf("failed to list notaries: %w", err)
	}

	now := s.Now()
	views := make([]NotaryView, 0, len(notaries))
	for _, n := range notaries {
		computed := ClassifyNotary(now, &n, s.WarningWindowDays)
		if filters.Status != "" && computed != filters.Status {
			continue
		}
		views = append(views, NotaryView{
			Notary:          n,
			Status:          DisplayStatus(now, &n, s.WarningWindowDays),
			ComputedStatus:  computed,
			DaysUntilExpiry: DaysUntilExpiry(now, &n),
		})
	}
	return views, nil
}

// ListPartners returns partners matching the filters, ordered by name
func (s *EntityService) ListPartners(ctx context.Context, filters PartnerFilters) ([]PartnerView, error) {
	query := s.DB.WithContext(ctx).Model(&models.Partner{})

	switch filters.Status {
	case "":
	case models.PartnerStatusActive:
		query = query.Where("is_active = ?", true)
	case models.PartnerStatusDisabled:
		query = query.Where("is_active = ?", false)
	default:
		return nil, fmt.Errorf("%w: unknown partner status %q", ErrInvalidFilter, filters.Status)
	}
	if filters.Active != nil {
		query = query.Where("is_active = ?", *filters.Active)
	}
	if city := strings.TrimSpace(filters.City); city != "" {
		query = query.Where("LOWER(city) = ?", strings.ToLower(city))
	}
	if category := strings.TrimSpace(filters.Category); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		like := containsPattern(search)
		query = query.Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR phone LIKE ? ESCAPE '\')`, like, like, like)
	}

	var partners []models.Partner
	if err := query.Order("name ASC").Find(&partners).Error; err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}

	views := make([]PartnerView, 0, len(partners))
	for _, p := range partners {
		views = append(views, PartnerView{Partner: p, Status: p.Status()})
	}
	return views, nil
}

// ListActCategories returns the active act categories
func (s *EntityService) ListActCategories(ctx context.Context) ([]models.ActCategory, error) {
	var categories []models.ActCategory
	err := s.DB.WithContext(ctx).Where("is_active = ?", true).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list act categories: %w", err)
	}
	return categories, nil
}
