package handlers

import (
	"context"
	"net/http"
	"notary_admin_go/config"
	"notary_admin_go/metrics"
	"notary_admin_go/models"
	"notary_admin_go/services"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var (
	dashboardService *services.DashboardService
	entityService    *services.EntityService
	handlerConfig    *config.Config
	handlerMetrics   *metrics.Metrics
	handlerLogger    = zap.NewNop()

	// Concurrent stats requests share one computation
	statsGroup singleflight.Group
)

// InitServices wires the services used by the API handlers
func InitServices(database *gorm.DB, cfg *config.Config, m *metrics.Metrics, logger *zap.Logger) {
	dashboardService = services.NewDashboardService(database, cfg.WarningWindowDays)
	entityService = services.NewEntityService(database, cfg.WarningWindowDays)
	handlerConfig = cfg
	handlerMetrics = m
	if handlerMetrics == nil {
		handlerMetrics = metrics.NewNop()
	}
	handlerLogger = zap.NewNop()
	if logger != nil {
		handlerLogger = logger.Named("handlers")
	}
}

// GridResponse is the payload of the dashboard document grid
type GridResponse struct {
	Date    string          `json:"date"`
	Query   string          `json:"query"`
	Matches int             `json:"matches"`
	Slots   []services.Slot `json:"slots"`
}

// statsTimeout bounds one shared stats computation
const statsTimeout = 30 * time.Second

// DashboardStatsHandler returns the current statistics snapshot.
// The shared computation runs detached from any single request, so one caller
// disconnecting does not fail the others waiting on it.
// GET /api/dashboard/stats
func DashboardStatsHandler(c echo.Context) error {
	ctx := c.Request().Context()

	ch := statsGroup.DoChan("stats", func() (interface{}, error) {
		handlerMetrics.StatsRequests.Inc()
		computeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), statsTimeout)
		defer cancel()
		return dashboardService.GetStats(computeCtx)
	})

	select {
	case <-ctx.Done():
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "Request cancelled"})
	case res := <-ch:
		if res.Err != nil {
			handlerLogger.Error("failed to compute dashboard stats", zap.Error(res.Err), zap.Bool("shared", res.Shared))
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load statistics"})
		}
		return c.JSON(http.StatusOK, res.Val.(models.StatSnapshot))
	}
}

// DashboardSummaryHandler returns license and partner counts
// GET /api/dashboard/summary
func DashboardSummaryHandler(c echo.Context) error {
	summary, err := dashboardService.Summary(c.Request().Context())
	if err != nil {
		handlerLogger.Error("failed to compute dashboard summary", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load summary"})
	}
	return c.JSON(http.StatusOK, summary)
}

// DashboardGridHandler returns the records for the selected day, or the search
// matches across all days, packed into the fixed slot grid
// GET /api/dashboard/grid?date=YYYY-MM-DD&q=keyword
func DashboardGridHandler(c echo.Context) error {
	ctx := c.Request().Context()

	date := strings.TrimSpace(c.QueryParam("date"))
	if date == "" {
		date = services.DayKey(dashboardService.Now())
	} else if _, err := services.ParseDate(date); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	query := c.QueryParam("q")

	buckets, err := dashboardService.DayBuckets(ctx)
	if err != nil {
		handlerLogger.Error("failed to load dashboard records", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load records"})
	}

	records := services.FilterRecords(buckets, date, query, handlerConfig.SearchLimit)
	return c.JSON(http.StatusOK, GridResponse{
		Date:    date,
		Query:   strings.TrimSpace(query),
		Matches: len(records),
		Slots:   services.PackSlots(records, false, handlerConfig.GridSlots),
	})
}
