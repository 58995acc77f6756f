package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"notary_admin_go/models"
	"notary_admin_go/services"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// parseActiveParam reads the optional "active" query flag
func parseActiveParam(c echo.Context) (*bool, error) {
	raw := strings.TrimSpace(c.QueryParam("active"))
	if raw == "" {
		return nil, nil
	}
	active, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: active must be true or false", services.ErrInvalidFilter)
	}
	return &active, nil
}

func notaryFiltersFromQuery(c echo.Context) (services.NotaryFilters, error) {
	active, err := parseActiveParam(c)
	if err != nil {
		return services.NotaryFilters{}, err
	}
	return services.NotaryFilters{
		Status: models.LicenseStatus(strings.TrimSpace(c.QueryParam("status"))),
		Active: active,
		City:   c.QueryParam("city"),
		Search: c.QueryParam("search"),
	}, nil
}

// listErrorResponse maps filter errors to 400 and everything else to 500
func listErrorResponse(c echo.Context, err error, message string) error {
	if errors.Is(err, services.ErrInvalidFilter) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	handlerLogger.Error(message, zap.Error(err))
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": message})
}

// ListNotariesHandler returns notaries with their computed license status
// GET /api/notaries?status=&active=&city=&search=
func ListNotariesHandler(c echo.Context) error {
	filters, err := notaryFiltersFromQuery(c)
	if err != nil {
		return listErrorResponse(c, err, "Failed to list notaries")
	}

	views, err := entityService.ListNotaries(c.Request().Context(), filters)
	if err != nil {
		return listErrorResponse(c, err, "Failed to list notaries")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"notaries": views,
		"count":    len(views),
	})
}

// ExportNotariesHandler downloads the filtered notary list as an xlsx workbook
// GET /api/notaries/export?status=&active=&city=&search=
func ExportNotariesHandler(c echo.Context) error {
	filters, err := notaryFiltersFromQuery(c)
	if err != nil {
		return listErrorResponse(c, err, "Failed to export notaries")
	}

	views, err := entityService.ListNotaries(c.Request().Context(), filters)
	if err != nil {
		return listErrorResponse(c, err, "Failed to export notaries")
	}

	counts := services.LicenseCounts{Total: int64(len(views))}
	for _, v := range views {
		counts.Add(v.ComputedStatus)
	}

	now := entityService.Now()
	buf, err := services.ExportNotariesExcel(views, counts, now)
	if err != nil {
		handlerLogger.Error("failed to build notary export", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to export notaries"})
	}

	c.Response().Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=notaries_%s.xlsx", now.Format("20060102_150405")))
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ListPartnersHandler returns partners with their derived status
// GET /api/partners?status=&active=&city=&category=&search=
func ListPartnersHandler(c echo.Context) error {
	active, err := parseActiveParam(c)
	if err != nil {
		return listErrorResponse(c, err, "Failed to list partners")
	}

	views, err := entityService.ListPartners(c.Request().Context(), services.PartnerFilters{
		Status:   strings.TrimSpace(c.QueryParam("status")),
		Active:   active,
		City:     c.QueryParam("city"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
	})
	if err != nil {
		return listErrorResponse(c, err, "Failed to list partners")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"partners": views,
		"count":    len(views),
	})
}

// ListActCategoriesHandler returns the active act categories
// GET /api/act-categories
func ListActCategoriesHandler(c echo.Context) error {
	categories, err := entityService.ListActCategories(c.Request().Context())
	if err != nil {
		handlerLogger.Error("failed to list act categories", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list act categories"})
	}
	return c.JSON(http.StatusOK, categories)
}

// HealthHandler reports liveness
// GET /health
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
