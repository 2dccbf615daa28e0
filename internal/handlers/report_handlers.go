package handlers

import (
	"errors"
	"net/http"
	"time"

	"shelflife/internal/common"
	"shelflife/internal/engine"
	"shelflife/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandlers exposes the derived dashboard signals: stats, alerts,
// activity, and the computed-status filters.
type ReportHandlers struct {
	reportService services.ReportService
}

// NewReportHandlers creates a new report handlers instance
func NewReportHandlers(reportService services.ReportService) *ReportHandlers {
	return &ReportHandlers{reportService: reportService}
}

// referenceTime is the explicit "now" handed to every classification call for
// this request; the engine itself never reads the clock.
func referenceTime() time.Time {
	return time.Now().UTC()
}

// GetStats handles the dashboard summary counts
func (h *ReportHandlers) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	stats, err := h.reportService.Stats(ctx, referenceTime())
	if err != nil {
		return reportError(c, err, "Failed to compute stats")
	}

	return c.JSON(http.StatusOK, stats)
}

// GetAlerts handles the ranked alert list
func (h *ReportHandlers) GetAlerts(c echo.Context) error {
	ctx := c.Request().Context()

	alerts, err := h.reportService.Alerts(ctx, referenceTime())
	if err != nil {
		return reportError(c, err, "Failed to compute alerts")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"alerts": alerts,
		"count":  len(alerts),
	})
}

// ActivityRequest represents query parameters for the activity feed
type ActivityRequest struct {
	Limit int `query:"limit"`
}

// GetActivity handles the recent-activity feed
func (h *ReportHandlers) GetActivity(c echo.Context) error {
	ctx := c.Request().Context()

	var req ActivityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid query parameters")
	}

	entries, err := h.reportService.Activity(ctx, req.Limit)
	if err != nil {
		return common.SendServerError(c, "Failed to compute activity feed")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"activity": entries,
	})
}

// GetItemsByStatus handles filtering items by their computed status
func (h *ReportHandlers) GetItemsByStatus(c echo.Context) error {
	ctx := c.Request().Context()

	status := engine.Status(c.Param("status"))
	if !engine.ValidStatus(status) {
		return common.SendClientError(c, "Unknown status")
	}

	items, err := h.reportService.ItemsByStatus(ctx, status, referenceTime())
	if err != nil {
		return reportError(c, err, "Failed to filter items")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": status,
		"items":  items,
	})
}

// GetItemsByCategory handles exact category filtering
func (h *ReportHandlers) GetItemsByCategory(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.reportService.ItemsByCategory(ctx, c.Param("category"))
	if err != nil {
		return common.SendServerError(c, "Failed to filter items")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"category": c.Param("category"),
		"items":    items,
	})
}

// SearchItems handles substring search across name, category, batch number,
// and description
func (h *ReportHandlers) SearchItems(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.reportService.Search(ctx, c.QueryParam("q"))
	if err != nil {
		return common.SendServerError(c, "Failed to search items")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"query": c.QueryParam("q"),
		"items": items,
	})
}

// reportError surfaces an invalid stored date as a client-visible problem
// instead of a generic server failure.
func reportError(c echo.Context, err error, fallback string) error {
	var invalidDate *engine.InvalidDateError
	if errors.As(err, &invalidDate) {
		return c.JSON(http.StatusUnprocessableEntity,
			common.CreateErrorResponse("INVALID_DATE", invalidDate.Error(), nil))
	}
	return common.SendServerError(c, fallback)
}
