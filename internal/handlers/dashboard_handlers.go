package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"glyphor/internal/caching"
	"glyphor/internal/services"
)

const (
	cacheTTLShort     = 30 * time.Second
	cacheTTLDashboard = 2 * time.Minute
)

// DashboardHandlers serves the aggregated dashboard views
type DashboardHandlers struct {
	dashboardSvc *services.DashboardService
	cacheSvc     caching.CacheService
}

func NewDashboardHandlers(dashboardSvc *services.DashboardService, cacheSvc caching.CacheService) *DashboardHandlers {
	return &DashboardHandlers{dashboardSvc: dashboardSvc, cacheSvc: cacheSvc}
}

func (h *DashboardHandlers) GetOverview(c echo.Context) error {
	ctx := c.Request().Context()

	if h.cacheSvc != nil {
		if cached, err := h.cacheSvc.GetDashboardOverview(ctx); err == nil && cached != nil {
			return c.JSON(http.StatusOK, cached)
		}
	}

	overview, err := h.dashboardSvc.Overview(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build dashboard overview")
	}

	if h.cacheSvc != nil {
		_ = h.cacheSvc.SetDashboardOverview(ctx, overview, cacheTTLDashboard)
	}

	return c.JSON(http.StatusOK, overview)
}

func (h *DashboardHandlers) GetStats(c echo.Context) error {
	ctx := c.Request().Context()

	if h.cacheSvc != nil {
		if cached, err := h.cacheSvc.GetDashboardStats(ctx); err == nil && cached != nil {
			return c.JSON(http.StatusOK, cached)
		}
	}

	stats, err := h.dashboardSvc.Stats(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build dashboard stats")
	}

	if h.cacheSvc != nil {
		_ = h.cacheSvc.SetDashboardStats(ctx, stats, cacheTTLDashboard)
	}

	return c.JSON(http.StatusOK, stats)
}
