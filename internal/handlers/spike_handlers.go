package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"glyphor/internal/caching"
	"glyphor/internal/services"
)

// SpikeHandlers serves the classified spike monitoring report
type SpikeHandlers struct {
	spikeSvc *services.SpikeService
	cacheSvc caching.CacheService
}

func NewSpikeHandlers(spikeSvc *services.SpikeService, cacheSvc caching.CacheService) *SpikeHandlers {
	return &SpikeHandlers{spikeSvc: spikeSvc, cacheSvc: cacheSvc}
}

func (h *SpikeHandlers) GetMonitoringReport(c echo.Context) error {
	ctx := c.Request().Context()

	if h.cacheSvc != nil {
		if cached, err := h.cacheSvc.GetSpikeReport(ctx); err == nil && cached != nil {
			return c.JSON(http.StatusOK, cached)
		}
	}

	report, err := h.spikeSvc.MonitoringReport(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build spike report")
	}

	if h.cacheSvc != nil {
		_ = h.cacheSvc.SetSpikeReport(ctx, report, 5*time.Minute)
	}

	return c.JSON(http.StatusOK, report)
}
