package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

// AlertHandlers handles realtime alert HTTP requests
type AlertHandlers struct {
	store recordstore.AlertStore
}

func NewAlertHandlers(store recordstore.AlertStore) *AlertHandlers {
	return &AlertHandlers{store: store}
}

func (h *AlertHandlers) ListAlerts(c echo.Context) error {
	ctx := c.Request().Context()

	alerts, err := h.store.ListAlerts(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list alerts")
	}

	return c.JSON(http.StatusOK, alerts)
}

func (h *AlertHandlers) ListUnresolvedAlerts(c echo.Context) error {
	ctx := c.Request().Context()

	alerts, err := h.store.UnresolvedAlerts(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list unresolved alerts")
	}

	return c.JSON(http.StatusOK, alerts)
}

func (h *AlertHandlers) ListAlertsBySeverity(c echo.Context) error {
	ctx := c.Request().Context()

	severity := models.AlertSeverity(c.Param("severity"))
	switch severity {
	case models.AlertSeverityLow, models.AlertSeverityWarning, models.AlertSeverityCritical:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown alert severity")
	}

	alerts, err := h.store.AlertsBySeverity(ctx, severity)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list alerts")
	}

	return c.JSON(http.StatusOK, alerts)
}

// CreateAlertRequest is a manually raised alert
type CreateAlertRequest struct {
	InventoryID int64  `json:"inventoryId"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
}

func (h *AlertHandlers) CreateAlert(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateAlertRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.InventoryID <= 0 || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "inventoryId and message are required")
	}

	severity := models.AlertSeverity(req.Severity)
	if severity == "" {
		severity = models.AlertSeverityWarning
	}

	alert := &models.RealtimeAlert{
		InventoryID: req.InventoryID,
		Severity:    severity,
		Message:     req.Message,
	}
	if err := h.store.CreateAlert(ctx, alert); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, alert)
}

func (h *AlertHandlers) ResolveAlert(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.store.ResolveAlert(ctx, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve alert")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"id": id, "resolved": true})
}
