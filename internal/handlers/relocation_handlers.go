package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
	"glyphor/internal/services"
)

// RelocationHandlers handles relocation lifecycle HTTP requests
type RelocationHandlers struct {
	store         recordstore.RelocationStore
	relocationSvc *services.RelocationService
}

func NewRelocationHandlers(store recordstore.RelocationStore, relocationSvc *services.RelocationService) *RelocationHandlers {
	return &RelocationHandlers{store: store, relocationSvc: relocationSvc}
}

func (h *RelocationHandlers) ListRelocations(c echo.Context) error {
	ctx := c.Request().Context()

	relocations, err := h.store.ListRelocations(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list relocations")
	}

	return c.JSON(http.StatusOK, relocations)
}

// CreateRelocationRequest is a manually proposed transfer
type CreateRelocationRequest struct {
	FromInventoryID int64  `json:"fromInventoryId"`
	ToInventoryID   int64  `json:"toInventoryId"`
	Quantity        int    `json:"quantity"`
	Priority        string `json:"priority"`
}

func (h *RelocationHandlers) CreateRelocation(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateRelocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.FromInventoryID <= 0 || req.ToInventoryID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "fromInventoryId and toInventoryId are required")
	}
	if req.FromInventoryID == req.ToInventoryID {
		return echo.NewHTTPError(http.StatusBadRequest, "Source and target must differ")
	}
	if req.Quantity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Quantity must be positive")
	}

	priority := models.RelocationPriority(req.Priority)
	if priority == "" {
		priority = models.RelocationPriorityNormal
	}

	rel := &models.RelocationMessage{
		FromInventoryID: req.FromInventoryID,
		ToInventoryID:   req.ToInventoryID,
		Quantity:        req.Quantity,
		Priority:        priority,
		Status:          models.RelocationStatusPending,
	}
	if err := h.store.CreateRelocation(ctx, rel); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, rel)
}

func (h *RelocationHandlers) GetRelocation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	rel, err := h.store.GetRelocation(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Relocation not found")
	}

	return c.JSON(http.StatusOK, rel)
}

func (h *RelocationHandlers) ListRelocationsByStatus(c echo.Context) error {
	ctx := c.Request().Context()

	status := models.RelocationStatus(c.Param("status"))
	switch status {
	case models.RelocationStatusPending, models.RelocationStatusCompleted, models.RelocationStatusCancelled:
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown relocation status")
	}

	relocations, err := h.store.RelocationsByStatus(ctx, status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list relocations")
	}

	return c.JSON(http.StatusOK, relocations)
}

// ExecuteRelocation applies a pending relocation to both inventories and marks
// it completed. Re-executing a completed relocation is a no-op.
func (h *RelocationHandlers) ExecuteRelocation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.relocationSvc.Execute(ctx, id); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	rel, err := h.store.GetRelocation(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Relocation executed but could not be re-read")
	}

	return c.JSON(http.StatusOK, rel)
}

// CancelRelocation cancels a pending relocation
func (h *RelocationHandlers) CancelRelocation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.relocationSvc.Cancel(ctx, id); err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]string{"status": string(models.RelocationStatusCancelled)})
}
