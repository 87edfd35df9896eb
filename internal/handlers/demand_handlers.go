package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

// DemandHandlers handles demand history HTTP requests
type DemandHandlers struct {
	store recordstore.DemandStore
}

func NewDemandHandlers(store recordstore.DemandStore) *DemandHandlers {
	return &DemandHandlers{store: store}
}

func (h *DemandHandlers) ListDemandHistory(c echo.Context) error {
	ctx := c.Request().Context()

	records, err := h.store.ListDemandHistory(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list demand history")
	}

	return c.JSON(http.StatusOK, records)
}

// CreateDemandRequest is an appended demand sample
type CreateDemandRequest struct {
	InventoryID    int64      `json:"inventoryId"`
	ItemID         int64      `json:"itemId"`
	DemandQuantity float64    `json:"demandQuantity"`
	Timestamp      *time.Time `json:"timestamp"`
	Source         string     `json:"source"`
}

func (h *DemandHandlers) CreateDemandRecord(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateDemandRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.InventoryID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "inventoryId is required")
	}
	if req.DemandQuantity < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "demandQuantity cannot be negative")
	}

	ts := time.Now().UTC()
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}

	rec := &models.DemandHistoryRecord{
		InventoryID:    req.InventoryID,
		ItemID:         req.ItemID,
		DemandQuantity: req.DemandQuantity,
		Timestamp:      ts,
		Source:         req.Source,
	}
	if err := h.store.CreateDemandRecord(ctx, rec); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, rec)
}

func (h *DemandHandlers) ListDemandByInventory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "inventory_id")
	if err != nil {
		return err
	}

	records, err := h.store.DemandHistoryByInventory(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list demand history")
	}

	return c.JSON(http.StatusOK, records)
}

func (h *DemandHandlers) ListDemandByItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "item_id")
	if err != nil {
		return err
	}

	records, err := h.store.DemandHistoryByItem(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list demand history")
	}

	return c.JSON(http.StatusOK, records)
}
