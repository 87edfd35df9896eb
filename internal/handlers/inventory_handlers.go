package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"glyphor/internal/caching"
	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

// InventoryHandlers handles inventory-related HTTP requests
type InventoryHandlers struct {
	store    recordstore.Store
	cacheSvc caching.CacheService
}

// NewInventoryHandlers creates a new inventory handlers instance
func NewInventoryHandlers(store recordstore.Store, cacheSvc caching.CacheService) *InventoryHandlers {
	return &InventoryHandlers{store: store, cacheSvc: cacheSvc}
}

func parseID(c echo.Context, param string) (int64, error) {
	raw := c.Param(param)
	if raw == "" {
		return 0, echo.NewHTTPError(http.StatusBadRequest, param+" is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+param+" format")
	}
	return id, nil
}

// ListInventories handles getting the full inventory list
func (h *InventoryHandlers) ListInventories(c echo.Context) error {
	ctx := c.Request().Context()

	inventories, err := h.store.ListInventories(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list inventories")
	}

	return c.JSON(http.StatusOK, inventories)
}

// CreateInventoryRequest represents the inventory creation request payload
type CreateInventoryRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	VolumeOccupied  float64 `json:"volumeOccupied"`
	VolumeAvailable float64 `json:"volumeAvailable"`
	VolumeReserved  float64 `json:"volumeReserved"`
	Threshold       int     `json:"threshold"`
	LocationID      int64   `json:"locationId"`
	Status          string  `json:"status"`
}

// CreateInventory handles creating a new inventory record
func (h *InventoryHandlers) CreateInventory(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}
	if req.VolumeOccupied < 0 || req.VolumeAvailable < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Volumes cannot be negative")
	}

	status := models.InventoryStatus(req.Status)
	if status == "" {
		status = models.InventoryStatusHealthy
	}

	inv := &models.Inventory{
		Name:            req.Name,
		Description:     req.Description,
		VolumeOccupied:  req.VolumeOccupied,
		VolumeAvailable: req.VolumeAvailable,
		VolumeReserved:  req.VolumeReserved,
		Threshold:       req.Threshold,
		LocationID:      req.LocationID,
		Status:          status,
	}

	if err := h.store.CreateInventory(ctx, inv); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, inv)
}

// GetInventory handles getting inventory details by ID
func (h *InventoryHandlers) GetInventory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if h.cacheSvc != nil {
		if cached, err := h.cacheSvc.GetInventory(ctx, id); err == nil && cached != nil {
			return c.JSON(http.StatusOK, cached)
		}
	}

	inv, err := h.store.GetInventory(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Inventory not found")
	}

	if h.cacheSvc != nil {
		_ = h.cacheSvc.SetInventory(ctx, inv, cacheTTLShort)
	}

	return c.JSON(http.StatusOK, inv)
}

// UpdateInventory handles replacing an inventory's mutable fields
func (h *InventoryHandlers) UpdateInventory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req CreateInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	inv, err := h.store.GetInventory(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Inventory not found")
	}

	inv.Name = req.Name
	inv.Description = req.Description
	inv.VolumeOccupied = req.VolumeOccupied
	inv.VolumeAvailable = req.VolumeAvailable
	inv.VolumeReserved = req.VolumeReserved
	inv.Threshold = req.Threshold
	inv.LocationID = req.LocationID
	if req.Status != "" {
		inv.Status = models.InventoryStatus(req.Status)
	}

	if err := h.store.UpdateInventory(ctx, inv); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.cacheSvc != nil {
		_ = h.cacheSvc.DeleteInventory(ctx, id)
	}

	return c.JSON(http.StatusOK, inv)
}

// DeleteInventory handles deleting an inventory record
func (h *InventoryHandlers) DeleteInventory(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.store.DeleteInventory(ctx, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete inventory")
	}

	if h.cacheSvc != nil {
		_ = h.cacheSvc.DeleteInventory(ctx, id)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetInventoryDetails joins the inventory with its location, recent alerts and
// recent relocations into one detail view.
func (h *InventoryHandlers) GetInventoryDetails(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	inv, err := h.store.GetInventory(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Inventory not found")
	}

	details := map[string]interface{}{
		"inventory":      inv,
		"safe_threshold": inv.SafeThreshold(),
		"utilization":    inv.Utilization(),
		"breaching":      inv.Breaching(),
	}

	if loc, err := h.store.GetLocation(ctx, inv.LocationID); err == nil {
		details["location"] = loc
	}

	if alerts, err := h.store.AlertsByInventory(ctx, id); err == nil {
		if len(alerts) > 10 {
			alerts = alerts[:10]
		}
		details["recent_alerts"] = alerts
	}

	if relocations, err := h.store.ListRelocations(ctx); err == nil {
		related := make([]*models.RelocationMessage, 0)
		for _, rel := range relocations {
			if rel.FromInventoryID == id || rel.ToInventoryID == id {
				related = append(related, rel)
			}
		}
		if len(related) > 10 {
			related = related[len(related)-10:]
		}
		details["recent_relocations"] = related
	}

	return c.JSON(http.StatusOK, details)
}

// ListInventoryItems handles listing items held by an inventory
func (h *InventoryHandlers) ListInventoryItems(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	links, err := h.store.ListInventoryItems(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list inventory items")
	}

	return c.JSON(http.StatusOK, links)
}

// AddInventoryItemRequest represents the payload linking an item to an inventory
type AddInventoryItemRequest struct {
	ItemID   int64 `json:"itemId"`
	Quantity int   `json:"quantity"`
}

// AddInventoryItem handles adding (or topping up) an item in an inventory
func (h *InventoryHandlers) AddInventoryItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req AddInventoryItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.ItemID <= 0 || req.Quantity <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "itemId and positive quantity are required")
	}

	link := &models.InventoryItem{
		InventoryID: id,
		ItemID:      req.ItemID,
		Quantity:    req.Quantity,
	}
	if err := h.store.AddInventoryItem(ctx, link); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, link)
}

// UpdateInventoryItemRequest carries the replacement quantity
type UpdateInventoryItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateInventoryItem handles setting the quantity of an item in an inventory
func (h *InventoryHandlers) UpdateInventoryItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "item_id")
	if err != nil {
		return err
	}

	var req UpdateInventoryItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Quantity < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Quantity cannot be negative")
	}

	if err := h.store.UpdateInventoryItemQuantity(ctx, id, itemID, req.Quantity); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"inventoryId": id,
		"itemId":      itemID,
		"quantity":    req.Quantity,
	})
}

// RemoveInventoryItem handles unlinking an item from an inventory
func (h *InventoryHandlers) RemoveInventoryItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := parseID(c, "item_id")
	if err != nil {
		return err
	}

	if err := h.store.RemoveInventoryItem(ctx, id, itemID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to remove inventory item")
	}

	return c.NoContent(http.StatusNoContent)
}
