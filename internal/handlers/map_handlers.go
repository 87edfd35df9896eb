package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

// MapHandlers serves the geographic view: inventories joined with their
// locations, utilization and alert counts.
type MapHandlers struct {
	store recordstore.Store
}

func NewMapHandlers(store recordstore.Store) *MapHandlers {
	return &MapHandlers{store: store}
}

// InventoryLocation is one map pin
type InventoryLocation struct {
	Inventory   *models.Inventory `json:"inventory"`
	Location    *models.Location  `json:"location"`
	Utilization float64           `json:"utilization"`
	AlertCount  int               `json:"alert_count"`
}

// ListInventoryLocations returns every inventory with its location pin
func (h *MapHandlers) ListInventoryLocations(c echo.Context) error {
	ctx := c.Request().Context()

	inventories, err := h.store.ListInventories(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list inventories")
	}

	locations, err := h.store.ListLocations(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list locations")
	}
	locationsByID := make(map[int64]*models.Location, len(locations))
	for _, loc := range locations {
		locationsByID[loc.ID] = loc
	}

	unresolved, err := h.store.UnresolvedAlerts(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list alerts")
	}
	alertCounts := make(map[int64]int)
	for _, alert := range unresolved {
		alertCounts[alert.InventoryID]++
	}

	pins := make([]InventoryLocation, 0, len(inventories))
	for _, inv := range inventories {
		pins = append(pins, InventoryLocation{
			Inventory:   inv,
			Location:    locationsByID[inv.LocationID],
			Utilization: inv.Utilization(),
			AlertCount:  alertCounts[inv.ID],
		})
	}

	return c.JSON(http.StatusOK, pins)
}

// GetInventoryLocation returns one inventory's pin with its recent alerts and
// relocations for the detail panel.
func (h *MapHandlers) GetInventoryLocation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	inv, err := h.store.GetInventory(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Inventory not found")
	}

	detail := map[string]interface{}{
		"inventory":   inv,
		"utilization": inv.Utilization(),
		"breaching":   inv.Breaching(),
	}

	if loc, err := h.store.GetLocation(ctx, inv.LocationID); err == nil {
		detail["location"] = loc
	}

	if alerts, err := h.store.AlertsByInventory(ctx, id); err == nil {
		if len(alerts) > 5 {
			alerts = alerts[:5]
		}
		detail["recent_alerts"] = alerts
	}

	if relocations, err := h.store.ListRelocations(ctx); err == nil {
		related := make([]*models.RelocationMessage, 0)
		for _, rel := range relocations {
			if rel.FromInventoryID == id || rel.ToInventoryID == id {
				related = append(related, rel)
			}
		}
		if len(related) > 5 {
			related = related[len(related)-5:]
		}
		detail["recent_relocations"] = related
	}

	return c.JSON(http.StatusOK, detail)
}
