package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"glyphor/internal/services"
)

// LoadBalancerHandlers exposes the manual recommendation trigger
type LoadBalancerHandlers struct {
	monitorSvc *services.MonitorService
}

func NewLoadBalancerHandlers(monitorSvc *services.MonitorService) *LoadBalancerHandlers {
	return &LoadBalancerHandlers{monitorSvc: monitorSvc}
}

// TriggerRequest names the inventory to evaluate
type TriggerRequest struct {
	InventoryID int64 `json:"inventoryId"`
}

// Trigger evaluates one inventory on demand and returns the recommendation
// without creating any records. A nil plan means the inventory is within its
// safe threshold.
func (h *LoadBalancerHandlers) Trigger(c echo.Context) error {
	ctx := c.Request().Context()

	var req TriggerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.InventoryID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "inventoryId is required")
	}

	plan, err := h.monitorSvc.CheckInventory(ctx, req.InventoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if plan == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"inventoryId": req.InventoryID,
			"breaching":   false,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"inventoryId": req.InventoryID,
		"breaching":   true,
		"plan":        plan,
	})
}
