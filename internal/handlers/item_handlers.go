package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

// ItemHandlers handles item catalog HTTP requests
type ItemHandlers struct {
	store recordstore.ItemStore
}

func NewItemHandlers(store recordstore.ItemStore) *ItemHandlers {
	return &ItemHandlers{store: store}
}

func (h *ItemHandlers) ListItems(c echo.Context) error {
	ctx := c.Request().Context()

	items, err := h.store.ListItems(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list items")
	}

	return c.JSON(http.StatusOK, items)
}

// ItemRequest is the create/update payload for an item
type ItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Weight      float64 `json:"weight"`
	Dimensions  string  `json:"dimensions"`
}

func (h *ItemHandlers) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Name is required")
	}

	item := &models.Item{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Weight:      req.Weight,
		Dimensions:  req.Dimensions,
	}
	if err := h.store.CreateItem(ctx, item); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, item)
}

func (h *ItemHandlers) GetItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	item, err := h.store.GetItem(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Item not found")
	}

	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandlers) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	item, err := h.store.GetItem(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Item not found")
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = req.Price
	item.Weight = req.Weight
	item.Dimensions = req.Dimensions

	if err := h.store.UpdateItem(ctx, item); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, item)
}

func (h *ItemHandlers) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.store.DeleteItem(ctx, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete item")
	}

	return c.NoContent(http.StatusNoContent)
}
