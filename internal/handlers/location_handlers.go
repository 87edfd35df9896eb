package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

// LocationHandlers handles location HTTP requests
type LocationHandlers struct {
	store recordstore.LocationStore
}

func NewLocationHandlers(store recordstore.LocationStore) *LocationHandlers {
	return &LocationHandlers{store: store}
}

func (h *LocationHandlers) ListLocations(c echo.Context) error {
	ctx := c.Request().Context()

	locations, err := h.store.ListLocations(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to list locations")
	}

	return c.JSON(http.StatusOK, locations)
}

// LocationRequest is the create/update payload for a location
type LocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	ZipCode   string  `json:"zipCode"`
}

func (h *LocationHandlers) CreateLocation(c echo.Context) error {
	ctx := c.Request().Context()

	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	loc := &models.Location{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Country:   req.Country,
		ZipCode:   req.ZipCode,
	}
	if err := h.store.CreateLocation(ctx, loc); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, loc)
}

func (h *LocationHandlers) GetLocation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	loc, err := h.store.GetLocation(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Location not found")
	}

	return c.JSON(http.StatusOK, loc)
}

func (h *LocationHandlers) UpdateLocation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	loc, err := h.store.GetLocation(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Location not found")
	}

	loc.Latitude = req.Latitude
	loc.Longitude = req.Longitude
	loc.Address = req.Address
	loc.City = req.City
	loc.State = req.State
	loc.Country = req.Country
	loc.ZipCode = req.ZipCode

	if err := h.store.UpdateLocation(ctx, loc); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, loc)
}

func (h *LocationHandlers) DeleteLocation(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := parseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.store.DeleteLocation(ctx, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete location")
	}

	return c.NoContent(http.StatusNoContent)
}
