package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"glyphor/internal/events"
)

// EventsHandlers streams broadcast events to connected observers over SSE
type EventsHandlers struct {
	hub *events.Hub
}

func NewEventsHandlers(hub *events.Hub) *EventsHandlers {
	return &EventsHandlers{hub: hub}
}

// Stream subscribes the connection to the hub and forwards every broadcast
// as an SSE data frame until the client disconnects.
func (h *EventsHandlers) Stream(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	id, ch := h.hub.Subscribe()
	defer h.hub.Unsubscribe(id)

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case payload, ok := <-ch:
			if !ok {
				return nil
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}

// Status reports the number of connected observers
func (h *EventsHandlers) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]int{"subscribers": h.hub.SubscriberCount()})
}
