// Package events carries breach and relocation notifications from the
// monitor loop to connected observers.
package events

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"glyphor/internal/models"
)

const (
	TypeThresholdBreach       = "threshold_breach"
	TypeRelocationRecommended = "relocation_recommended"
)

// ThresholdBreachEvent is broadcast for every breaching inventory on every
// tick, whether or not a relocation target was found.
type ThresholdBreachEvent struct {
	Type          string  `json:"type"`
	InventoryID   int64   `json:"inventory_id"`
	InventoryName string  `json:"inventory_name"`
	CurrentLoad   float64 `json:"current_load"`
	Threshold     float64 `json:"threshold"`
	Timestamp     string  `json:"timestamp"`
}

func NewThresholdBreach(inv *models.Inventory, now time.Time) ThresholdBreachEvent {
	return ThresholdBreachEvent{
		Type:          TypeThresholdBreach,
		InventoryID:   inv.ID,
		InventoryName: inv.Name,
		CurrentLoad:   inv.VolumeOccupied,
		Threshold:     inv.SafeThreshold(),
		Timestamp:     now.Format(time.RFC3339),
	}
}

type RelocationRecommendedEvent struct {
	Type          string `json:"type"`
	FromInventory int64  `json:"from_inventory"`
	ToInventory   int64  `json:"to_inventory"`
	Quantity      int    `json:"quantity"`
}

func NewRelocationRecommended(plan *models.RelocationPlan) RelocationRecommendedEvent {
	return RelocationRecommendedEvent{
		Type:          TypeRelocationRecommended,
		FromInventory: plan.SourceInventoryID,
		ToInventory:   plan.TargetInventoryID,
		Quantity:      plan.Quantity,
	}
}

// subscriberBuffer bounds how far one observer may fall behind before its
// messages are dropped. Dropping keeps a slow connection from blocking the
// broadcast to everyone else.
const subscriberBuffer = 16

// Hub is the registry of connected observers. Subscribe, Unsubscribe and
// Broadcast are safe for concurrent use; the hub is owned by the process
// lifetime, not by ambient package state.
type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]chan []byte
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]chan []byte)}
}

// Subscribe registers an observer and returns its id and message channel.
// The channel is closed on Unsubscribe.
func (h *Hub) Subscribe() (uuid.UUID, <-chan []byte) {
	id := uuid.New()
	ch := make(chan []byte, subscriberBuffer)

	h.mu.Lock()
	h.subs[id] = ch
	h.mu.Unlock()

	return id, ch
}

func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
	h.mu.Unlock()
}

// Broadcast marshals the event once and delivers it to every observer.
// Observers whose buffers are full miss the message; delivery to the rest
// is unaffected.
func (h *Hub) Broadcast(event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("events: failed to marshal broadcast: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		select {
		case ch <- payload:
		default:
			log.Printf("events: observer %s is lagging, dropping message", id)
		}
	}
}

// SubscriberCount reports how many observers are connected.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
