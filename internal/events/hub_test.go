package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glyphor/internal/models"
)

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case payload := <-ch:
		return payload
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return nil
	}
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	hub := NewHub()
	_, ch1 := hub.Subscribe()
	_, ch2 := hub.Subscribe()
	require.Equal(t, 2, hub.SubscriberCount())

	inv := &models.Inventory{ID: 3, Name: "west", VolumeOccupied: 500, VolumeAvailable: 300}
	hub.Broadcast(NewThresholdBreach(inv, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)))

	for _, ch := range []<-chan []byte{ch1, ch2} {
		var event ThresholdBreachEvent
		require.NoError(t, json.Unmarshal(receive(t, ch), &event))
		assert.Equal(t, TypeThresholdBreach, event.Type)
		assert.Equal(t, int64(3), event.InventoryID)
		assert.Equal(t, 300.0, event.Threshold)
		assert.Equal(t, "2026-08-30T12:00:00Z", event.Timestamp)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	id, ch := hub.Subscribe()

	hub.Unsubscribe(id)
	assert.Zero(t, hub.SubscriberCount())

	_, open := <-ch
	assert.False(t, open)

	// Unsubscribing twice is harmless.
	hub.Unsubscribe(id)
}

func TestSlowSubscriberDoesNotBlockBroadcast(t *testing.T) {
	hub := NewHub()
	_, slow := hub.Subscribe()
	_, fast := hub.Subscribe()

	// Overflow the slow observer's buffer without ever reading from it.
	plan := &models.RelocationPlan{SourceInventoryID: 1, TargetInventoryID: 2, Quantity: 5}
	for i := 0; i < subscriberBuffer*2; i++ {
		hub.Broadcast(NewRelocationRecommended(plan))
	}

	// The fast observer still got every message its buffer could hold, and
	// the broadcast loop never deadlocked on the slow one.
	assert.Len(t, slow, subscriberBuffer)
	var event RelocationRecommendedEvent
	require.NoError(t, json.Unmarshal(receive(t, fast), &event))
	assert.Equal(t, TypeRelocationRecommended, event.Type)
	assert.Equal(t, 5, event.Quantity)
}
