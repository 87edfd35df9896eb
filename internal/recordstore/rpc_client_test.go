package recordstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rpcServer(t *testing.T, handler func(op string, payload json.RawMessage) (any, bool, string)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Operation string          `json:"operation"`
			Payload   json.RawMessage `json:"payload"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		data, ok, reason := handler(req.Operation, req.Payload)
		resp := map[string]any{"success": ok}
		if ok {
			resp["data"] = data
		} else {
			resp["error"] = reason
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestListInventoriesSuccess(t *testing.T) {
	server := rpcServer(t, func(op string, _ json.RawMessage) (any, bool, string) {
		assert.Equal(t, "inventory_ops.getAll", op)
		return []map[string]any{
			{"id": 1, "name": "north", "volumeOccupied": 500.0, "volumeAvailable": 300.0},
			{"id": 2, "name": "south", "volumeOccupied": 100.0, "volumeAvailable": 900.0},
		}, true, ""
	})
	defer server.Close()

	client := NewRPCClient(server.URL)
	inventories, err := client.ListInventories(context.Background())
	require.NoError(t, err)
	require.Len(t, inventories, 2)
	assert.Equal(t, "north", inventories[0].Name)
	assert.Equal(t, 500.0, inventories[0].VolumeOccupied)
}

func TestGetInventoryUnwrapsSingleElementArray(t *testing.T) {
	server := rpcServer(t, func(op string, payload json.RawMessage) (any, bool, string) {
		assert.Equal(t, "inventory_ops.getById", op)
		assert.JSONEq(t, "7", string(payload))
		return []map[string]any{{"id": 7, "name": "east"}}, true, ""
	})
	defer server.Close()

	client := NewRPCClient(server.URL)
	inv, err := client.GetInventory(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), inv.ID)
	assert.Equal(t, "east", inv.Name)
}

func TestGetInventoryEmptyResultIsDomainFailure(t *testing.T) {
	server := rpcServer(t, func(string, json.RawMessage) (any, bool, string) {
		return []any{}, true, ""
	})
	defer server.Close()

	client := NewRPCClient(server.URL)
	_, err := client.GetInventory(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, IsDomain(err))
	assert.False(t, IsTransport(err))
}

func TestDomainFailureCarriesReason(t *testing.T) {
	server := rpcServer(t, func(string, json.RawMessage) (any, bool, string) {
		return nil, false, "inventory 9 does not exist"
	})
	defer server.Close()

	client := NewRPCClient(server.URL)
	_, err := client.GetInventory(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, IsDomain(err))
	assert.Contains(t, err.Error(), "inventory 9 does not exist")
}

func TestTransportFailureOnUnreachableStore(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewRPCClient(server.URL)
	_, err := client.ListInventories(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.False(t, IsDomain(err))
}

func TestTransportFailureOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewRPCClient(server.URL)
	_, err := client.ListInventories(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransport(err))
}

func TestMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewRPCClient(server.URL)
	_, err := client.ListInventories(context.Background())
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
	assert.False(t, IsTransport(err))
}

func TestUpdateRelocationStatusPayloadShape(t *testing.T) {
	var got json.RawMessage
	server := rpcServer(t, func(op string, payload json.RawMessage) (any, bool, string) {
		assert.Equal(t, "relocationmessage_ops.updateById", op)
		got = payload
		return []any{}, true, ""
	})
	defer server.Close()

	client := NewRPCClient(server.URL)
	require.NoError(t, client.UpdateRelocationStatus(context.Background(), 12, "completed"))
	assert.JSONEq(t, `[12, {"status": "completed"}]`, string(got))
}

func TestPreviousMetricAbsentReturnsNil(t *testing.T) {
	server := rpcServer(t, func(op string, _ json.RawMessage) (any, bool, string) {
		assert.Equal(t, "dashboardmetrics_ops.getPreviousMetrics", op)
		return []any{}, true, ""
	})
	defer server.Close()

	client := NewRPCClient(server.URL)
	snap, err := client.PreviousMetric(context.Background(), "migrated")
	require.NoError(t, err)
	assert.Nil(t, snap)
}
