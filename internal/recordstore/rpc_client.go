package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"glyphor/internal/models"
)

// Operation names understood by the record store dispatcher. The store speaks
// a miniature RPC protocol: one POST per call carrying the operation name and
// an optional JSON payload, answered with a success flag and a data payload.
const (
	opInventoryGetAll        = "inventory_ops.getAll"
	opInventoryGetByID       = "inventory_ops.getById"
	opInventoryGetByLocation = "inventory_ops.getByLocation"
	opInventoryCreate        = "inventory_ops.create"
	opInventoryUpdateByID    = "inventory_ops.updateById"
	opInventoryDeleteByID    = "inventory_ops.deleteById"

	opLocationGetAll     = "location_ops.getAll"
	opLocationGetByID    = "location_ops.getById"
	opLocationCreate     = "location_ops.create"
	opLocationUpdateByID = "location_ops.updateById"
	opLocationDeleteByID = "location_ops.deleteById"

	opItemGetAll     = "item_ops.getAll"
	opItemGetByID    = "item_ops.getById"
	opItemCreate     = "item_ops.create"
	opItemUpdateByID = "item_ops.updateById"
	opItemDeleteByID = "item_ops.deleteById"

	opInventoryItemsByInventory = "inventoryItems_ops.getByInventoryId"
	opInventoryItemsCreate      = "inventoryItems_ops.create"
	opInventoryItemsUpdateQty   = "inventoryItems_ops.updateQuantity"
	opInventoryItemsRemove      = "inventoryItems_ops.removeItem"

	opDemandGetAll         = "demandhistory_ops.getAll"
	opDemandByInventory    = "demandhistory_ops.getByInventoryId"
	opDemandByItem         = "demandhistory_ops.getByItemId"
	opDemandCreate         = "demandhistory_ops.create"

	opRelocationGetAll     = "relocationmessage_ops.getAll"
	opRelocationGetByID    = "relocationmessage_ops.getById"
	opRelocationByStatus   = "relocationmessage_ops.getByStatus"
	opRelocationCreate     = "relocationmessage_ops.create"
	opRelocationUpdateByID = "relocationmessage_ops.updateById"

	opAlertGetAll        = "realtimealert_ops.getAll"
	opAlertUnresolved    = "realtimealert_ops.getUnresolved"
	opAlertBySeverity    = "realtimealert_ops.getBySeverity"
	opAlertByInventory   = "realtimealert_ops.getByInventoryId"
	opAlertCreate        = "realtimealert_ops.create"
	opAlertResolve       = "realtimealert_ops.updateResolved"

	opSpikeGetAll = "spikemonitoring_ops.getAll"
	opSpikeCreate = "spikemonitoring_ops.create"

	opDashboardRecord   = "dashboardmetrics_ops.recordDailyMetrics"
	opDashboardPrevious = "dashboardmetrics_ops.getPreviousMetrics"
)

// DefaultCallTimeout bounds every record-store round trip. A timeout is a
// recoverable per-tick failure, never fatal to the monitor loop.
const DefaultCallTimeout = 30 * time.Second

type rpcRequest struct {
	Operation string `json:"operation"`
	Payload   any    `json:"payload,omitempty"`
}

type rpcResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// RPCClient implements Store against a remote record store speaking the
// operation-name + JSON-payload protocol.
type RPCClient struct {
	baseURL string
	client  *http.Client
}

func NewRPCClient(baseURL string) *RPCClient {
	return &RPCClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: DefaultCallTimeout},
	}
}

var _ Store = (*RPCClient)(nil)

// call performs one round trip and separates the three failure classes:
// transport (unreachable/timeout), malformed (undecodable answer) and domain
// (success=false).
func (c *RPCClient) call(ctx context.Context, op string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(rpcRequest{Operation: op, Payload: payload})
	if err != nil {
		return nil, &MalformedResponseError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}

	var out rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &MalformedResponseError{Op: op, Err: err}
	}
	if !out.Success {
		reason := out.Error
		if reason == "" {
			reason = "operation failed"
		}
		return nil, &DomainError{Op: op, Reason: reason}
	}
	return out.Data, nil
}

func decodeList[T any](op string, data json.RawMessage) ([]*T, error) {
	var list []*T
	if len(data) == 0 {
		return list, nil
	}
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, &MalformedResponseError{Op: op, Err: err}
	}
	return list, nil
}

// decodeOne unwraps the store's convention of answering single-row reads
// with a one-element array.
func decodeOne[T any](op string, data json.RawMessage) (*T, error) {
	list, err := decodeList[T](op, data)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, &DomainError{Op: op, Reason: "record not found"}
	}
	return list[0], nil
}

func (c *RPCClient) ListInventories(ctx context.Context) ([]*models.Inventory, error) {
	data, err := c.call(ctx, opInventoryGetAll, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Inventory](opInventoryGetAll, data)
}

func (c *RPCClient) GetInventory(ctx context.Context, id int64) (*models.Inventory, error) {
	data, err := c.call(ctx, opInventoryGetByID, id)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Inventory](opInventoryGetByID, data)
}

func (c *RPCClient) GetInventoriesByLocation(ctx context.Context, locationID int64) ([]*models.Inventory, error) {
	data, err := c.call(ctx, opInventoryGetByLocation, locationID)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Inventory](opInventoryGetByLocation, data)
}

func (c *RPCClient) CreateInventory(ctx context.Context, inv *models.Inventory) error {
	_, err := c.call(ctx, opInventoryCreate, inv)
	return err
}

func (c *RPCClient) UpdateInventory(ctx context.Context, inv *models.Inventory) error {
	_, err := c.call(ctx, opInventoryUpdateByID, []any{inv.ID, inv})
	return err
}

func (c *RPCClient) UpdateInventoryVolumes(ctx context.Context, id int64, occupied, available float64) error {
	patch := map[string]float64{"volumeOccupied": occupied, "volumeAvailable": available}
	_, err := c.call(ctx, opInventoryUpdateByID, []any{id, patch})
	return err
}

func (c *RPCClient) DeleteInventory(ctx context.Context, id int64) error {
	_, err := c.call(ctx, opInventoryDeleteByID, id)
	return err
}

func (c *RPCClient) ListLocations(ctx context.Context) ([]*models.Location, error) {
	data, err := c.call(ctx, opLocationGetAll, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Location](opLocationGetAll, data)
}

func (c *RPCClient) GetLocation(ctx context.Context, id int64) (*models.Location, error) {
	data, err := c.call(ctx, opLocationGetByID, id)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Location](opLocationGetByID, data)
}

func (c *RPCClient) CreateLocation(ctx context.Context, loc *models.Location) error {
	_, err := c.call(ctx, opLocationCreate, loc)
	return err
}

func (c *RPCClient) UpdateLocation(ctx context.Context, loc *models.Location) error {
	_, err := c.call(ctx, opLocationUpdateByID, []any{loc.ID, loc})
	return err
}

func (c *RPCClient) DeleteLocation(ctx context.Context, id int64) error {
	_, err := c.call(ctx, opLocationDeleteByID, id)
	return err
}

func (c *RPCClient) ListItems(ctx context.Context) ([]*models.Item, error) {
	data, err := c.call(ctx, opItemGetAll, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Item](opItemGetAll, data)
}

func (c *RPCClient) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	data, err := c.call(ctx, opItemGetByID, id)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.Item](opItemGetByID, data)
}

func (c *RPCClient) CreateItem(ctx context.Context, item *models.Item) error {
	_, err := c.call(ctx, opItemCreate, item)
	return err
}

func (c *RPCClient) UpdateItem(ctx context.Context, item *models.Item) error {
	_, err := c.call(ctx, opItemUpdateByID, []any{item.ID, item})
	return err
}

func (c *RPCClient) DeleteItem(ctx context.Context, id int64) error {
	_, err := c.call(ctx, opItemDeleteByID, id)
	return err
}

func (c *RPCClient) ListInventoryItems(ctx context.Context, inventoryID int64) ([]*models.InventoryItem, error) {
	data, err := c.call(ctx, opInventoryItemsByInventory, inventoryID)
	if err != nil {
		return nil, err
	}
	return decodeList[models.InventoryItem](opInventoryItemsByInventory, data)
}

func (c *RPCClient) AddInventoryItem(ctx context.Context, link *models.InventoryItem) error {
	_, err := c.call(ctx, opInventoryItemsCreate, link)
	return err
}

func (c *RPCClient) UpdateInventoryItemQuantity(ctx context.Context, inventoryID, itemID int64, quantity int) error {
	_, err := c.call(ctx, opInventoryItemsUpdateQty, []any{inventoryID, itemID, quantity})
	return err
}

func (c *RPCClient) RemoveInventoryItem(ctx context.Context, inventoryID, itemID int64) error {
	_, err := c.call(ctx, opInventoryItemsRemove, []any{inventoryID, itemID})
	return err
}

func (c *RPCClient) ListDemandHistory(ctx context.Context) ([]*models.DemandHistoryRecord, error) {
	data, err := c.call(ctx, opDemandGetAll, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.DemandHistoryRecord](opDemandGetAll, data)
}

func (c *RPCClient) DemandHistoryByInventory(ctx context.Context, inventoryID int64) ([]*models.DemandHistoryRecord, error) {
	data, err := c.call(ctx, opDemandByInventory, inventoryID)
	if err != nil {
		return nil, err
	}
	return decodeList[models.DemandHistoryRecord](opDemandByInventory, data)
}

func (c *RPCClient) DemandHistoryByItem(ctx context.Context, itemID int64) ([]*models.DemandHistoryRecord, error) {
	data, err := c.call(ctx, opDemandByItem, itemID)
	if err != nil {
		return nil, err
	}
	return decodeList[models.DemandHistoryRecord](opDemandByItem, data)
}

func (c *RPCClient) CreateDemandRecord(ctx context.Context, rec *models.DemandHistoryRecord) error {
	_, err := c.call(ctx, opDemandCreate, rec)
	return err
}

func (c *RPCClient) ListRelocations(ctx context.Context) ([]*models.RelocationMessage, error) {
	data, err := c.call(ctx, opRelocationGetAll, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.RelocationMessage](opRelocationGetAll, data)
}

func (c *RPCClient) GetRelocation(ctx context.Context, id int64) (*models.RelocationMessage, error) {
	data, err := c.call(ctx, opRelocationGetByID, id)
	if err != nil {
		return nil, err
	}
	return decodeOne[models.RelocationMessage](opRelocationGetByID, data)
}

func (c *RPCClient) RelocationsByStatus(ctx context.Context, status models.RelocationStatus) ([]*models.RelocationMessage, error) {
	data, err := c.call(ctx, opRelocationByStatus, status)
	if err != nil {
		return nil, err
	}
	return decodeList[models.RelocationMessage](opRelocationByStatus, data)
}

func (c *RPCClient) CreateRelocation(ctx context.Context, rel *models.RelocationMessage) error {
	_, err := c.call(ctx, opRelocationCreate, rel)
	return err
}

func (c *RPCClient) UpdateRelocationStatus(ctx context.Context, id int64, status models.RelocationStatus) error {
	_, err := c.call(ctx, opRelocationUpdateByID, []any{id, map[string]models.RelocationStatus{"status": status}})
	return err
}

func (c *RPCClient) ListAlerts(ctx context.Context) ([]*models.RealtimeAlert, error) {
	data, err := c.call(ctx, opAlertGetAll, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.RealtimeAlert](opAlertGetAll, data)
}

func (c *RPCClient) UnresolvedAlerts(ctx context.Context) ([]*models.RealtimeAlert, error) {
	data, err := c.call(ctx, opAlertUnresolved, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.RealtimeAlert](opAlertUnresolved, data)
}

func (c *RPCClient) AlertsBySeverity(ctx context.Context, severity models.AlertSeverity) ([]*models.RealtimeAlert, error) {
	data, err := c.call(ctx, opAlertBySeverity, severity)
	if err != nil {
		return nil, err
	}
	return decodeList[models.RealtimeAlert](opAlertBySeverity, data)
}

func (c *RPCClient) AlertsByInventory(ctx context.Context, inventoryID int64) ([]*models.RealtimeAlert, error) {
	data, err := c.call(ctx, opAlertByInventory, inventoryID)
	if err != nil {
		return nil, err
	}
	return decodeList[models.RealtimeAlert](opAlertByInventory, data)
}

func (c *RPCClient) CreateAlert(ctx context.Context, alert *models.RealtimeAlert) error {
	_, err := c.call(ctx, opAlertCreate, alert)
	return err
}

func (c *RPCClient) ResolveAlert(ctx context.Context, id int64) error {
	_, err := c.call(ctx, opAlertResolve, id)
	return err
}

func (c *RPCClient) ListSpikeRecords(ctx context.Context) ([]*models.SpikeMonitoringRecord, error) {
	data, err := c.call(ctx, opSpikeGetAll, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[models.SpikeMonitoringRecord](opSpikeGetAll, data)
}

func (c *RPCClient) CreateSpikeRecord(ctx context.Context, rec *models.SpikeMonitoringRecord) error {
	_, err := c.call(ctx, opSpikeCreate, rec)
	return err
}

func (c *RPCClient) RecordMetric(ctx context.Context, snap *models.DashboardMetricSnapshot) error {
	payload := map[string]any{"metricType": snap.MetricType, "value": snap.Value}
	_, err := c.call(ctx, opDashboardRecord, payload)
	return err
}

func (c *RPCClient) PreviousMetric(ctx context.Context, metric models.MetricType) (*models.DashboardMetricSnapshot, error) {
	data, err := c.call(ctx, opDashboardPrevious, []models.MetricType{metric})
	if err != nil {
		return nil, err
	}
	list, err := decodeList[models.DashboardMetricSnapshot](opDashboardPrevious, data)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
