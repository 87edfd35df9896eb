package repositories

import (
	"context"

	"glyphor/internal/models"
	"glyphor/internal/recordstore"
)

type itemRepo struct {
	db DB
}

func NewItemRepo(db DB) recordstore.ItemStore {
	return &itemRepo{db: db}
}

func (r *itemRepo) ListItems(ctx context.Context) ([]*models.Item, error) {
	query := `
		SELECT item_id, name, description, price, weight, dimensions, created_at, updated_at
		FROM items
		ORDER BY item_id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Weight,
			&item.Dimensions, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepo) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	item := &models.Item{}
	query := `
		SELECT item_id, name, description, price, weight, dimensions, created_at, updated_at
		FROM items
		WHERE item_id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.Description, &item.Price,
		&item.Weight, &item.Dimensions, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepo) CreateItem(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (name, description, price, weight, dimensions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING item_id
	`
	return r.db.QueryRow(ctx, query, item.Name, item.Description, item.Price, item.Weight, item.Dimensions).Scan(&item.ID)
}

func (r *itemRepo) UpdateItem(ctx context.Context, item *models.Item) error {
	query := `
		UPDATE items
		SET name = $1, description = $2, price = $3, weight = $4, dimensions = $5, updated_at = NOW()
		WHERE item_id = $6
	`
	_, err := r.db.Exec(ctx, query, item.Name, item.Description, item.Price, item.Weight, item.Dimensions, item.ID)
	return err
}

func (r *itemRepo) DeleteItem(ctx context.Context, id int64) error {
	query := `DELETE FROM items WHERE item_id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *itemRepo) ListInventoryItems(ctx context.Context, inventoryID int64) ([]*models.InventoryItem, error) {
	query := `
		SELECT id, inventory_id, item_id, quantity, updated_at
		FROM inventory_items
		WHERE inventory_id = $1
		ORDER BY item_id
	`
	rows, err := r.db.Query(ctx, query, inventoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*models.InventoryItem
	for rows.Next() {
		link := &models.InventoryItem{}
		if err := rows.Scan(&link.ID, &link.InventoryID, &link.ItemID, &link.Quantity, &link.UpdatedAt); err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

func (r *itemRepo) AddInventoryItem(ctx context.Context, link *models.InventoryItem) error {
	query := `
		INSERT INTO inventory_items (inventory_id, item_id, quantity, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (inventory_id, item_id) DO UPDATE SET quantity = inventory_items.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING id
	`
	return r.db.QueryRow(ctx, query, link.InventoryID, link.ItemID, link.Quantity).Scan(&link.ID)
}

func (r *itemRepo) UpdateInventoryItemQuantity(ctx context.Context, inventoryID, itemID int64, quantity int) error {
	query := `
		UPDATE inventory_items
		SET quantity = $1, updated_at = NOW()
		WHERE inventory_id = $2 AND item_id = $3
	`
	_, err := r.db.Exec(ctx, query, quantity, inventoryID, itemID)
	return err
}

func (r *itemRepo) RemoveInventoryItem(ctx context.Context, inventoryID, itemID int64) error {
	query := `DELETE FROM inventory_items WHERE inventory_id = $1 AND item_id = $2`
	_, err := r.db.Exec(ctx, query, inventoryID, itemID)
	return err
}
