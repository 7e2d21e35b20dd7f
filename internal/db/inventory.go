package db

import (
	"context"
	"fmt"

	"github.com/erp-suite/backend/internal/model"
)

const inventoryColumns = `
	i.id, i.product_id, p.sku, p.name, i.quantity, i.location, i.last_updated
`

func (p *Postgres) ListInventory(ctx context.Context) ([]model.Inventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		ORDER BY i.id
	`
	return p.queryInventory(ctx, query)
}

func (p *Postgres) ListLowStockInventory(ctx context.Context, threshold int64) ([]model.Inventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.quantity <= $1
		ORDER BY i.quantity
	`
	return p.queryInventory(ctx, query, threshold)
}

func (p *Postgres) GetInventoryByID(ctx context.Context, id int64) (*model.Inventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.id = $1
	`
	return p.scanInventory(ctx, query, id)
}

func (p *Postgres) GetInventoryByProductID(ctx context.Context, productID int64) (*model.Inventory, error) {
	query := `
		SELECT ` + inventoryColumns + `
		FROM inventory i
		JOIN products p ON p.id = i.product_id
		WHERE i.product_id = $1
	`
	return p.scanInventory(ctx, query, productID)
}

func (p *Postgres) CreateInventory(ctx context.Context, req model.CreateInventoryRequest) (int64, error) {
	var id int64
	err := p.Pool.QueryRow(ctx, `
		INSERT INTO inventory (product_id, quantity, location, last_updated)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`, req.ProductID, req.Quantity, req.Location).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (p *Postgres) UpdateInventory(ctx context.Context, id int64, req model.UpdateInventoryRequest) error {
	tag, err := p.Pool.Exec(ctx, `
		UPDATE inventory
		SET quantity = $1, location = $2, last_updated = NOW()
		WHERE id = $3
	`, req.Quantity, req.Location, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRowsAffected
	}
	return nil
}

func (p *Postgres) DeleteInventory(ctx context.Context, id int64) error {
	tag, err := p.Pool.Exec(ctx, `DELETE FROM inventory WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRowsAffected
	}
	return nil
}

func (p *Postgres) queryInventory(ctx context.Context, query string, args ...any) ([]model.Inventory, error) {
	rows, err := p.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var items []model.Inventory
	for rows.Next() {
		var inv model.Inventory
		if err := rows.Scan(&inv.ID, &inv.ProductID, &inv.ProductSKU, &inv.ProductName,
			&inv.Quantity, &inv.Location, &inv.LastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan inventory: %w", err)
		}
		items = append(items, inv)
	}
	if items == nil {
		items = []model.Inventory{}
	}
	return items, rows.Err()
}

func (p *Postgres) scanInventory(ctx context.Context, query string, arg any) (*model.Inventory, error) {
	var inv model.Inventory
	err := p.Pool.QueryRow(ctx, query, arg).Scan(
		&inv.ID, &inv.ProductID, &inv.ProductSKU, &inv.ProductName,
		&inv.Quantity, &inv.Location, &inv.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}
