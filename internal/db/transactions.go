package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/erp-suite/backend/internal/model"
)

// ErrInsufficientStock is returned when an OUT transaction would drive the
// on-hand quantity below zero.
var ErrInsufficientStock = errors.New("insufficient stock")

func (p *Postgres) ListInventoryTransactions(ctx context.Context, productID int64) ([]model.InventoryTransaction, error) {
	query := `
		SELECT t.id, t.product_id, p.sku, t.quantity, t.transaction_type,
		       t.reference_number, t.notes, t.created_by, t.created_at
		FROM inventory_transactions t
		JOIN products p ON p.id = t.product_id
	`
	args := []any{}
	if productID > 0 {
		query += ` WHERE t.product_id = $1`
		args = append(args, productID)
	}
	query += ` ORDER BY t.created_at DESC`

	rows, err := p.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory transactions: %w", err)
	}
	defer rows.Close()

	var txns []model.InventoryTransaction
	for rows.Next() {
		var t model.InventoryTransaction
		if err := rows.Scan(&t.ID, &t.ProductID, &t.ProductSKU, &t.Quantity,
			&t.TransactionType, &t.ReferenceNumber, &t.Notes,
			&t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan inventory transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if txns == nil {
		txns = []model.InventoryTransaction{}
	}
	return txns, rows.Err()
}

// CreateInventoryTransaction records the movement and applies it to the
// product's inventory row in a single database transaction. IN adds to the
// on-hand quantity, OUT subtracts (never below zero), ADJUSTMENT sets it.
func (p *Postgres) CreateInventoryTransaction(ctx context.Context, t model.InventoryTransaction) (int64, error) {
	tx, err := p.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var id int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO inventory_transactions
			(product_id, quantity, transaction_type, reference_number, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id
	`, t.ProductID, t.Quantity, t.TransactionType, t.ReferenceNumber, t.Notes, t.CreatedBy).Scan(&id); err != nil {
		return 0, err
	}

	switch t.TransactionType {
	case model.TransactionTypeIn:
		if _, err := tx.Exec(ctx, `
			INSERT INTO inventory (product_id, quantity, last_updated)
			VALUES ($1, $2, NOW())
			ON CONFLICT (product_id) DO UPDATE
			SET quantity = inventory.quantity + EXCLUDED.quantity, last_updated = NOW()
		`, t.ProductID, t.Quantity); err != nil {
			return 0, err
		}
	case model.TransactionTypeOut:
		tag, err := tx.Exec(ctx, `
			UPDATE inventory
			SET quantity = quantity - $1, last_updated = NOW()
			WHERE product_id = $2 AND quantity >= $1
		`, t.Quantity, t.ProductID)
		if err != nil {
			return 0, err
		}
		if tag.RowsAffected() == 0 {
			return 0, ErrInsufficientStock
		}
	case model.TransactionTypeAdjustment:
		if _, err := tx.Exec(ctx, `
			INSERT INTO inventory (product_id, quantity, last_updated)
			VALUES ($1, $2, NOW())
			ON CONFLICT (product_id) DO UPDATE
			SET quantity = EXCLUDED.quantity, last_updated = NOW()
		`, t.ProductID, t.Quantity); err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("unknown transaction type: %s", t.TransactionType)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return id, nil
}
