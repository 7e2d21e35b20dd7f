package db

import (
	"context"
	"fmt"

	"github.com/erp-suite/backend/internal/model"
)

const productColumns = `
	p.id, p.sku, p.name, p.description, p.category_id, COALESCE(c.name, ''),
	p.price, p.cost, p.created_at, p.updated_at
`

func (p *Postgres) ListProducts(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.id
	`
	return p.queryProducts(ctx, query)
}

func (p *Postgres) ListProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.category_id = $1
		ORDER BY p.id
	`
	return p.queryProducts(ctx, query, categoryID)
}

// ListProductsWithInventory joins the summed on-hand quantity per product.
func (p *Postgres) ListProductsWithInventory(ctx context.Context) ([]model.ProductWithInventory, error) {
	rows, err := p.Pool.Query(ctx, `
		SELECT `+productColumns+`, COALESCE(SUM(i.quantity), 0)
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		LEFT JOIN inventory i ON i.product_id = p.id
		GROUP BY p.id, c.name
		ORDER BY p.id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products with inventory: %w", err)
	}
	defer rows.Close()

	var products []model.ProductWithInventory
	for rows.Next() {
		var prod model.ProductWithInventory
		if err := rows.Scan(&prod.ID, &prod.SKU, &prod.Name, &prod.Description,
			&prod.CategoryID, &prod.CategoryName, &prod.Price, &prod.Cost,
			&prod.CreatedAt, &prod.UpdatedAt, &prod.QuantityOnHand); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, prod)
	}
	if products == nil {
		products = []model.ProductWithInventory{}
	}
	return products, rows.Err()
}

func (p *Postgres) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`
	return p.scanProduct(ctx, query, id)
}

func (p *Postgres) GetProductBySKU(ctx context.Context, sku string) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.sku = $1
	`
	return p.scanProduct(ctx, query, sku)
}

func (p *Postgres) SKUExists(ctx context.Context, sku string) (bool, error) {
	var exists bool
	err := p.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE sku = $1)`, sku).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check sku: %w", err)
	}
	return exists, nil
}

func (p *Postgres) CreateProduct(ctx context.Context, req model.ProductRequest) (int64, error) {
	var id int64
	err := p.Pool.QueryRow(ctx, `
		INSERT INTO products (sku, name, description, category_id, price, cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id
	`, req.SKU, req.Name, req.Description, req.CategoryID, req.Price, req.Cost).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (p *Postgres) UpdateProduct(ctx context.Context, id int64, req model.ProductRequest) error {
	tag, err := p.Pool.Exec(ctx, `
		UPDATE products
		SET sku = $1, name = $2, description = $3, category_id = $4,
		    price = $5, cost = $6, updated_at = NOW()
		WHERE id = $7
	`, req.SKU, req.Name, req.Description, req.CategoryID, req.Price, req.Cost, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRowsAffected
	}
	return nil
}

func (p *Postgres) DeleteProduct(ctx context.Context, id int64) error {
	tag, err := p.Pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRowsAffected
	}
	return nil
}

func (p *Postgres) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := p.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var prod model.Product
		if err := rows.Scan(&prod.ID, &prod.SKU, &prod.Name, &prod.Description,
			&prod.CategoryID, &prod.CategoryName, &prod.Price, &prod.Cost,
			&prod.CreatedAt, &prod.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, prod)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, rows.Err()
}

func (p *Postgres) scanProduct(ctx context.Context, query string, arg any) (*model.Product, error) {
	var prod model.Product
	err := p.Pool.QueryRow(ctx, query, arg).Scan(
		&prod.ID, &prod.SKU, &prod.Name, &prod.Description,
		&prod.CategoryID, &prod.CategoryName, &prod.Price, &prod.Cost,
		&prod.CreatedAt, &prod.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &prod, nil
}
