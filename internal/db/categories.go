package db

import (
	"context"
	"fmt"

	"github.com/erp-suite/backend/internal/model"
)

func (p *Postgres) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := p.Pool.Query(ctx, `SELECT id, name, description FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if categories == nil {
		categories = []model.Category{}
	}
	return categories, rows.Err()
}

func (p *Postgres) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	var cat model.Category
	err := p.Pool.QueryRow(ctx,
		`SELECT id, name, description FROM categories WHERE id = $1`, id).
		Scan(&cat.ID, &cat.Name, &cat.Description)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (p *Postgres) CreateCategory(ctx context.Context, name, description string) (int64, error) {
	var id int64
	err := p.Pool.QueryRow(ctx, `
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id
	`, name, description).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}
	return id, nil
}

func (p *Postgres) UpdateCategory(ctx context.Context, id int64, name, description string) error {
	tag, err := p.Pool.Exec(ctx, `
		UPDATE categories SET name = $1, description = $2 WHERE id = $3
	`, name, description, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRowsAffected
	}
	return nil
}

func (p *Postgres) DeleteCategory(ctx context.Context, id int64) error {
	tag, err := p.Pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRowsAffected
	}
	return nil
}
