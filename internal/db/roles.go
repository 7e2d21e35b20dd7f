package db

import (
	"context"
	"fmt"

	"github.com/erp-suite/backend/internal/model"
)

func (p *Postgres) ListRoles(ctx context.Context) ([]model.Role, error) {
	rows, err := p.Pool.Query(ctx, `SELECT id, name, description FROM roles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var roles []model.Role
	for rows.Next() {
		var r model.Role
		if err := rows.Scan(&r.ID, &r.Name, &r.Description); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, r)
	}
	if roles == nil {
		roles = []model.Role{}
	}
	return roles, rows.Err()
}

func (p *Postgres) GetRoleByName(ctx context.Context, name string) (*model.Role, error) {
	var r model.Role
	err := p.Pool.QueryRow(ctx,
		`SELECT id, name, description FROM roles WHERE name = $1`, name).
		Scan(&r.ID, &r.Name, &r.Description)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRoleNamesForUser returns the role names linked to the user via
// user_roles. Order carries no meaning; callers treat the result as a set.
func (p *Postgres) GetRoleNamesForUser(ctx context.Context, userID int64) ([]string, error) {
	rows, err := p.Pool.Query(ctx, `
		SELECT r.name
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user roles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan role name: %w", err)
		}
		names = append(names, name)
	}
	if names == nil {
		names = []string{}
	}
	return names, rows.Err()
}

func (p *Postgres) AssignRole(ctx context.Context, userID, roleID int64) error {
	_, err := p.Pool.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING
	`, userID, roleID)
	return err
}

func (p *Postgres) RemoveRole(ctx context.Context, userID, roleID int64) error {
	tag, err := p.Pool.Exec(ctx,
		`DELETE FROM user_roles WHERE user_id = $1 AND role_id = $2`, userID, roleID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRowsAffected
	}
	return nil
}
