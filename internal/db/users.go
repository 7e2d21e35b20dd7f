package db

import (
	"context"
	"fmt"
	"time"

	"github.com/erp-suite/backend/internal/model"
)

// GetUserByLogin resolves a user by username or email, case-insensitively.
func (p *Postgres) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, first_name, last_name, created_at, last_login
		FROM users
		WHERE LOWER(username) = LOWER($1) OR LOWER(email) = LOWER($1)
	`
	return p.scanUser(p.Pool.QueryRow(ctx, query, login))
}

func (p *Postgres) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, first_name, last_name, created_at, last_login
		FROM users
		WHERE id = $1
	`
	return p.scanUser(p.Pool.QueryRow(ctx, query, id))
}

func (p *Postgres) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := p.Pool.Query(ctx, `
		SELECT id, username, email, password_hash, first_name, last_name, created_at, last_login
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
			&u.FirstName, &u.LastName, &u.CreatedAt, &u.LastLogin); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if users == nil {
		users = []model.User{}
	}
	return users, rows.Err()
}

func (p *Postgres) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, first_name, last_name, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, username, email, password_hash, first_name, last_name, created_at, last_login
	`
	return p.scanUser(p.Pool.QueryRow(ctx, query,
		u.Username, u.Email, u.PasswordHash, u.FirstName, u.LastName))
}

func (p *Postgres) UpdateUser(ctx context.Context, id int64, email, firstName, lastName string) error {
	tag, err := p.Pool.Exec(ctx, `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3
		WHERE id = $4
	`, email, firstName, lastName, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRowsAffected
	}
	return nil
}

func (p *Postgres) DeleteUser(ctx context.Context, id int64) error {
	tag, err := p.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errNoRowsAffected
	}
	return nil
}

// UpdateLastLogin stamps the user's last successful login time.
func (p *Postgres) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	_, err := p.Pool.Exec(ctx, `UPDATE users SET last_login = $1 WHERE id = $2`, at, id)
	return err
}

func (p *Postgres) scanUser(row interface{ Scan(dest ...any) error }) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.CreatedAt, &u.LastLogin)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
