package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dafater-app/dafater/internal/platform/httpx"
)

// Repository provides PostgreSQL backed persistence for users.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Get fetches a user by id.
func (r *Repository) Get(ctx context.Context, id string) (*User, error) {
	const query = `
		SELECT id, email, first_name, last_name, profile_image_url, created_at, updated_at
		FROM users WHERE id = $1`

	var u User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfileImageURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", httpx.ErrNotFound)
		}
		return nil, err
	}
	return &u, nil
}

// Upsert creates the user or refreshes its identity claims on conflict.
func (r *Repository) Upsert(ctx context.Context, input UpsertUserInput) (*User, error) {
	const query = `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			profile_image_url = EXCLUDED.profile_image_url,
			updated_at = NOW()
		RETURNING id, email, first_name, last_name, profile_image_url, created_at, updated_at`

	var u User
	err := r.pool.QueryRow(ctx, query,
		input.ID, input.Email, input.FirstName, input.LastName, input.ProfileImageURL,
	).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfileImageURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
