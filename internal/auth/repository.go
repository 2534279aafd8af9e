package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no credential record matches.
var ErrNotFound = errors.New("auth: credentials not found")

// Credentials is the stored login material for one user.
type Credentials struct {
	UserID       string
	Email        string
	PasswordHash string
	IsActive     bool
}

// Repository reads credential rows from postgres.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindByEmail loads credentials by email. Users without a password hash
// cannot log in with credentials and are treated as missing.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*Credentials, error) {
	const query = `
		SELECT id, email, password_hash, is_active
		FROM users
		WHERE email = $1 AND password_hash IS NOT NULL`

	var c Credentials
	err := r.pool.QueryRow(ctx, query, email).Scan(&c.UserID, &c.Email, &c.PasswordHash, &c.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
