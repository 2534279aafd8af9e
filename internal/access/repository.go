package access

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepository implements Repository against PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// CompanyOwner returns the owner id of the company, or ErrNotFound.
func (r *PGRepository) CompanyOwner(ctx context.Context, companyID int64) (string, error) {
	var owner string
	err := r.pool.QueryRow(ctx, `SELECT owner_id FROM companies WHERE id = $1`, companyID).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return owner, nil
}

// IsMember reports whether a membership row exists for (company, user).
func (r *PGRepository) IsMember(ctx context.Context, companyID int64, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM company_members WHERE company_id = $1 AND user_id = $2)`,
		companyID, userID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

var _ Repository = (*PGRepository)(nil)
