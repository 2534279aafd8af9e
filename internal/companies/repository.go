package companies

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dafater-app/dafater/internal/platform/db"
)

// ErrNotFound indicates the company does not exist.
var ErrNotFound = errors.New("companies: not found")

// Repository provides PostgreSQL backed persistence for companies.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the writes that must share one transaction.
type TxRepository interface {
	InsertCompany(ctx context.Context, company Company) (int64, error)
	InsertCategory(ctx context.Context, companyID int64, seed CategorySeed) error
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx wraps fn in a transaction; any error rolls everything back.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
}

func (t *txRepo) InsertCompany(ctx context.Context, company Company) (int64, error) {
	const query = `
		INSERT INTO companies (name, logo, currency, tax_rate, address, phone, email, website, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id`

	var id int64
	err := t.tx.QueryRow(ctx, query,
		company.Name, company.Logo, company.Currency, company.TaxRate,
		company.Address, company.Phone, company.Email, company.Website, company.OwnerID,
	).Scan(&id)
	return id, err
}

func (t *txRepo) InsertCategory(ctx context.Context, companyID int64, seed CategorySeed) error {
	const query = `
		INSERT INTO categories (company_id, name, kind, description, created_at)
		VALUES ($1, $2, $3, $4, NOW())`

	_, err := t.tx.Exec(ctx, query, companyID, seed.Name, seed.Kind, seed.Description)
	return err
}

// Get fetches a company by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Company, error) {
	const query = `
		SELECT id, name, logo, currency, tax_rate, address, phone, email, website, owner_id, created_at, updated_at
		FROM companies WHERE id = $1`

	var c Company
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Logo, &c.Currency, &c.TaxRate,
		&c.Address, &c.Phone, &c.Email, &c.Website, &c.OwnerID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListForUser returns companies the user owns together with companies the
// user holds a membership for. UNION already removes duplicate rows.
func (r *Repository) ListForUser(ctx context.Context, userID string) ([]Company, error) {
	const query = `
		SELECT id, name, logo, currency, tax_rate, address, phone, email, website, owner_id, created_at, updated_at
		FROM companies WHERE owner_id = $1
		UNION
		SELECT c.id, c.name, c.logo, c.currency, c.tax_rate, c.address, c.phone, c.email, c.website, c.owner_id, c.created_at, c.updated_at
		FROM companies c
		JOIN company_members m ON m.company_id = c.id
		WHERE m.user_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []Company
	for rows.Next() {
		var c Company
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Logo, &c.Currency, &c.TaxRate,
			&c.Address, &c.Phone, &c.Email, &c.Website, &c.OwnerID,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// AddMember inserts a membership row for (company, user).
func (r *Repository) AddMember(ctx context.Context, companyID int64, userID string) error {
	const query = `
		INSERT INTO company_members (company_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (company_id, user_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, companyID, userID)
	return err
}
