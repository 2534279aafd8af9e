package ledger

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates a ledger row does not exist.
var ErrNotFound = errors.New("ledger: not found")

// Repository provides PostgreSQL backed persistence for the ledger.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListTransactions returns one window of a company's transactions ordered
// by creation time descending, annotated with category and client names.
func (r *Repository) ListTransactions(ctx context.Context, companyID int64, limit, offset int) ([]TransactionRow, error) {
	const query = `
		SELECT t.id, t.company_id, t.kind, t.amount, t.description, t.date,
			t.category_id, t.client_id, t.attachment_url, t.created_by,
			t.created_at, t.updated_at,
			cat.name, cl.name
		FROM transactions t
		LEFT JOIN categories cat ON cat.id = t.category_id
		LEFT JOIN clients cl ON cl.id = t.client_id
		WHERE t.company_id = $1
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactionRows(rows)
}

// CountTransactions returns the company-wide transaction count.
func (r *Repository) CountTransactions(ctx context.Context, companyID int64) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE company_id = $1`, companyID,
	).Scan(&total)
	return total, err
}

// GetTransaction fetches a transaction by id.
func (r *Repository) GetTransaction(ctx context.Context, id int64) (*Transaction, error) {
	const query = `
		SELECT id, company_id, kind, amount, description, date,
			category_id, client_id, attachment_url, created_by, created_at, updated_at
		FROM transactions WHERE id = $1`

	var t Transaction
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.CompanyID, &t.Kind, &t.Amount, &t.Description, &t.Date,
		&t.CategoryID, &t.ClientID, &t.AttachmentURL, &t.CreatedBy,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// InsertTransaction creates a transaction row.
func (r *Repository) InsertTransaction(ctx context.Context, t Transaction) (*Transaction, error) {
	const query = `
		INSERT INTO transactions (company_id, kind, amount, description, date,
			category_id, client_id, attachment_url, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		t.CompanyID, t.Kind, t.Amount, t.Description, t.Date,
		t.CategoryID, t.ClientID, t.AttachmentURL, t.CreatedBy,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTransaction rewrites the mutable fields of a transaction and
// stamps updated_at. The company id column is never touched.
func (r *Repository) UpdateTransaction(ctx context.Context, id int64, t Transaction) (*Transaction, error) {
	const query = `
		UPDATE transactions
		SET kind = $2, amount = $3, description = $4, date = $5,
			category_id = $6, client_id = $7, attachment_url = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING company_id, created_by, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		id, t.Kind, t.Amount, t.Description, t.Date,
		t.CategoryID, t.ClientID, t.AttachmentURL,
	).Scan(&t.CompanyID, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	t.ID = id
	return &t, nil
}

// DeleteTransaction removes a transaction row.
func (r *Repository) DeleteTransaction(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	return err
}

// ListClients returns a company's clients ordered by name for stable
// presentation.
func (r *Repository) ListClients(ctx context.Context, companyID int64) ([]Client, error) {
	const query = `
		SELECT id, company_id, name, email, phone, address, created_at
		FROM clients WHERE company_id = $1
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// InsertClient creates a client row.
func (r *Repository) InsertClient(ctx context.Context, c Client) (*Client, error) {
	const query = `
		INSERT INTO clients (company_id, name, email, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query, c.CompanyID, c.Name, c.Email, c.Phone, c.Address).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategories returns a company's categories ordered by name.
func (r *Repository) ListCategories(ctx context.Context, companyID int64) ([]Category, error) {
	const query = `
		SELECT id, company_id, name, kind, description, created_at
		FROM categories WHERE company_id = $1
		ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Kind, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// InsertCategory creates a category row.
func (r *Repository) InsertCategory(ctx context.Context, c Category) (*Category, error) {
	const query = `
		INSERT INTO categories (company_id, name, kind, description, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query, c.CompanyID, c.Name, c.Kind, c.Description).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanTransactionRows(rows pgx.Rows) ([]TransactionRow, error) {
	var out []TransactionRow
	for rows.Next() {
		var row TransactionRow
		if err := rows.Scan(
			&row.ID, &row.CompanyID, &row.Kind, &row.Amount, &row.Description, &row.Date,
			&row.CategoryID, &row.ClientID, &row.AttachmentURL, &row.CreatedBy,
			&row.CreatedAt, &row.UpdatedAt,
			&row.CategoryName, &row.ClientName,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
