package invoices

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dafater-app/dafater/internal/platform/db"
	"github.com/dafater-app/dafater/internal/platform/httpx"
)

// ErrNotFound indicates an invoice does not exist.
var ErrNotFound = errors.New("invoices: not found")

const uniqueViolation = "23505"

// Repository provides PostgreSQL backed persistence for invoices.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes the writes that must share one transaction.
type TxRepository interface {
	InsertInvoice(ctx context.Context, inv Invoice) (int64, error)
	InsertItem(ctx context.Context, invoiceID int64, item Item) error
}

type txRepo struct {
	tx pgx.Tx
}

// WithTx wraps fn in a transaction; any error rolls everything back, so a
// failed item insert also unwinds the already-written header.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &txRepo{tx: tx})
	})
}

func (t *txRepo) InsertInvoice(ctx context.Context, inv Invoice) (int64, error) {
	const query = `
		INSERT INTO invoices (company_id, invoice_number, status, client_id,
			issue_date, due_date, subtotal, tax_amount, total, notes, created_by,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		RETURNING id`

	var id int64
	err := t.tx.QueryRow(ctx, query,
		inv.CompanyID, inv.InvoiceNumber, inv.Status, inv.ClientID,
		inv.IssueDate, inv.DueDate, inv.Subtotal, inv.TaxAmount, inv.Total,
		inv.Notes, inv.CreatedBy,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, fmt.Errorf("invoice number %q: %w", inv.InvoiceNumber, httpx.ErrDuplicate)
		}
		return 0, err
	}
	return id, nil
}

func (t *txRepo) InsertItem(ctx context.Context, invoiceID int64, item Item) error {
	const query = `
		INSERT INTO invoice_items (invoice_id, description, quantity, unit_price, total)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := t.tx.Exec(ctx, query, invoiceID, item.Description, item.Quantity, item.UnitPrice, item.Total)
	return err
}

// List returns a company's invoices newest first, joined with a client
// summary.
func (r *Repository) List(ctx context.Context, companyID int64) ([]ListRow, error) {
	const query = `
		SELECT i.id, i.company_id, i.invoice_number, i.status, i.client_id,
			i.issue_date, i.due_date, i.subtotal, i.tax_amount, i.total, i.notes,
			i.created_by, i.created_at, i.updated_at,
			c.id, c.name, c.email
		FROM invoices i
		LEFT JOIN clients c ON c.id = i.client_id
		WHERE i.company_id = $1
		ORDER BY i.created_at DESC, i.id DESC`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ListRow
	for rows.Next() {
		var row ListRow
		if err := rows.Scan(
			&row.ID, &row.CompanyID, &row.InvoiceNumber, &row.Status, &row.ClientID,
			&row.IssueDate, &row.DueDate, &row.Subtotal, &row.TaxAmount, &row.Total, &row.Notes,
			&row.CreatedBy, &row.CreatedAt, &row.UpdatedAt,
			&row.Client.ID, &row.Client.Name, &row.Client.Email,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetWithClient loads the invoice header joined with the client's contact
// fields.
func (r *Repository) GetWithClient(ctx context.Context, invoiceID int64) (*Details, error) {
	const query = `
		SELECT i.id, i.company_id, i.invoice_number, i.status, i.client_id,
			i.issue_date, i.due_date, i.subtotal, i.tax_amount, i.total, i.notes,
			i.created_by, i.created_at, i.updated_at,
			c.id, c.name, c.email, c.phone, c.address
		FROM invoices i
		LEFT JOIN clients c ON c.id = i.client_id
		WHERE i.id = $1`

	var d Details
	err := r.pool.QueryRow(ctx, query, invoiceID).Scan(
		&d.ID, &d.CompanyID, &d.InvoiceNumber, &d.Status, &d.ClientID,
		&d.IssueDate, &d.DueDate, &d.Subtotal, &d.TaxAmount, &d.Total, &d.Notes,
		&d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
		&d.Client.ID, &d.Client.Name, &d.Client.Email, &d.Client.Phone, &d.Client.Address,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// ListItems returns all line items of an invoice.
func (r *Repository) ListItems(ctx context.Context, invoiceID int64) ([]Item, error) {
	const query = `
		SELECT id, invoice_id, description, quantity, unit_price, total
		FROM invoice_items WHERE invoice_id = $1
		ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.InvoiceID, &item.Description, &item.Quantity, &item.UnitPrice, &item.Total); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ClientCompany resolves the company a client belongs to.
func (r *Repository) ClientCompany(ctx context.Context, clientID int64) (int64, error) {
	var companyID int64
	err := r.pool.QueryRow(ctx, `SELECT company_id FROM clients WHERE id = $1`, clientID).Scan(&companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return companyID, nil
}
