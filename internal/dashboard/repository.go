package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the aggregate queries behind the overview page.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// MonthTotals sums a company's income and expense amounts over a date
// range. Bounds are inclusive start, exclusive end.
func (r *Repository) MonthTotals(ctx context.Context, companyID int64, start, end string) (income, expense float64, err error) {
	const query = `
		SELECT
			COALESCE(SUM(CASE WHEN kind = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'expense' THEN amount ELSE 0 END), 0)
		FROM transactions
		WHERE company_id = $1 AND date >= $2 AND date < $3`

	err = r.pool.QueryRow(ctx, query, companyID, start, end).Scan(&income, &expense)
	return income, expense, err
}

// Recent returns the latest transactions with joined names, newest first.
func (r *Repository) Recent(ctx context.Context, companyID int64, limit int) ([]RecentTransaction, error) {
	const query = `
		SELECT t.id, t.kind, t.amount, t.description, t.date,
			cat.name, cl.name, t.created_at
		FROM transactions t
		LEFT JOIN categories cat ON cat.id = t.category_id
		LEFT JOIN clients cl ON cl.id = t.client_id
		WHERE t.company_id = $1
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, companyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RecentTransaction
	for rows.Next() {
		var rt RecentTransaction
		if err := rows.Scan(&rt.ID, &rt.Kind, &rt.Amount, &rt.Description, &rt.Date,
			&rt.CategoryName, &rt.ClientName, &rt.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// MonthlyBuckets groups a company's transactions of one kind into
// year/month buckets from the given start date onward, oldest first.
func (r *Repository) MonthlyBuckets(ctx context.Context, companyID int64, kind, start string) ([]ChartPoint, error) {
	const query = `
		SELECT EXTRACT(YEAR FROM date)::int, EXTRACT(MONTH FROM date)::int,
			COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE company_id = $1 AND kind = $2 AND date >= $3
		GROUP BY 1, 2
		ORDER BY 1, 2`

	rows, err := r.pool.Query(ctx, query, companyID, kind, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChartPoint
	for rows.Next() {
		var p ChartPoint
		if err := rows.Scan(&p.Year, &p.Month, &p.Total); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// OutstandingTotal sums the invoice totals still awaiting payment.
func (r *Repository) OutstandingTotal(ctx context.Context, companyID int64) (float64, error) {
	var total float64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM invoices WHERE company_id = $1 AND status = 'sent'`,
		companyID,
	).Scan(&total)
	return total, err
}
