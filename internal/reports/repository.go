package reports

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository runs the reporting queries.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CategoryTotals groups one kind of transaction by category name over a
// date range, both bounds inclusive. Uncategorised rows group under a
// NULL name.
func (r *Repository) CategoryTotals(ctx context.Context, companyID int64, kind, start, end string) ([]CategoryTotal, error) {
	const query = `
		SELECT cat.name, COALESCE(SUM(t.amount), 0)
		FROM transactions t
		LEFT JOIN categories cat ON cat.id = t.category_id
		WHERE t.company_id = $1 AND t.kind = $2 AND t.date >= $3 AND t.date <= $4
		GROUP BY cat.name
		ORDER BY cat.name NULLS LAST`

	rows, err := r.pool.Query(ctx, query, companyID, kind, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CategoryTotal
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Name, &ct.Total); err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, rows.Err()
}

// LedgerEntries returns a company's transactions within a date range,
// both bounds inclusive, ordered by date ascending with insertion order
// breaking ties.
func (r *Repository) LedgerEntries(ctx context.Context, companyID int64, start, end string) ([]CashFlowEntry, error) {
	const query = `
		SELECT id, kind, amount, description, date
		FROM transactions
		WHERE company_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CashFlowEntry
	for rows.Next() {
		var e CashFlowEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Amount, &e.Description, &e.Date); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
