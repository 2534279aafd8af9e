package dashboard

import "time"

// Summary carries the headline figures for the current month, plus the
// outstanding invoice total which is not month-scoped.
type Summary struct {
	TotalRevenue        float64 `json:"totalRevenue"`
	TotalExpenses       float64 `json:"totalExpenses"`
	NetProfit           float64 `json:"netProfit"`
	OutstandingInvoices float64 `json:"outstandingInvoices"`
}

// RecentTransaction is one row of the latest-activity feed, with the
// category and client names already joined in.
type RecentTransaction struct {
	ID           int64     `json:"id"`
	Kind         string    `json:"type"`
	Amount       float64   `json:"amount"`
	Description  *string   `json:"description,omitempty"`
	Date         string    `json:"date"`
	CategoryName *string   `json:"categoryName,omitempty"`
	ClientName   *string   `json:"clientName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ChartPoint is one month bucket of the trailing chart window.
type ChartPoint struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

// Charts holds the trailing month buckets split by transaction kind.
type Charts struct {
	Revenue  []ChartPoint `json:"revenue"`
	Expenses []ChartPoint `json:"expenses"`
}

// Dashboard is the full payload returned to the overview page.
type Dashboard struct {
	Summary            Summary             `json:"summary"`
	RecentTransactions []RecentTransaction `json:"recentTransactions"`
	Charts             Charts              `json:"charts"`
}
