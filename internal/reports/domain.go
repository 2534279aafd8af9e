package reports

// CategoryTotal is one grouped line of the profit and loss statement.
// Name is nil for transactions without a category, those stay their own
// group rather than being folded into another.
type CategoryTotal struct {
	Name  *string `json:"name"`
	Total float64 `json:"total"`
}

// ProfitLoss is the profit and loss statement over a date range.
type ProfitLoss struct {
	StartDate     string          `json:"startDate"`
	EndDate       string          `json:"endDate"`
	Income        []CategoryTotal `json:"income"`
	Expenses      []CategoryTotal `json:"expenses"`
	TotalIncome   float64         `json:"totalIncome"`
	TotalExpenses float64         `json:"totalExpenses"`
	NetProfit     float64         `json:"netProfit"`
}

// CashFlowEntry is one transaction with the balance after applying it.
type CashFlowEntry struct {
	ID          int64   `json:"id"`
	Kind        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
	Balance     float64 `json:"balance"`
}

// CashFlow is the running-balance view over a date range of the ledger.
type CashFlow struct {
	StartDate    string          `json:"startDate"`
	EndDate      string          `json:"endDate"`
	Entries      []CashFlowEntry `json:"entries"`
	FinalBalance float64         `json:"finalBalance"`
}
