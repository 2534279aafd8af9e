package reports

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dafater-app/dafater/internal/platform/httpx"
)

type reportTxn struct {
	id       int64
	kind     string
	amount   float64
	date     string
	category *string
}

type memoryReportRepo struct {
	companyID int64
	txns      []reportTxn
}

func (r *memoryReportRepo) CategoryTotals(ctx context.Context, companyID int64, kind, start, end string) ([]CategoryTotal, error) {
	if companyID != r.companyID {
		return nil, nil
	}
	totals := make(map[string]float64)
	var nilTotal float64
	var hasNil bool
	for _, t := range r.txns {
		if t.kind != kind || t.date < start || t.date > end {
			continue
		}
		if t.category == nil {
			nilTotal += t.amount
			hasNil = true
			continue
		}
		totals[*t.category] += t.amount
	}
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]CategoryTotal, 0, len(names)+1)
	for _, name := range names {
		n := name
		out = append(out, CategoryTotal{Name: &n, Total: totals[name]})
	}
	if hasNil {
		out = append(out, CategoryTotal{Name: nil, Total: nilTotal})
	}
	return out, nil
}

func (r *memoryReportRepo) LedgerEntries(ctx context.Context, companyID int64, start, end string) ([]CashFlowEntry, error) {
	if companyID != r.companyID {
		return nil, nil
	}
	var txns []reportTxn
	for _, t := range r.txns {
		if t.date >= start && t.date <= end {
			txns = append(txns, t)
		}
	}
	sort.Slice(txns, func(i, j int) bool {
		if txns[i].date != txns[j].date {
			return txns[i].date < txns[j].date
		}
		return txns[i].id < txns[j].id
	})
	out := make([]CashFlowEntry, 0, len(txns))
	for _, t := range txns {
		out = append(out, CashFlowEntry{ID: t.id, Kind: t.kind, Amount: t.amount, Date: t.date})
	}
	return out, nil
}

type reportGuard struct {
	allowed map[int64][]string
}

func (g reportGuard) Require(ctx context.Context, companyID int64, userID string) error {
	for _, u := range g.allowed[companyID] {
		if u == userID {
			return nil
		}
	}
	return fmt.Errorf("company %w", httpx.ErrUnauthorized)
}

func newReportService(repo *memoryReportRepo) *Service {
	return NewService(repo, reportGuard{allowed: map[int64][]string{1: {"user-a"}}})
}

func strPtr(s string) *string { return &s }

func TestProfitLossGroupsByCategory(t *testing.T) {
	repo := &memoryReportRepo{
		companyID: 1,
		txns: []reportTxn{
			{id: 1, kind: "income", amount: 500, date: "2024-01-05", category: strPtr("Sales")},
			{id: 2, kind: "income", amount: 300, date: "2024-01-20", category: strPtr("Sales")},
			{id: 3, kind: "income", amount: 200, date: "2024-01-25", category: nil},
			{id: 4, kind: "expense", amount: 400, date: "2024-01-10", category: strPtr("Rent")},
			{id: 5, kind: "expense", amount: 100, date: "2024-02-10", category: strPtr("Rent")},
		},
	}
	svc := newReportService(repo)

	report, err := svc.ProfitLoss(context.Background(), 1, "user-a", "2024-01-01", "2024-01-31")
	require.NoError(t, err)

	require.Equal(t, 1000.0, report.TotalIncome)
	require.Equal(t, 400.0, report.TotalExpenses)
	require.Equal(t, 600.0, report.NetProfit)

	require.Len(t, report.Income, 2)
	require.Equal(t, "Sales", *report.Income[0].Name)
	require.Equal(t, 800.0, report.Income[0].Total)
	require.Nil(t, report.Income[1].Name)
	require.Equal(t, 200.0, report.Income[1].Total)

	require.Len(t, report.Expenses, 1)
	require.Equal(t, "Rent", *report.Expenses[0].Name)
}

func TestProfitLossEmptyRange(t *testing.T) {
	svc := newReportService(&memoryReportRepo{companyID: 1})

	report, err := svc.ProfitLoss(context.Background(), 1, "user-a", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Empty(t, report.Income)
	require.Empty(t, report.Expenses)
	require.Zero(t, report.NetProfit)
}

func TestProfitLossRejectsBadRange(t *testing.T) {
	svc := newReportService(&memoryReportRepo{companyID: 1})

	_, err := svc.ProfitLoss(context.Background(), 1, "user-a", "not-a-date", "2024-01-31")
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.ProfitLoss(context.Background(), 1, "user-a", "2024-02-01", "2024-01-01")
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestProfitLossRequiresAccess(t *testing.T) {
	svc := newReportService(&memoryReportRepo{companyID: 1})

	_, err := svc.ProfitLoss(context.Background(), 1, "stranger", "2024-01-01", "2024-01-31")
	require.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestCashFlowRunningBalance(t *testing.T) {
	repo := &memoryReportRepo{
		companyID: 1,
		txns: []reportTxn{
			{id: 2, kind: "expense", amount: 200, date: "2024-01-10"},
			{id: 1, kind: "income", amount: 500, date: "2024-01-05"},
		},
	}
	svc := newReportService(repo)

	flow, err := svc.CashFlow(context.Background(), 1, "user-a", "2024-01-01", "2024-01-31")
	require.NoError(t, err)

	require.Len(t, flow.Entries, 2)
	require.Equal(t, int64(1), flow.Entries[0].ID)
	require.Equal(t, 500.0, flow.Entries[0].Balance)
	require.Equal(t, int64(2), flow.Entries[1].ID)
	require.Equal(t, 300.0, flow.Entries[1].Balance)
	require.Equal(t, 300.0, flow.FinalBalance)
	require.Equal(t, "2024-01-01", flow.StartDate)
	require.Equal(t, "2024-01-31", flow.EndDate)
}

func TestCashFlowExcludesOutOfRangeEntries(t *testing.T) {
	repo := &memoryReportRepo{
		companyID: 1,
		txns: []reportTxn{
			{id: 1, kind: "expense", amount: 1000, date: "2023-12-15"},
			{id: 2, kind: "income", amount: 500, date: "2024-01-05"},
			{id: 3, kind: "expense", amount: 200, date: "2024-01-10"},
			{id: 4, kind: "income", amount: 900, date: "2024-02-01"},
		},
	}
	svc := newReportService(repo)

	flow, err := svc.CashFlow(context.Background(), 1, "user-a", "2024-01-01", "2024-01-31")
	require.NoError(t, err)

	require.Len(t, flow.Entries, 2)
	require.Equal(t, 500.0, flow.Entries[0].Balance)
	require.Equal(t, 300.0, flow.Entries[1].Balance)
	require.Equal(t, 300.0, flow.FinalBalance)
}

func TestCashFlowEmptyLedger(t *testing.T) {
	svc := newReportService(&memoryReportRepo{companyID: 1})

	flow, err := svc.CashFlow(context.Background(), 1, "user-a", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Empty(t, flow.Entries)
	require.Zero(t, flow.FinalBalance)
}

func TestCashFlowRejectsBadRange(t *testing.T) {
	svc := newReportService(&memoryReportRepo{companyID: 1})

	_, err := svc.CashFlow(context.Background(), 1, "user-a", "", "2024-01-31")
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.CashFlow(context.Background(), 1, "user-a", "2024-02-01", "2024-01-01")
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCashFlowRequiresAccess(t *testing.T) {
	svc := newReportService(&memoryReportRepo{companyID: 1})

	_, err := svc.CashFlow(context.Background(), 1, "stranger", "2024-01-01", "2024-01-31")
	require.ErrorIs(t, err, httpx.ErrUnauthorized)
}
