package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dafater-app/dafater/internal/platform/httpx"
)

type dashTxn struct {
	id        int64
	kind      string
	amount    float64
	date      string
	createdAt time.Time
}

type memoryDashRepo struct {
	companyID   int64
	txns        []dashTxn
	outstanding float64
}

func (r *memoryDashRepo) MonthTotals(ctx context.Context, companyID int64, start, end string) (float64, float64, error) {
	var income, expense float64
	if companyID != r.companyID {
		return 0, 0, nil
	}
	for _, t := range r.txns {
		if t.date < start || t.date >= end {
			continue
		}
		switch t.kind {
		case "income":
			income += t.amount
		case "expense":
			expense += t.amount
		}
	}
	return income, expense, nil
}

func (r *memoryDashRepo) Recent(ctx context.Context, companyID int64, limit int) ([]RecentTransaction, error) {
	if companyID != r.companyID {
		return nil, nil
	}
	txns := append([]dashTxn(nil), r.txns...)
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].createdAt.Equal(txns[j].createdAt) {
			return txns[i].createdAt.After(txns[j].createdAt)
		}
		return txns[i].id > txns[j].id
	})
	if len(txns) > limit {
		txns = txns[:limit]
	}
	out := make([]RecentTransaction, 0, len(txns))
	for _, t := range txns {
		out = append(out, RecentTransaction{
			ID: t.id, Kind: t.kind, Amount: t.amount, Date: t.date, CreatedAt: t.createdAt,
		})
	}
	return out, nil
}

func (r *memoryDashRepo) MonthlyBuckets(ctx context.Context, companyID int64, kind, start string) ([]ChartPoint, error) {
	if companyID != r.companyID {
		return nil, nil
	}
	buckets := make(map[[2]int]float64)
	for _, t := range r.txns {
		if t.kind != kind || t.date < start {
			continue
		}
		day, err := time.Parse("2006-01-02", t.date)
		if err != nil {
			return nil, err
		}
		buckets[[2]int{day.Year(), int(day.Month())}] += t.amount
	}
	out := make([]ChartPoint, 0, len(buckets))
	for key, total := range buckets {
		out = append(out, ChartPoint{Year: key[0], Month: key[1], Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

func (r *memoryDashRepo) OutstandingTotal(ctx context.Context, companyID int64) (float64, error) {
	if companyID != r.companyID {
		return 0, nil
	}
	return r.outstanding, nil
}

type memberGuard struct {
	allowed map[int64][]string
}

func (g memberGuard) Require(ctx context.Context, companyID int64, userID string) error {
	for _, u := range g.allowed[companyID] {
		if u == userID {
			return nil
		}
	}
	return fmt.Errorf("company %w", httpx.ErrUnauthorized)
}

func newDashService(t *testing.T, repo *memoryDashRepo) (*Service, *Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, time.Minute)
	svc := NewService(repo, memberGuard{allowed: map[int64][]string{1: {"user-a"}}}, cache)
	svc.now = func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc, cache
}

func TestGetRequiresAccess(t *testing.T) {
	svc, _ := newDashService(t, &memoryDashRepo{companyID: 1})

	_, err := svc.Get(context.Background(), 1, "stranger")
	require.ErrorIs(t, err, httpx.ErrUnauthorized)
}

func TestGetComputesSummaryAndCharts(t *testing.T) {
	repo := &memoryDashRepo{
		companyID:   1,
		outstanding: 250,
		txns: []dashTxn{
			{id: 1, kind: "income", amount: 300, date: "2024-05-01", createdAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
			{id: 2, kind: "expense", amount: 400, date: "2024-06-05", createdAt: time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)},
			{id: 3, kind: "income", amount: 1000, date: "2024-06-10", createdAt: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)},
		},
	}
	svc, _ := newDashService(t, repo)

	dash, err := svc.Get(context.Background(), 1, "user-a")
	require.NoError(t, err)

	require.Equal(t, 1000.0, dash.Summary.TotalRevenue)
	require.Equal(t, 400.0, dash.Summary.TotalExpenses)
	require.Equal(t, 600.0, dash.Summary.NetProfit)
	require.Equal(t, 250.0, dash.Summary.OutstandingInvoices)

	require.Equal(t, []ChartPoint{
		{Year: 2024, Month: 5, Total: 300},
		{Year: 2024, Month: 6, Total: 1000},
	}, dash.Charts.Revenue)
	require.Equal(t, []ChartPoint{
		{Year: 2024, Month: 6, Total: 400},
	}, dash.Charts.Expenses)

	require.Len(t, dash.RecentTransactions, 3)
	require.Equal(t, int64(3), dash.RecentTransactions[0].ID)
}

func TestGetChartWindowSpansPartialStartMonth(t *testing.T) {
	// now is fixed at 2024-06-15, so the window opens at 2023-12-15.
	repo := &memoryDashRepo{
		companyID: 1,
		txns: []dashTxn{
			{id: 1, kind: "income", amount: 100, date: "2023-12-10", createdAt: time.Date(2023, 12, 10, 9, 0, 0, 0, time.UTC)},
			{id: 2, kind: "income", amount: 250, date: "2023-12-20", createdAt: time.Date(2023, 12, 20, 9, 0, 0, 0, time.UTC)},
		},
	}
	svc, _ := newDashService(t, repo)

	dash, err := svc.Get(context.Background(), 1, "user-a")
	require.NoError(t, err)

	require.Equal(t, []ChartPoint{
		{Year: 2023, Month: 12, Total: 250},
	}, dash.Charts.Revenue)
}

func TestGetLimitsRecentTransactions(t *testing.T) {
	repo := &memoryDashRepo{companyID: 1}
	for i := 1; i <= 8; i++ {
		repo.txns = append(repo.txns, dashTxn{
			id: int64(i), kind: "income", amount: 10,
			date:      "2024-06-01",
			createdAt: time.Date(2024, 6, 1, 0, i, 0, 0, time.UTC),
		})
	}
	svc, _ := newDashService(t, repo)

	dash, err := svc.Get(context.Background(), 1, "user-a")
	require.NoError(t, err)
	require.Len(t, dash.RecentTransactions, 5)
	require.Equal(t, int64(8), dash.RecentTransactions[0].ID)
}

func TestGetServesCachedUntilBump(t *testing.T) {
	repo := &memoryDashRepo{companyID: 1}
	svc, cache := newDashService(t, repo)

	first, err := svc.Get(context.Background(), 1, "user-a")
	require.NoError(t, err)
	require.Zero(t, first.Summary.TotalRevenue)

	repo.txns = append(repo.txns, dashTxn{
		id: 1, kind: "income", amount: 500, date: "2024-06-12",
		createdAt: time.Date(2024, 6, 12, 9, 0, 0, 0, time.UTC),
	})

	cached, err := svc.Get(context.Background(), 1, "user-a")
	require.NoError(t, err)
	require.Zero(t, cached.Summary.TotalRevenue)

	inv := NewInvalidator(slog.New(slog.NewTextHandler(io.Discard, nil)), cache, nil)
	inv.LedgerChanged(context.Background(), 1)

	fresh, err := svc.Get(context.Background(), 1, "user-a")
	require.NoError(t, err)
	require.Equal(t, 500.0, fresh.Summary.TotalRevenue)
}

func TestGetEmptyCompany(t *testing.T) {
	svc, _ := newDashService(t, &memoryDashRepo{companyID: 1})

	dash, err := svc.Get(context.Background(), 1, "user-a")
	require.NoError(t, err)
	require.Equal(t, Summary{}, dash.Summary)
	require.Empty(t, dash.RecentTransactions)
	require.Empty(t, dash.Charts.Revenue)
	require.Empty(t, dash.Charts.Expenses)
}
