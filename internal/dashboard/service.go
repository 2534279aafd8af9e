package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dafater-app/dafater/internal/ledger"
)

const (
	recentLimit       = 5
	chartWindowMonths = 6
)

// RepositoryPort is the persistence contract the service depends on.
type RepositoryPort interface {
	MonthTotals(ctx context.Context, companyID int64, start, end string) (float64, float64, error)
	Recent(ctx context.Context, companyID int64, limit int) ([]RecentTransaction, error)
	MonthlyBuckets(ctx context.Context, companyID int64, kind, start string) ([]ChartPoint, error)
	OutstandingTotal(ctx context.Context, companyID int64) (float64, error)
}

// Guard verifies company access.
type Guard interface {
	Require(ctx context.Context, companyID int64, userID string) error
}

// Service assembles the overview payload.
type Service struct {
	repo  RepositoryPort
	guard Guard
	cache *Cache
	now   func() time.Time
}

// NewService builds a Service instance. cache may be nil.
func NewService(repo RepositoryPort, guard Guard, cache *Cache) *Service {
	return &Service{repo: repo, guard: guard, cache: cache, now: time.Now}
}

// Get returns the dashboard for one company. The aggregate queries run
// concurrently and the assembled payload is cached until the next ledger
// mutation bumps the cache version.
func (s *Service) Get(ctx context.Context, companyID int64, userID string) (*Dashboard, error) {
	if err := s.guard.Require(ctx, companyID, userID); err != nil {
		return nil, err
	}

	key, err := s.cache.BuildKey(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var dash Dashboard
	err = s.cache.FetchJSON(ctx, key, &dash, func(ctx context.Context) (interface{}, error) {
		return s.load(ctx, companyID)
	})
	if err != nil {
		return nil, err
	}
	return &dash, nil
}

// Load builds the dashboard without touching the cache. The background
// warmup job uses it to repopulate entries after an invalidation.
func (s *Service) Load(ctx context.Context, companyID int64) (*Dashboard, error) {
	return s.load(ctx, companyID)
}

func (s *Service) load(ctx context.Context, companyID int64) (*Dashboard, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)
	// The chart window runs back from today, so the earliest month is
	// usually partial.
	chartStart := now.AddDate(0, -chartWindowMonths, 0)

	const dateOnly = "2006-01-02"

	var dash Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		income, expense, err := s.repo.MonthTotals(gctx, companyID,
			monthStart.Format(dateOnly), monthEnd.Format(dateOnly))
		if err != nil {
			return err
		}
		dash.Summary.TotalRevenue = income
		dash.Summary.TotalExpenses = expense
		dash.Summary.NetProfit = income - expense
		return nil
	})
	g.Go(func() error {
		total, err := s.repo.OutstandingTotal(gctx, companyID)
		if err != nil {
			return err
		}
		dash.Summary.OutstandingInvoices = total
		return nil
	})
	g.Go(func() error {
		recent, err := s.repo.Recent(gctx, companyID, recentLimit)
		if err != nil {
			return err
		}
		dash.RecentTransactions = recent
		return nil
	})
	g.Go(func() error {
		revenue, err := s.repo.MonthlyBuckets(gctx, companyID,
			string(ledger.KindIncome), chartStart.Format(dateOnly))
		if err != nil {
			return err
		}
		dash.Charts.Revenue = revenue
		return nil
	})
	g.Go(func() error {
		expenses, err := s.repo.MonthlyBuckets(gctx, companyID,
			string(ledger.KindExpense), chartStart.Format(dateOnly))
		if err != nil {
			return err
		}
		dash.Charts.Expenses = expenses
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if dash.RecentTransactions == nil {
		dash.RecentTransactions = []RecentTransaction{}
	}
	if dash.Charts.Revenue == nil {
		dash.Charts.Revenue = []ChartPoint{}
	}
	if dash.Charts.Expenses == nil {
		dash.Charts.Expenses = []ChartPoint{}
	}
	return &dash, nil
}
