package reports

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dafater-app/dafater/internal/ledger"
	"github.com/dafater-app/dafater/internal/platform/httpx"
)

const dateOnly = "2006-01-02"

// RepositoryPort is the persistence contract the service depends on.
type RepositoryPort interface {
	CategoryTotals(ctx context.Context, companyID int64, kind, start, end string) ([]CategoryTotal, error)
	LedgerEntries(ctx context.Context, companyID int64, start, end string) ([]CashFlowEntry, error)
}

// Guard verifies company access.
type Guard interface {
	Require(ctx context.Context, companyID int64, userID string) error
}

// Service produces financial reports.
type Service struct {
	repo  RepositoryPort
	guard Guard
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, guard Guard) *Service {
	return &Service{repo: repo, guard: guard}
}

// ProfitLoss builds the statement for a date range, both bounds
// inclusive. Income and expense groups are computed independently.
func (s *Service) ProfitLoss(ctx context.Context, companyID int64, userID, start, end string) (*ProfitLoss, error) {
	if err := s.guard.Require(ctx, companyID, userID); err != nil {
		return nil, err
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	report := ProfitLoss{StartDate: start, EndDate: end}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		income, err := s.repo.CategoryTotals(gctx, companyID, string(ledger.KindIncome), start, end)
		if err != nil {
			return err
		}
		report.Income = income
		return nil
	})
	g.Go(func() error {
		expenses, err := s.repo.CategoryTotals(gctx, companyID, string(ledger.KindExpense), start, end)
		if err != nil {
			return err
		}
		report.Expenses = expenses
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if report.Income == nil {
		report.Income = []CategoryTotal{}
	}
	if report.Expenses == nil {
		report.Expenses = []CategoryTotal{}
	}
	for _, ct := range report.Income {
		report.TotalIncome += ct.Total
	}
	for _, ct := range report.Expenses {
		report.TotalExpenses += ct.Total
	}
	report.NetProfit = report.TotalIncome - report.TotalExpenses
	return &report, nil
}

// CashFlow walks a company's ledger over a date range in date order,
// income adding to and expenses subtracting from a running balance that
// starts at zero. Both bounds are inclusive.
func (s *Service) CashFlow(ctx context.Context, companyID int64, userID, start, end string) (*CashFlow, error) {
	if err := s.guard.Require(ctx, companyID, userID); err != nil {
		return nil, err
	}
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	entries, err := s.repo.LedgerEntries(ctx, companyID, start, end)
	if err != nil {
		return nil, err
	}

	var balance float64
	for i := range entries {
		if entries[i].Kind == string(ledger.KindIncome) {
			balance += entries[i].Amount
		} else {
			balance -= entries[i].Amount
		}
		entries[i].Balance = balance
	}
	if entries == nil {
		entries = []CashFlowEntry{}
	}
	return &CashFlow{StartDate: start, EndDate: end, Entries: entries, FinalBalance: balance}, nil
}

func validateRange(start, end string) error {
	from, err := time.Parse(dateOnly, start)
	if err != nil {
		return fmt.Errorf("start date: %w", httpx.ErrValidation)
	}
	to, err := time.Parse(dateOnly, end)
	if err != nil {
		return fmt.Errorf("end date: %w", httpx.ErrValidation)
	}
	if to.Before(from) {
		return fmt.Errorf("end date precedes start date: %w", httpx.ErrValidation)
	}
	return nil
}
