package dashboard

import (
	"context"
	"log/slog"
)

// Enqueuer schedules background dashboard rebuilds.
type Enqueuer interface {
	EnqueueDashboardWarmup(ctx context.Context, companyID int64) error
}

// Invalidator reacts to ledger mutations by bumping the cache version and
// queueing a warmup so the next page load hits a fresh entry. Failures are
// logged and swallowed, a stale cache must never fail the write that
// triggered it.
type Invalidator struct {
	logger   *slog.Logger
	cache    *Cache
	enqueuer Enqueuer
}

// NewInvalidator builds an Invalidator. enqueuer may be nil.
func NewInvalidator(logger *slog.Logger, cache *Cache, enqueuer Enqueuer) *Invalidator {
	return &Invalidator{logger: logger, cache: cache, enqueuer: enqueuer}
}

// LedgerChanged invalidates cached dashboards for every company.
func (i *Invalidator) LedgerChanged(ctx context.Context, companyID int64) {
	if err := i.cache.Bump(ctx); err != nil {
		i.logger.Warn("dashboard cache bump failed", slog.Any("error", err), slog.Int64("company_id", companyID))
	}
	if i.enqueuer == nil {
		return
	}
	if err := i.enqueuer.EnqueueDashboardWarmup(ctx, companyID); err != nil {
		i.logger.Warn("dashboard warmup enqueue failed", slog.Any("error", err), slog.Int64("company_id", companyID))
	}
}
