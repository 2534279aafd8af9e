// Package access decides whether a user may act on a company's books.
package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafater-app/dafater/internal/platform/httpx"
)

// ErrNotFound indicates the company does not exist.
var ErrNotFound = errors.New("access: company not found")

// Repository resolves ownership and membership rows.
type Repository interface {
	CompanyOwner(ctx context.Context, companyID int64) (string, error)
	IsMember(ctx context.Context, companyID int64, userID string) (bool, error)
}

// Guard evaluates company access. The check is intentionally re-run on
// every call rather than cached: a membership revoked between two requests
// must take effect on the next one.
type Guard struct {
	repo Repository
}

// NewGuard constructs a Guard.
func NewGuard(repo Repository) *Guard {
	return &Guard{repo: repo}
}

// HasAccess reports whether the user owns the company or holds a
// membership for it. A company that does not exist grants access to no one.
func (g *Guard) HasAccess(ctx context.Context, companyID int64, userID string) (bool, error) {
	owner, err := g.repo.CompanyOwner(ctx, companyID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if owner == userID {
		return true, nil
	}
	return g.repo.IsMember(ctx, companyID, userID)
}

// Require fails with ErrUnauthorized unless the user may act on the
// company. Every scoped operation calls this before touching the ledger.
func (g *Guard) Require(ctx context.Context, companyID int64, userID string) error {
	ok, err := g.HasAccess(ctx, companyID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("company %w", httpx.ErrUnauthorized)
	}
	return nil
}
