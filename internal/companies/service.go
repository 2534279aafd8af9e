package companies

import (
	"context"
	"fmt"

	"golang.org/x/text/currency"

	"github.com/dafater-app/dafater/internal/platform/httpx"
)

// RepositoryPort defines data access methods for companies.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	Get(ctx context.Context, id int64) (*Company, error)
	ListForUser(ctx context.Context, userID string) ([]Company, error)
	AddMember(ctx context.Context, companyID int64, userID string) error
}

// Guard authorizes company-scoped reads.
type Guard interface {
	HasAccess(ctx context.Context, companyID int64, userID string) (bool, error)
}

// Service handles company lifecycle and listing.
type Service struct {
	repo  RepositoryPort
	guard Guard
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, guard Guard) *Service {
	return &Service{repo: repo, guard: guard}
}

// Create inserts the company and seeds its default category set in one
// transaction. A failure at any step leaves no company behind. The caller
// becomes the owner regardless of the payload; creating a company needs no
// prior access.
func (s *Service) Create(ctx context.Context, userID string, req CreateCompanyRequest) (*Company, error) {
	if _, err := currency.ParseISO(req.Currency); err != nil {
		return nil, fmt.Errorf("currency %q: %w", req.Currency, httpx.ErrValidation)
	}

	company := Company{
		Name:     req.Name,
		Logo:     req.Logo,
		Currency: req.Currency,
		TaxRate:  req.TaxRate,
		Address:  req.Address,
		Phone:    req.Phone,
		Email:    req.Email,
		Website:  req.Website,
		OwnerID:  userID,
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		id, err := tx.InsertCompany(ctx, company)
		if err != nil {
			return err
		}
		company.ID = id
		for _, seed := range DefaultCategories() {
			if err := tx.InsertCategory(ctx, id, seed); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Get returns the company when the user may see it. Denied access is
// reported as not found, which is safe for a display lookup.
func (s *Service) Get(ctx context.Context, companyID int64, userID string) (*Company, error) {
	ok, err := s.guard.HasAccess(ctx, companyID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("company: %w", httpx.ErrNotFound)
	}
	return s.repo.Get(ctx, companyID)
}

// ListForUser returns the owned and member companies for the user. The
// repository query already de-duplicates, but the merge is defensive: a
// company id is never reported twice even if the store returns overlap.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Company, error) {
	rows, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{}, len(rows))
	companies := make([]Company, 0, len(rows))
	for _, c := range rows {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		companies = append(companies, c)
	}
	return companies, nil
}

// AddMember grants a user membership on a company. Only the owner may
// manage membership.
func (s *Service) AddMember(ctx context.Context, companyID int64, ownerID, memberID string) error {
	company, err := s.repo.Get(ctx, companyID)
	if err != nil {
		return err
	}
	if company.OwnerID != ownerID {
		return fmt.Errorf("membership: %w", httpx.ErrUnauthorized)
	}
	return s.repo.AddMember(ctx, companyID, memberID)
}
