package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dafater-app/dafater/internal/platform/httpx"
	"github.com/dafater-app/dafater/internal/shared"
)

// RepositoryPort defines data access methods for the ledger.
type RepositoryPort interface {
	ListTransactions(ctx context.Context, companyID int64, limit, offset int) ([]TransactionRow, error)
	CountTransactions(ctx context.Context, companyID int64) (int, error)
	GetTransaction(ctx context.Context, id int64) (*Transaction, error)
	InsertTransaction(ctx context.Context, t Transaction) (*Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, t Transaction) (*Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	ListClients(ctx context.Context, companyID int64) ([]Client, error)
	InsertClient(ctx context.Context, c Client) (*Client, error)
	ListCategories(ctx context.Context, companyID int64) ([]Category, error)
	InsertCategory(ctx context.Context, c Category) (*Category, error)
}

// Guard authorizes company-scoped operations.
type Guard interface {
	Require(ctx context.Context, companyID int64, userID string) error
}

// Notifier is told after every ledger mutation so cached aggregates can be
// invalidated or rebuilt. Implementations must tolerate being nil-checked.
type Notifier interface {
	LedgerChanged(ctx context.Context, companyID int64)
}

// Service handles company-scoped ledger operations. Every entry point
// re-checks access before touching a row.
type Service struct {
	repo     RepositoryPort
	guard    Guard
	notifier Notifier
}

// NewService builds a Service instance. notifier may be nil.
func NewService(repo RepositoryPort, guard Guard, notifier Notifier) *Service {
	return &Service{repo: repo, guard: guard, notifier: notifier}
}

// ListTransactions returns one page of a company's transactions, newest
// first, plus the company-wide total. page is 1-indexed.
func (s *Service) ListTransactions(ctx context.Context, companyID int64, userID string, page, pageSize int) (*TransactionListing, error) {
	if err := s.guard.Require(ctx, companyID, userID); err != nil {
		return nil, err
	}

	total, err := s.repo.CountTransactions(ctx, companyID)
	if err != nil {
		return nil, err
	}
	pagination := shared.NewPagination(page, pageSize, total)

	rows, err := s.repo.ListTransactions(ctx, companyID, pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []TransactionRow{}
	}
	return &TransactionListing{Transactions: rows, Pagination: pagination}, nil
}

// CreateTransaction records a new ledger entry for the payload's company.
func (s *Service) CreateTransaction(ctx context.Context, userID string, req TransactionRequest) (*Transaction, error) {
	if err := s.guard.Require(ctx, req.CompanyID, userID); err != nil {
		return nil, err
	}
	if req.Amount < 0 {
		return nil, fmt.Errorf("amount must not be negative: %w", httpx.ErrValidation)
	}

	created, err := s.repo.InsertTransaction(ctx, Transaction{
		CompanyID:     req.CompanyID,
		Kind:          req.Kind,
		Amount:        req.Amount,
		Description:   req.Description,
		Date:          req.Date,
		CategoryID:    req.CategoryID,
		ClientID:      req.ClientID,
		AttachmentURL: req.AttachmentURL,
		CreatedBy:     userID,
	})
	if err != nil {
		return nil, err
	}
	s.notifyChanged(ctx, req.CompanyID)
	return created, nil
}

// UpdateTransaction rewrites an existing entry. Access is checked against
// the stored row's company id, and the payload may not move the entry to
// another company.
func (s *Service) UpdateTransaction(ctx context.Context, transactionID int64, userID string, req TransactionRequest) (*Transaction, error) {
	existing, err := s.repo.GetTransaction(ctx, transactionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("transaction: %w", httpx.ErrUnauthorized)
		}
		return nil, err
	}
	if err := s.guard.Require(ctx, existing.CompanyID, userID); err != nil {
		return nil, err
	}
	if req.CompanyID != existing.CompanyID {
		return nil, fmt.Errorf("company id is immutable: %w", httpx.ErrValidation)
	}
	if req.Amount < 0 {
		return nil, fmt.Errorf("amount must not be negative: %w", httpx.ErrValidation)
	}

	updated, err := s.repo.UpdateTransaction(ctx, transactionID, Transaction{
		Kind:          req.Kind,
		Amount:        req.Amount,
		Description:   req.Description,
		Date:          req.Date,
		CategoryID:    req.CategoryID,
		ClientID:      req.ClientID,
		AttachmentURL: req.AttachmentURL,
	})
	if err != nil {
		return nil, err
	}
	s.notifyChanged(ctx, existing.CompanyID)
	return updated, nil
}

// DeleteTransaction removes an entry. The owning company is resolved from
// the stored row, never from the caller, and a missing row is reported the
// same way as a forbidden one so ids cannot be probed.
func (s *Service) DeleteTransaction(ctx context.Context, transactionID int64, userID string) error {
	existing, err := s.repo.GetTransaction(ctx, transactionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("transaction: %w", httpx.ErrUnauthorized)
		}
		return err
	}
	if err := s.guard.Require(ctx, existing.CompanyID, userID); err != nil {
		return err
	}
	if err := s.repo.DeleteTransaction(ctx, transactionID); err != nil {
		return err
	}
	s.notifyChanged(ctx, existing.CompanyID)
	return nil
}

// ListClients returns a company's clients ordered by name.
func (s *Service) ListClients(ctx context.Context, companyID int64, userID string) ([]Client, error) {
	if err := s.guard.Require(ctx, companyID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListClients(ctx, companyID)
}

// CreateClient adds a client to the payload's company.
func (s *Service) CreateClient(ctx context.Context, userID string, req ClientRequest) (*Client, error) {
	if err := s.guard.Require(ctx, req.CompanyID, userID); err != nil {
		return nil, err
	}
	return s.repo.InsertClient(ctx, Client{
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	})
}

// ListCategories returns a company's categories ordered by name.
func (s *Service) ListCategories(ctx context.Context, companyID int64, userID string) ([]Category, error) {
	if err := s.guard.Require(ctx, companyID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListCategories(ctx, companyID)
}

// CreateCategory adds a category to the payload's company.
func (s *Service) CreateCategory(ctx context.Context, userID string, req CategoryRequest) (*Category, error) {
	if err := s.guard.Require(ctx, req.CompanyID, userID); err != nil {
		return nil, err
	}
	return s.repo.InsertCategory(ctx, Category{
		CompanyID:   req.CompanyID,
		Name:        req.Name,
		Kind:        req.Kind,
		Description: req.Description,
	})
}

func (s *Service) notifyChanged(ctx context.Context, companyID int64) {
	if s.notifier != nil {
		s.notifier.LedgerChanged(ctx, companyID)
	}
}
