package invoices

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dafater-app/dafater/internal/platform/httpx"
)

// totalTolerance absorbs float rounding when checking the header totals.
const totalTolerance = 0.005

// RepositoryPort defines data access methods for invoices.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	List(ctx context.Context, companyID int64) ([]ListRow, error)
	GetWithClient(ctx context.Context, invoiceID int64) (*Details, error)
	ListItems(ctx context.Context, invoiceID int64) ([]Item, error)
	ClientCompany(ctx context.Context, clientID int64) (int64, error)
}

// Guard authorizes company-scoped operations.
type Guard interface {
	Require(ctx context.Context, companyID int64, userID string) error
}

// Notifier is told after every invoice mutation so cached aggregates can be
// invalidated or rebuilt. Implementations must tolerate being nil-checked.
type Notifier interface {
	LedgerChanged(ctx context.Context, companyID int64)
}

// Service handles invoice creation and retrieval.
type Service struct {
	repo     RepositoryPort
	guard    Guard
	notifier Notifier
}

// NewService builds a Service instance. notifier may be nil.
func NewService(repo RepositoryPort, guard Guard, notifier Notifier) *Service {
	return &Service{repo: repo, guard: guard, notifier: notifier}
}

// Create inserts the invoice header and all of its line items in one
// transaction: a failure after the header insert unwinds the header too,
// so there is never an invoice without items or an item without an
// invoice.
func (s *Service) Create(ctx context.Context, userID string, header InvoiceRequest, items []ItemRequest) (*Invoice, error) {
	if err := s.guard.Require(ctx, header.CompanyID, userID); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("invoice needs at least one item: %w", httpx.ErrValidation)
	}
	if math.Abs(header.Subtotal+header.TaxAmount-header.Total) > totalTolerance {
		return nil, fmt.Errorf("total must equal subtotal plus tax: %w", httpx.ErrValidation)
	}

	clientCompany, err := s.repo.ClientCompany(ctx, header.ClientID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("client: %w", httpx.ErrValidation)
		}
		return nil, err
	}
	if clientCompany != header.CompanyID {
		return nil, fmt.Errorf("client belongs to another company: %w", httpx.ErrValidation)
	}

	status := header.Status
	if status == "" {
		status = StatusDraft
	}
	invoice := Invoice{
		CompanyID:     header.CompanyID,
		InvoiceNumber: header.InvoiceNumber,
		Status:        status,
		ClientID:      header.ClientID,
		IssueDate:     header.IssueDate,
		DueDate:       header.DueDate,
		Subtotal:      header.Subtotal,
		TaxAmount:     header.TaxAmount,
		Total:         header.Total,
		Notes:         header.Notes,
		CreatedBy:     userID,
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		id, err := tx.InsertInvoice(ctx, invoice)
		if err != nil {
			return err
		}
		invoice.ID = id
		for _, item := range items {
			if err := tx.InsertItem(ctx, id, Item{
				InvoiceID:   id,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				Total:       item.Total,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.LedgerChanged(ctx, invoice.CompanyID)
	}
	return &invoice, nil
}

// List returns a company's invoices with their client summaries.
func (s *Service) List(ctx context.Context, companyID int64, userID string) ([]ListRow, error) {
	if err := s.guard.Require(ctx, companyID, userID); err != nil {
		return nil, err
	}
	rows, err := s.repo.List(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []ListRow{}
	}
	return rows, nil
}

// GetDetails loads the invoice with client contact fields and all items.
// Access is checked against the invoice's own company id; a missing
// invoice is reported exactly like a forbidden one.
func (s *Service) GetDetails(ctx context.Context, invoiceID int64, userID string) (*Details, error) {
	details, err := s.repo.GetWithClient(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("invoice: %w", httpx.ErrUnauthorized)
		}
		return nil, err
	}
	if err := s.guard.Require(ctx, details.CompanyID, userID); err != nil {
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Item{}
	}
	details.Items = items
	return details, nil
}
