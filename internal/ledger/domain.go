package ledger

import (
	"time"

	"github.com/dafater-app/dafater/internal/shared"
)

// Kind labels a transaction or category as money in or money out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Transaction is one ledger entry. The company id is fixed at creation;
// dates are calendar dates in ISO form so they stay string-comparable.
type Transaction struct {
	ID            int64     `json:"id"`
	CompanyID     int64     `json:"companyId"`
	Kind          Kind      `json:"type"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	Date          string    `json:"date"`
	CategoryID    *int64    `json:"categoryId,omitempty"`
	ClientID      *int64    `json:"clientId,omitempty"`
	AttachmentURL *string   `json:"attachmentUrl,omitempty"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TransactionRow is a listing row annotated with the optional category and
// client names resolved by left joins.
type TransactionRow struct {
	Transaction
	CategoryName *string `json:"categoryName,omitempty"`
	ClientName   *string `json:"clientName,omitempty"`
}

// TransactionListing is one page of transactions plus the company-wide
// total, independent of the pagination window.
type TransactionListing struct {
	Transactions []TransactionRow  `json:"transactions"`
	Pagination   shared.Pagination `json:"pagination"`
}

// TransactionRequest carries the payload for creating or updating a
// transaction.
type TransactionRequest struct {
	CompanyID     int64   `json:"companyId" validate:"required,gt=0"`
	Kind          Kind    `json:"type" validate:"required,oneof=income expense"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	Description   string  `json:"description" validate:"required,max=500"`
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	CategoryID    *int64  `json:"categoryId,omitempty" validate:"omitempty,gt=0"`
	ClientID      *int64  `json:"clientId,omitempty" validate:"omitempty,gt=0"`
	AttachmentURL *string `json:"attachmentUrl,omitempty"`
}

// Client is a customer of a company.
type Client struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"companyId"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClientRequest carries the payload for creating a client.
type ClientRequest struct {
	CompanyID int64   `json:"companyId" validate:"required,gt=0"`
	Name      string  `json:"name" validate:"required,max=200"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=500"`
}

// Category labels transactions of a single company; its kind must match
// the transactions it labels.
type Category struct {
	ID          int64     `json:"id"`
	CompanyID   int64     `json:"companyId"`
	Name        string    `json:"name"`
	Kind        Kind      `json:"type"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CategoryRequest carries the payload for creating a category.
type CategoryRequest struct {
	CompanyID   int64   `json:"companyId" validate:"required,gt=0"`
	Name        string  `json:"name" validate:"required,max=200"`
	Kind        Kind    `json:"type" validate:"required,oneof=income expense"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
}
