package invoices

import "time"

// Status enumerates invoice lifecycle states. Only "sent" invoices count
// as outstanding on the dashboard.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// Invoice is the header row. Total is computed at creation as
// subtotal + tax amount and never recomputed from the items afterwards.
type Invoice struct {
	ID            int64     `json:"id"`
	CompanyID     int64     `json:"companyId"`
	InvoiceNumber string    `json:"invoiceNumber"`
	Status        Status    `json:"status"`
	ClientID      int64     `json:"clientId"`
	IssueDate     string    `json:"issueDate"`
	DueDate       string    `json:"dueDate"`
	Subtotal      float64   `json:"subtotal"`
	TaxAmount     float64   `json:"taxAmount"`
	Total         float64   `json:"total"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Item is one invoice line. Items exist only together with their invoice.
type Item struct {
	ID          int64   `json:"id"`
	InvoiceID   int64   `json:"invoiceId"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// ClientSummary is the joined client block on invoice listings.
type ClientSummary struct {
	ID    *int64  `json:"id,omitempty"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ClientContact is the fuller client block on invoice details.
type ClientContact struct {
	ID      *int64  `json:"id,omitempty"`
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// ListRow is one row of an invoice listing.
type ListRow struct {
	Invoice
	Client ClientSummary `json:"client"`
}

// Details is the full invoice view: header, client contact and items.
type Details struct {
	Invoice
	Client ClientContact `json:"client"`
	Items  []Item        `json:"items"`
}

// InvoiceRequest carries the header payload for invoice creation.
type InvoiceRequest struct {
	CompanyID     int64   `json:"companyId" validate:"required,gt=0"`
	InvoiceNumber string  `json:"invoiceNumber" validate:"required,max=50"`
	Status        Status  `json:"status" validate:"omitempty,oneof=draft sent paid overdue cancelled"`
	ClientID      int64   `json:"clientId" validate:"required,gt=0"`
	IssueDate     string  `json:"issueDate" validate:"required,datetime=2006-01-02"`
	DueDate       string  `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Subtotal      float64 `json:"subtotal" validate:"gte=0"`
	TaxAmount     float64 `json:"taxAmount" validate:"gte=0"`
	Total         float64 `json:"total" validate:"gte=0"`
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

// ItemRequest carries one line item payload for invoice creation.
type ItemRequest struct {
	Description string  `json:"description" validate:"required,max=500"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
	Total       float64 `json:"total" validate:"gte=0"`
}
