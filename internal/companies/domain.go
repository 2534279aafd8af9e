package companies

import "time"

// Company is the tenant boundary: every ledger row belongs to exactly one
// company, and the owner always has implicit access.
type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Logo      *string   `json:"logo,omitempty"`
	Currency  string    `json:"currency"`
	TaxRate   float64   `json:"taxRate"`
	Address   *string   `json:"address,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Website   *string   `json:"website,omitempty"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Member grants a non-owner user access to a company's books.
type Member struct {
	CompanyID int64     `json:"companyId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateCompanyRequest carries the payload for company creation. The owner
// is never taken from the payload; it is forced to the calling user.
type CreateCompanyRequest struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Currency string  `json:"currency" validate:"required,len=3"`
	TaxRate  float64 `json:"taxRate" validate:"gte=0,lte=100"`
	Logo     *string `json:"logo,omitempty"`
	Address  *string `json:"address,omitempty"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Website  *string `json:"website,omitempty" validate:"omitempty,url"`
}

// CategorySeed describes one entry of the default category set created
// together with a new company.
type CategorySeed struct {
	Name        string
	Kind        string
	Description string
}

// DefaultCategories is the fixed set seeded for every new company:
// two income and four expense categories.
func DefaultCategories() []CategorySeed {
	return []CategorySeed{
		{Name: "Sales", Kind: "income", Description: "Revenue from sales"},
		{Name: "Services", Kind: "income", Description: "Revenue from services"},
		{Name: "Salaries", Kind: "expense", Description: "Employee salaries"},
		{Name: "Rent", Kind: "expense", Description: "Office rent"},
		{Name: "Raw Materials", Kind: "expense", Description: "Raw materials and supplies"},
		{Name: "Marketing", Kind: "expense", Description: "Marketing and advertising"},
	}
}
