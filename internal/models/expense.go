package models

// Category classifies an expense.
type Category string

// Expense categories.
const (
	CategoryFood        Category = "Food"
	CategorySupermarket Category = "Supermarket"
	CategoryDelivery    Category = "Delivery"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategorySupermarket, CategoryDelivery:
		return true
	}
	return false
}

// PaymentMethod is how an expense was paid.
type PaymentMethod string

// Payment methods.
const (
	PaymentDebit  PaymentMethod = "Debit"
	PaymentCredit PaymentMethod = "Credit"
	PaymentCash   PaymentMethod = "Cash"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentDebit, PaymentCredit, PaymentCash:
		return true
	}
	return false
}

// Limits on expense fields.
const (
	MaxExpenseNameLen = 100
	MinInstallments   = 1
	MaxInstallments   = 48
	ExpenseListLimit  = 50
)

// Expense represents a single ledger entry owned by one user.
// Expenses are immutable once created; the only mutation is deletion.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"expense_id"`

	// UserID is the owning user. Ownership is exclusive: a shared expense
	// is a second independent row under the recipient's UserID, not a
	// reference to this one.
	UserID string `json:"user_id"`

	// Name describes the expense (at most MaxExpenseNameLen characters).
	Name string `json:"expense_name"`

	// Amount is the expense amount as a decimal string, >= 0.
	Amount string `json:"expense_amount"`

	// Category is the expense category.
	Category Category `json:"expense_category"`

	// PaymentMethod is how the expense was paid.
	PaymentMethod PaymentMethod `json:"payment_method"`

	// Installments is the installment count (1-48). Only meaningful when
	// PaymentMethod is Credit; zero means unset.
	Installments int `json:"installment_quantity,omitempty"`

	// CreditCardID optionally links the expense to one of the owner's cards.
	CreditCardID string `json:"credit_card_id,omitempty"`

	// IsShared marks expenses that originate from the sharing workflow,
	// on both the sender and the recipient side.
	IsShared bool `json:"is_shared"`

	// SharedWithEmail is the other party's email. On a recipient-side copy
	// this is the sender's email.
	SharedWithEmail string `json:"shared_with_email,omitempty"`

	// OriginalCreatorID identifies who first created the expense, set on
	// recipient-side copies only.
	OriginalCreatorID string `json:"original_creator_id,omitempty"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}
