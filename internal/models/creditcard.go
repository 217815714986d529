package models

// CardType is the network or brand of a credit card.
type CardType string

// Card types.
const (
	CardVisa       CardType = "Visa"
	CardAmex       CardType = "American Express"
	CardMastercard CardType = "MasterCard"
	CardOther      CardType = "Other"
)

// Valid reports whether t is one of the known card types.
func (t CardType) Valid() bool {
	switch t {
	case CardVisa, CardAmex, CardMastercard, CardOther:
		return true
	}
	return false
}

// MaxCardNameLen bounds the display name of a card.
const MaxCardNameLen = 30

// CardListLimit caps how many cards a list call returns.
const CardListLimit = 20

// CreditCard represents a user's credit card.
//
// ExpenseAmountCredit and PaymentAmount are stored running totals, not
// derived at read time; the by-card expense endpoints recompute totals
// from the expense rows, which is the authoritative figure.
type CreditCard struct {
	// ID is the unique identifier for the card (UUID format).
	ID string `json:"credit_card_id"`

	// UserID is the owning user.
	UserID string `json:"user_id"`

	// Name is the display name (at most MaxCardNameLen characters).
	Name string `json:"card_name"`

	// Type is the card brand.
	Type CardType `json:"card_type"`

	// ExpenseAmountCredit is the stored running total of credit expenses,
	// as a decimal string. Defaults to "0".
	ExpenseAmountCredit string `json:"expense_amount_credit"`

	// PaymentAmount is the stored running total of payments, as a decimal
	// string. Defaults to "0".
	PaymentAmount string `json:"payment_amount"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}
