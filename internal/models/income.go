package models

// IncomeType classifies an income entry.
type IncomeType string

// Income types.
const (
	IncomeSalary IncomeType = "Salary"
	IncomeFees   IncomeType = "Fees"
	IncomeSales  IncomeType = "Sales"
	IncomeRental IncomeType = "Rental"
	IncomeOther  IncomeType = "Other"
)

// Valid reports whether t is one of the known income types.
func (t IncomeType) Valid() bool {
	switch t {
	case IncomeSalary, IncomeFees, IncomeSales, IncomeRental, IncomeOther:
		return true
	}
	return false
}

// MaxIncomeNoteLen bounds the free-text note on an income.
const MaxIncomeNoteLen = 150

// IncomeListLimit caps how many incomes a list call returns.
const IncomeListLimit = 50

// Income represents a single income entry owned by one user.
type Income struct {
	// ID is the unique identifier for the income (UUID format).
	ID string `json:"income_id"`

	// UserID is the owning user.
	UserID string `json:"user_id"`

	// Amount is the income amount as a decimal string, > 0.
	Amount string `json:"income_amount"`

	// Type is the income type.
	Type IncomeType `json:"income_type"`

	// Note is a free-text note, at most MaxIncomeNoteLen characters.
	Note string `json:"income_note"`

	// CreatedAt and UpdatedAt are Unix timestamps.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}
