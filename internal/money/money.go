// Package money parses and aggregates the decimal-as-string amounts
// carried by expenses, incomes and cards. Amounts never pass through
// floats.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts a decimal-as-string amount, requiring it to be >= 0.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %q must not be negative", s)
	}
	return d, nil
}

// ParsePositive converts a decimal-as-string amount, requiring it to be > 0.
func ParsePositive(s string) (decimal.Decimal, error) {
	d, err := Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount %q must be greater than zero", s)
	}
	return d, nil
}

// Sum adds a list of decimal-as-string amounts. Unparseable entries are an
// error rather than being skipped; stored amounts are validated on write,
// so a bad row indicates corruption worth surfacing.
func Sum(amounts []string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range amounts {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid stored amount %q: %w", s, err)
		}
		total = total.Add(d)
	}
	return total, nil
}
