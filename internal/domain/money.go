package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used everywhere a date is stored or
// displayed.
const DateLayout = "2006-01-02"

// Zero returns a zero monetary value.
func Zero() decimal.Decimal {
	return decimal.Zero
}

// RoundMoney rounds a monetary value to two fractional digits, half away from
// zero. Every value written to an account projection or a log row goes
// through this.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ParseAmount parses a user-supplied monetary amount. The value must be a
// valid decimal and strictly positive.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ParseAmount: %q: %w", s, ErrValidation)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("ParseAmount: amount must be positive: %w", ErrValidation)
	}
	return RoundMoney(d), nil
}

// FormatMoney renders a monetary value with exactly two fractional digits.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// DateOnly truncates a timestamp to its calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameMonth reports whether two dates fall in the same calendar month of the
// same year.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
