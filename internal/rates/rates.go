// Package rates keeps the bank deposit-rate lookup table in a JSON file next
// to the data logs, seeded with defaults on first run so rates can be edited
// without a rebuild.
package rates

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akxxtz/lesger2/internal/domain"
)

// Table maps bank names to annual deposit interest rates in percent.
type Table struct {
	Banks     map[string]float64 `json:"banks"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// DefaultTable returns the seed rates.
func DefaultTable() *Table {
	return &Table{
		Banks: map[string]float64{
			"RHB":                2.6,
			"Maybank":            2.5,
			"Hong Leong":         2.3,
			"Alliance":           2.85,
			"AmBank":             2.55,
			"Standard Chartered": 2.65,
		},
		UpdatedAt: time.Now(),
	}
}

// EnsureFile writes the seed table to path if no file exists there yet.
func EnsureFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("EnsureFile: %w: %w", domain.ErrPersistence, err)
	}
	return Save(path, DefaultTable())
}

// Load reads the table from path.
func Load(path string) (*Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w: %w", domain.ErrPersistence, err)
	}
	var t Table
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("Load: parsing rates file: %w", err)
	}
	return &t, nil
}

// Save writes the table to path.
func Save(path string, t *Table) error {
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("Save: %w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// MonthlyInterest predicts one month of deposit interest on the balance at
// the named bank's annual rate: balance × rate/100 ÷ 12, half-up to 2dp.
// The prediction is informational only and never persisted.
func (t *Table) MonthlyInterest(balance decimal.Decimal, bankName string) (decimal.Decimal, error) {
	rate, ok := t.Banks[bankName]
	if !ok {
		return decimal.Zero, fmt.Errorf("MonthlyInterest: unknown bank %q: %w", bankName, domain.ErrValidation)
	}
	annual := decimal.NewFromFloat(rate).Div(decimal.NewFromInt(100))
	return domain.RoundMoney(balance.Mul(annual).Div(decimal.NewFromInt(12))), nil
}
