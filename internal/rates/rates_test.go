package rates

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/akxxtz/lesger2/internal/domain"
)

func TestEnsureFileSeedsOnceOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rates.json")

	if err := EnsureFile(path); err != nil {
		t.Fatalf("EnsureFile: %v", err)
	}
	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := table.Banks["RHB"]; got != 2.6 {
		t.Errorf("seeded RHB rate = %v, want 2.6", got)
	}
	if len(table.Banks) != 6 {
		t.Errorf("seeded %d banks, want 6", len(table.Banks))
	}

	// An edited file must survive a second EnsureFile.
	table.Banks["RHB"] = 3.1
	if err := Save(path, table); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := EnsureFile(path); err != nil {
		t.Fatalf("second EnsureFile: %v", err)
	}
	table, err = Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := table.Banks["RHB"]; got != 3.1 {
		t.Errorf("RHB rate after reload = %v, want the edited 3.1", got)
	}
}

func TestMonthlyInterest(t *testing.T) {
	table := DefaultTable()
	balance := decimal.NewFromInt(10000)

	tests := []struct {
		bank string
		want string
	}{
		// 10000 × rate/100 ÷ 12
		{"RHB", "21.67"},
		{"Maybank", "20.83"},
		{"Hong Leong", "19.17"},
		{"Alliance", "23.75"},
		{"AmBank", "21.25"},
		{"Standard Chartered", "22.08"},
	}
	for _, tt := range tests {
		got, err := table.MonthlyInterest(balance, tt.bank)
		if err != nil {
			t.Errorf("MonthlyInterest(%s): %v", tt.bank, err)
			continue
		}
		if domain.FormatMoney(got) != tt.want {
			t.Errorf("MonthlyInterest(%s) = %s, want %s", tt.bank, domain.FormatMoney(got), tt.want)
		}
	}

	if _, err := table.MonthlyInterest(balance, "No Such Bank"); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown bank err = %v, want ErrValidation", err)
	}
}
