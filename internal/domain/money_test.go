package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestRoundMoney(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"2.675", "2.68"},
		{"0.125", "0.13"},
		{"100", "100.00"},
		{"-1.005", "-1.01"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.input)
			if err != nil {
				t.Fatalf("parsing %q: %v", tt.input, err)
			}
			got := FormatMoney(RoundMoney(d))
			if got != tt.want {
				t.Errorf("RoundMoney(%s) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain", input: "500", want: "500.00"},
		{name: "two decimals", input: "10.55", want: "10.55"},
		{name: "rounds half up", input: "10.555", want: "10.56"},
		{name: "zero rejected", input: "0", wantErr: true},
		{name: "negative rejected", input: "-5", wantErr: true},
		{name: "garbage rejected", input: "abc", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q): expected error", tt.input)
				}
				if !errors.Is(err, ErrValidation) {
					t.Errorf("ParseAmount(%q): error %v is not ErrValidation", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q): %v", tt.input, err)
			}
			if FormatMoney(got) != tt.want {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, FormatMoney(got), tt.want)
			}
		})
	}
}

func TestLoanDueDateAndOverdue(t *testing.T) {
	created := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	loan := Loan{RepaymentPeriod: 12, Status: LoanStatusActive, CreatedAt: created}

	due := loan.DueDate()
	if want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC); !due.Equal(want) {
		t.Errorf("DueDate() = %v, want %v", due, want)
	}

	if loan.OverdueAt(due) {
		t.Error("loan should not be overdue on its due date")
	}
	if !loan.OverdueAt(due.AddDate(0, 0, 1)) {
		t.Error("loan should be overdue one day past its due date")
	}
	repaid := loan
	repaid.Status = LoanStatusRepaid
	if repaid.OverdueAt(due.AddDate(0, 1, 0)) {
		t.Error("repaid loan can never be overdue")
	}
}

func TestSameMonth(t *testing.T) {
	jan15 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	jan31 := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	feb1 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	jan2025 := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	if !SameMonth(jan15, jan31) {
		t.Error("same month, same year should match")
	}
	if SameMonth(jan31, feb1) {
		t.Error("different months should not match")
	}
	if SameMonth(jan15, jan2025) {
		t.Error("same month of a different year should not match")
	}
}
