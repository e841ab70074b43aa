package report

import (
	"encoding/csv"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akxxtz/lesger2/internal/domain"
)

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func amt(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func sampleTransactions(t *testing.T) []domain.Transaction {
	t.Helper()
	return []domain.Transaction{
		{TransactionID: 1, UserID: 1, Type: domain.TxTypeDebit, Amount: amt(t, "500.00"), Description: "salary", Date: day(1)},
		{TransactionID: 2, UserID: 1, Type: domain.TxTypeCredit, Amount: amt(t, "200.00"), Description: "rent", Date: day(5)},
		{TransactionID: 3, UserID: 1, Type: domain.TxTypeCredit, Amount: amt(t, "50.00"), Description: "groceries", Date: day(5)},
		{TransactionID: 4, UserID: 1, Type: domain.TxTypeDebit, Amount: amt(t, "120.00"), Description: "refund", Date: day(3)},
	}
}

func TestBuildStatementRunningBalance(t *testing.T) {
	lines := BuildStatement(sampleTransactions(t))
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}

	wantBalances := []string{"500.00", "620.00", "420.00", "370.00"}
	wantOrder := []string{"salary", "refund", "rent", "groceries"}
	for i, l := range lines {
		if l.Description != wantOrder[i] {
			t.Errorf("line %d description = %q, want %q", i, l.Description, wantOrder[i])
		}
		if l.Balance != wantBalances[i] {
			t.Errorf("line %d balance = %s, want %s", i, l.Balance, wantBalances[i])
		}
	}

	// Exactly one side populated per line.
	if lines[0].Debit != "500.00" || lines[0].Credit != "" {
		t.Errorf("debit line = %+v", lines[0])
	}
	if lines[2].Credit != "200.00" || lines[2].Debit != "" {
		t.Errorf("credit line = %+v", lines[2])
	}
}

func TestBuildStatementStableForSameDay(t *testing.T) {
	// Same-day rows keep insertion order: rent before groceries.
	lines := BuildStatement(sampleTransactions(t))
	if lines[2].Description != "rent" || lines[3].Description != "groceries" {
		t.Errorf("same-day order = %q, %q", lines[2].Description, lines[3].Description)
	}
}

func TestRenderStatement(t *testing.T) {
	var b strings.Builder
	RenderStatement(&b, BuildStatement(sampleTransactions(t)))
	out := b.String()

	if !strings.Contains(out, "| Date") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "2024-03-01") || !strings.Contains(out, "salary") {
		t.Errorf("missing first row:\n%s", out)
	}
	if got := strings.Count(out, separator); got != 3 {
		t.Errorf("separator count = %d, want 3", got)
	}
}

func TestExportStatement(t *testing.T) {
	dir := t.TempDir()
	path, err := ExportStatement(dir, 7, BuildStatement(sampleTransactions(t)))
	if err != nil {
		t.Fatalf("ExportStatement: %v", err)
	}
	if !strings.HasSuffix(path, "history_7.csv") {
		t.Errorf("path = %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening export: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("got %d rows, want header + 4", len(records))
	}
	if records[0][0] != "Date" || records[0][4] != "Balance" {
		t.Errorf("header = %v", records[0])
	}
	if records[1][1] != "salary" || records[1][4] != "500.00" {
		t.Errorf("first row = %v", records[1])
	}
}

func TestFilters(t *testing.T) {
	txs := sampleTransactions(t)

	got := FilterByDateRange(txs, day(3), day(5))
	if len(got) != 3 {
		t.Errorf("date range kept %d, want 3", len(got))
	}

	got = FilterByType(txs, domain.TxTypeDebit)
	if len(got) != 2 {
		t.Errorf("type filter kept %d, want 2", len(got))
	}
	for _, tx := range got {
		if tx.Type != domain.TxTypeDebit {
			t.Errorf("type filter kept %+v", tx)
		}
	}

	got = FilterByAmountRange(txs, amt(t, "50.00"), amt(t, "200.00"))
	if len(got) != 3 {
		t.Errorf("amount range kept %d, want 3", len(got))
	}
}

func TestSorts(t *testing.T) {
	txs := sampleTransactions(t)

	byDate := SortByDate(txs, true)
	if byDate[0].Date != day(5) || byDate[len(byDate)-1].Date != day(1) {
		t.Errorf("desc date order = %v ... %v", byDate[0].Date, byDate[len(byDate)-1].Date)
	}
	// The input slice stays untouched.
	if txs[0].Description != "salary" {
		t.Errorf("input mutated: %+v", txs[0])
	}

	byAmount := SortByAmount(txs, false)
	wantFirst, wantLast := "50.00", "500.00"
	if domain.FormatMoney(byAmount[0].Amount) != wantFirst || domain.FormatMoney(byAmount[3].Amount) != wantLast {
		t.Errorf("asc amount order = %s ... %s, want %s ... %s",
			domain.FormatMoney(byAmount[0].Amount), domain.FormatMoney(byAmount[3].Amount), wantFirst, wantLast)
	}
}
