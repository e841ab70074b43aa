package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akxxtz/lesger2/internal/domain"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir, DefaultFiles())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, dir
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal %q: %v", s, err)
	}
	return d
}

func TestOpenBootstrapsLogsWithHeaders(t *testing.T) {
	_, dir := openTestStore(t)

	wantHeaders := map[string]string{
		"users.csv":        "user_id,name,email,password_hash",
		"transactions.csv": "transaction_id,user_id,type,amount,description,date",
		"savings.csv":      "savings_id,user_id,status,percentage",
		"loans.csv":        "loan_id,user_id,principal_amount,interest_rate,repayment_period,outstanding_balance,status,created_at",
	}
	for file, header := range wantHeaders {
		b, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			t.Fatalf("reading %s: %v", file, err)
		}
		got := strings.SplitN(string(b), "\n", 2)[0]
		if got != header {
			t.Errorf("%s header = %q, want %q", file, got, header)
		}
	}
}

func TestUserRoundTrip(t *testing.T) {
	s, dir := openTestStore(t)

	u := domain.User{UserID: 1, Name: "Alice", Email: "alice@example.com", PasswordHash: "h4sh"}
	if err := s.AppendUser(u); err != nil {
		t.Fatalf("AppendUser: %v", err)
	}

	// Reopen to prove the row survived.
	s2, err := Open(dir, DefaultFiles())
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	users, err := s2.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 || users[0] != u {
		t.Errorf("ListUsers = %+v, want [%+v]", users, u)
	}
}

func TestTransactionRoundTrip(t *testing.T) {
	s, _ := openTestStore(t)

	tx := domain.Transaction{
		TransactionID: 1,
		UserID:        7,
		Type:          domain.TxTypeCredit,
		Amount:        mustDecimal(t, "42.50"),
		Description:   "groceries, weekly",
		Date:          time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC),
	}
	if err := s.AppendTransaction(tx); err != nil {
		t.Fatalf("AppendTransaction: %v", err)
	}

	txs, err := s.ListTransactions()
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	got := txs[0]
	if got.TransactionID != 1 || got.UserID != 7 || got.Type != domain.TxTypeCredit {
		t.Errorf("identity fields = %+v", got)
	}
	if !got.Amount.Equal(tx.Amount) {
		t.Errorf("amount = %s, want %s", got.Amount, tx.Amount)
	}
	// Commas in descriptions must survive the CSV codec.
	if got.Description != tx.Description {
		t.Errorf("description = %q, want %q", got.Description, tx.Description)
	}
	if !got.Date.Equal(tx.Date) {
		t.Errorf("date = %v, want %v", got.Date, tx.Date)
	}
}

func TestRewriteLoansReplacesRows(t *testing.T) {
	s, _ := openTestStore(t)

	loan := domain.Loan{
		LoanID:             1,
		UserID:             1,
		PrincipalAmount:    mustDecimal(t, "1000.00"),
		InterestRate:       mustDecimal(t, "12"),
		RepaymentPeriod:    12,
		OutstandingBalance: mustDecimal(t, "1120.00"),
		Status:             domain.LoanStatusActive,
		CreatedAt:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.AppendLoan(loan); err != nil {
		t.Fatalf("AppendLoan: %v", err)
	}

	loan.OutstandingBalance = mustDecimal(t, "0.00")
	loan.Status = domain.LoanStatusRepaid
	if err := s.RewriteLoans([]domain.Loan{loan}); err != nil {
		t.Fatalf("RewriteLoans: %v", err)
	}

	loans, err := s.ListLoans()
	if err != nil {
		t.Fatalf("ListLoans: %v", err)
	}
	if len(loans) != 1 {
		t.Fatalf("got %d loans, want 1", len(loans))
	}
	if loans[0].Status != domain.LoanStatusRepaid || !loans[0].OutstandingBalance.IsZero() {
		t.Errorf("loan after rewrite = %+v", loans[0])
	}
}

func TestRewriteLoansFailureLeavesNoTempFiles(t *testing.T) {
	s, dir := openTestStore(t)

	loan := domain.Loan{
		LoanID:             1,
		UserID:             1,
		PrincipalAmount:    mustDecimal(t, "1000.00"),
		InterestRate:       mustDecimal(t, "12"),
		RepaymentPeriod:    12,
		OutstandingBalance: mustDecimal(t, "1120.00"),
		Status:             domain.LoanStatusActive,
		CreatedAt:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.AppendLoan(loan); err != nil {
		t.Fatalf("AppendLoan: %v", err)
	}

	// A directory in the log's place makes the rename fail.
	path := filepath.Join(dir, "loans.csv")
	if err := os.Remove(path); err != nil {
		t.Fatalf("removing log: %v", err)
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("blocking log: %v", err)
	}

	if err := s.RewriteLoans([]domain.Loan{loan}); err == nil {
		t.Fatal("RewriteLoans over a blocked log succeeded")
	}
	leftovers, err := filepath.Glob(filepath.Join(dir, "loans.csv.tmp*"))
	if err != nil {
		t.Fatalf("globbing temp files: %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("failed rewrite left temp files behind: %v", leftovers)
	}
}

func TestCountersHydrateFromMaxID(t *testing.T) {
	s, dir := openTestStore(t)

	if got := s.NextUserID(); got != 1 {
		t.Errorf("fresh store NextUserID = %d, want 1", got)
	}

	// Leave a gap to prove counters follow max id, not row count.
	if err := s.AppendUser(domain.User{UserID: 5, Name: "Eve", Email: "eve@example.com", PasswordHash: "x"}); err != nil {
		t.Fatalf("AppendUser: %v", err)
	}
	if err := s.AppendTransaction(domain.Transaction{
		TransactionID: 9, UserID: 5, Type: domain.TxTypeDebit,
		Amount: mustDecimal(t, "1.00"), Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("AppendTransaction: %v", err)
	}

	s2, err := Open(dir, DefaultFiles())
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}
	if got := s2.NextUserID(); got != 6 {
		t.Errorf("NextUserID after reopen = %d, want 6", got)
	}
	if got := s2.NextTransactionID(); got != 10 {
		t.Errorf("NextTransactionID after reopen = %d, want 10", got)
	}
	if got := s2.NextTransactionID(); got != 11 {
		t.Errorf("second NextTransactionID = %d, want 11", got)
	}
}

func TestSavingsSettingsKeepHistory(t *testing.T) {
	s, _ := openTestStore(t)

	first := domain.SavingsSetting{SavingsID: 1, UserID: 1, Status: domain.SavingsStatusActive, Percentage: 10}
	second := domain.SavingsSetting{SavingsID: 2, UserID: 1, Status: domain.SavingsStatusActive, Percentage: 25}
	if err := s.AppendSavingsSetting(first); err != nil {
		t.Fatalf("AppendSavingsSetting: %v", err)
	}
	if err := s.AppendSavingsSetting(second); err != nil {
		t.Fatalf("AppendSavingsSetting: %v", err)
	}

	settings, err := s.ListSavingsSettings()
	if err != nil {
		t.Fatalf("ListSavingsSettings: %v", err)
	}
	if len(settings) != 2 {
		t.Fatalf("got %d settings rows, want 2 (history retained)", len(settings))
	}
	if settings[0] != first || settings[1] != second {
		t.Errorf("settings = %+v", settings)
	}
}
