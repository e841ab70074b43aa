package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types. Naming follows the statement convention used in the data
// files: a debit is money coming in, a credit is money going out.
const (
	TxTypeDebit  = "debit"
	TxTypeCredit = "credit"
)

// Loan statuses.
const (
	LoanStatusActive = "active"
	LoanStatusRepaid = "repaid"
)

// Savings setting statuses.
const (
	SavingsStatusActive   = "active"
	SavingsStatusInactive = "inactive"
)

// MaxDescriptionLen is the longest accepted transaction description.
const MaxDescriptionLen = 100

// User is the registered identity as stored in the users log.
type User struct {
	UserID       int
	Name         string
	Email        string
	PasswordHash string
}

// Account is the in-memory projection for a user: identity plus the balances
// and settings derived from the logs. Savings and LastActivityDate live only
// in this projection; they are not persisted between process runs.
type Account struct {
	User

	Balance           decimal.Decimal
	Savings           decimal.Decimal
	OutstandingLoan   decimal.Decimal
	SavingsPercentage int
	SavingsActive     bool
	LastActivityDate  time.Time
}

// NewAccount builds a fresh projection for a user with zeroed balances.
func NewAccount(u User, today time.Time) *Account {
	return &Account{
		User:             u,
		Balance:          Zero(),
		Savings:          Zero(),
		OutstandingLoan:  Zero(),
		LastActivityDate: today,
	}
}

// Transaction is one immutable row of the transactions log.
type Transaction struct {
	TransactionID int
	UserID        int
	Type          string
	Amount        decimal.Decimal
	Description   string
	Date          time.Time
}

// SavingsSetting is one row of the savings log. Rows are appended as history;
// only the latest row per user is authoritative.
type SavingsSetting struct {
	SavingsID  int
	UserID     int
	Status     string
	Percentage int
}

// Loan is one row of the loans log. OutstandingBalance starts at principal
// plus total simple interest and only ever decreases.
type Loan struct {
	LoanID             int
	UserID             int
	PrincipalAmount    decimal.Decimal
	InterestRate       decimal.Decimal
	RepaymentPeriod    int // months
	OutstandingBalance decimal.Decimal
	Status             string
	CreatedAt          time.Time
}

// DueDate is the creation date plus the repayment period.
func (l *Loan) DueDate() time.Time {
	return l.CreatedAt.AddDate(0, l.RepaymentPeriod, 0)
}

// OverdueAt reports whether the loan is still active past its due date.
func (l *Loan) OverdueAt(today time.Time) bool {
	return l.Status == LoanStatusActive && today.After(l.DueDate())
}
