package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/akxxtz/lesger2/internal/domain"
)

// ReminderKind classifies a loan status check.
type ReminderKind int

const (
	ReminderNone ReminderKind = iota
	ReminderDueSoon
	ReminderOverdue
)

// Reminder is an informational signal about one active loan. The engine only
// reports it; acting on it (display, blocking) is the caller's concern,
// except that an overdue loan also trips the transaction gate.
type Reminder struct {
	Kind          ReminderKind
	Loan          domain.Loan
	DaysRemaining int
	// SuggestedPayment is the outstanding balance spread evenly over the
	// repayment period. Only set for due-soon reminders.
	SuggestedPayment decimal.Decimal
}

// CheckLoanStatus evaluates one loan against today's date: overdue when past
// the due date, due-soon within WarningDays of it, otherwise none.
func CheckLoanStatus(loan domain.Loan, today time.Time) Reminder {
	if loan.Status != domain.LoanStatusActive {
		return Reminder{Kind: ReminderNone, Loan: loan}
	}
	due := loan.DueDate()
	if today.After(due) {
		return Reminder{Kind: ReminderOverdue, Loan: loan}
	}
	days := int(due.Sub(today).Hours() / 24)
	if days <= WarningDays {
		return Reminder{
			Kind:             ReminderDueSoon,
			Loan:             loan,
			DaysRemaining:    days,
			SuggestedPayment: domain.RoundMoney(loan.OutstandingBalance.Div(decimal.NewFromInt(int64(loan.RepaymentPeriod)))),
		}
	}
	return Reminder{Kind: ReminderNone, Loan: loan}
}

// LoanReminders returns the reminders for all of the user's active loans.
func (s *Service) LoanReminders(userID int) []Reminder {
	today := s.today()
	var out []Reminder
	for _, l := range s.loans {
		if l.UserID != userID || l.Status != domain.LoanStatusActive {
			continue
		}
		if r := CheckLoanStatus(l, today); r.Kind != ReminderNone {
			out = append(out, r)
		}
	}
	return out
}
