package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/akxxtz/lesger2/internal/domain"
)

// LoanTerms is the computed cost of a prospective loan, shown to the user
// before confirmation.
type LoanTerms struct {
	Principal      decimal.Decimal
	TotalInterest  decimal.Decimal
	TotalRepayment decimal.Decimal
	MonthlyPayment decimal.Decimal
}

// QuoteLoan computes simple, non-compounding interest over the repayment
// period: principal × annual rate × months / 1200.
func QuoteLoan(principal, annualRate decimal.Decimal, months int) LoanTerms {
	totalInterest := principal.
		Mul(annualRate).
		Mul(decimal.NewFromInt(int64(months))).
		Div(decimal.NewFromInt(1200))
	totalInterest = domain.RoundMoney(totalInterest)
	totalRepayment := domain.RoundMoney(principal.Add(totalInterest))
	return LoanTerms{
		Principal:      principal,
		TotalInterest:  totalInterest,
		TotalRepayment: totalRepayment,
		MonthlyPayment: domain.RoundMoney(totalRepayment.Div(decimal.NewFromInt(int64(months)))),
	}
}

// ApplyForLoan originates a loan for the account. At most one active loan
// may exist per user; principal, rate and period must all be positive. The
// outstanding balance starts at principal plus total simple interest.
func (s *Service) ApplyForLoan(acct *domain.Account, principal, annualRate decimal.Decimal, months int) (*domain.Loan, error) {
	if _, ok := s.ActiveLoan(acct.UserID); ok {
		return nil, fmt.Errorf("ApplyForLoan: an active loan already exists: %w", domain.ErrConflict)
	}
	if !principal.IsPositive() {
		return nil, fmt.Errorf("ApplyForLoan: principal must be positive: %w", domain.ErrValidation)
	}
	if !annualRate.IsPositive() {
		return nil, fmt.Errorf("ApplyForLoan: interest rate must be positive: %w", domain.ErrValidation)
	}
	if months <= 0 {
		return nil, fmt.Errorf("ApplyForLoan: repayment period must be positive: %w", domain.ErrValidation)
	}

	terms := QuoteLoan(principal, annualRate, months)
	loan := domain.Loan{
		LoanID:             s.store.NextLoanID(),
		UserID:             acct.UserID,
		PrincipalAmount:    domain.RoundMoney(principal),
		InterestRate:       annualRate,
		RepaymentPeriod:    months,
		OutstandingBalance: terms.TotalRepayment,
		Status:             domain.LoanStatusActive,
		CreatedAt:          s.today(),
	}
	if err := s.store.AppendLoan(loan); err != nil {
		return nil, fmt.Errorf("ApplyForLoan: %w", err)
	}
	s.loans = append(s.loans, loan)
	acct.OutstandingLoan = terms.TotalRepayment
	s.log.Info().
		Int("loan_id", loan.LoanID).
		Int("user_id", acct.UserID).
		Str("total_repayment", domain.FormatMoney(terms.TotalRepayment)).
		Msg("loan originated")
	return &s.loans[len(s.loans)-1], nil
}

// RepayLoan applies a repayment to the loan. The amount must be positive and
// no larger than the outstanding balance; reaching exactly zero moves the
// loan to its terminal repaid status. Because an existing row changes, the
// whole loans log is rewritten, and only after that succeeds are the
// in-memory loan and account updated.
func (s *Service) RepayLoan(acct *domain.Account, loan *domain.Loan, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("RepayLoan: amount must be positive: %w", domain.ErrValidation)
	}
	if amount.GreaterThan(loan.OutstandingBalance) {
		return fmt.Errorf("RepayLoan: amount exceeds outstanding balance: %w", domain.ErrValidation)
	}

	updated := *loan
	updated.OutstandingBalance = domain.RoundMoney(loan.OutstandingBalance.Sub(amount))
	if updated.OutstandingBalance.IsZero() {
		updated.Status = domain.LoanStatusRepaid
	}

	rewritten := make([]domain.Loan, len(s.loans))
	copy(rewritten, s.loans)
	found := false
	for i := range rewritten {
		if rewritten[i].LoanID == loan.LoanID {
			rewritten[i] = updated
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("RepayLoan: loan %d: %w", loan.LoanID, domain.ErrNotFound)
	}
	if err := s.store.RewriteLoans(rewritten); err != nil {
		return fmt.Errorf("RepayLoan: %w", err)
	}
	s.loans = rewritten
	*loan = updated
	acct.OutstandingLoan = updated.OutstandingBalance
	s.log.Info().
		Int("loan_id", updated.LoanID).
		Str("outstanding", domain.FormatMoney(updated.OutstandingBalance)).
		Str("status", updated.Status).
		Msg("repayment applied")
	return nil
}

// ActiveLoan returns the user's active loan, if any.
func (s *Service) ActiveLoan(userID int) (*domain.Loan, bool) {
	for i := range s.loans {
		if s.loans[i].UserID == userID && s.loans[i].Status == domain.LoanStatusActive {
			return &s.loans[i], true
		}
	}
	return nil, false
}

func (s *Service) hasOverdueLoan(userID int) bool {
	today := s.today()
	for i := range s.loans {
		if s.loans[i].UserID == userID && s.loans[i].OverdueAt(today) {
			return true
		}
	}
	return false
}
