package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akxxtz/lesger2/internal/domain"
)

func encodeLoan(l domain.Loan) []string {
	return []string{
		strconv.Itoa(l.LoanID),
		strconv.Itoa(l.UserID),
		domain.FormatMoney(l.PrincipalAmount),
		l.InterestRate.StringFixed(2),
		strconv.Itoa(l.RepaymentPeriod),
		domain.FormatMoney(l.OutstandingBalance),
		l.Status,
		l.CreatedAt.Format(domain.DateLayout),
	}
}

func decodeLoan(rec []string) (domain.Loan, error) {
	if len(rec) != 8 {
		return domain.Loan{}, fmt.Errorf("decodeLoan: want 8 fields, got %d", len(rec))
	}
	id, err := strconv.Atoi(rec[0])
	if err != nil {
		return domain.Loan{}, fmt.Errorf("decodeLoan: loan_id: %w", err)
	}
	userID, err := strconv.Atoi(rec[1])
	if err != nil {
		return domain.Loan{}, fmt.Errorf("decodeLoan: user_id: %w", err)
	}
	principal, err := decimal.NewFromString(rec[2])
	if err != nil {
		return domain.Loan{}, fmt.Errorf("decodeLoan: principal_amount: %w", err)
	}
	rate, err := decimal.NewFromString(rec[3])
	if err != nil {
		return domain.Loan{}, fmt.Errorf("decodeLoan: interest_rate: %w", err)
	}
	period, err := strconv.Atoi(rec[4])
	if err != nil {
		return domain.Loan{}, fmt.Errorf("decodeLoan: repayment_period: %w", err)
	}
	outstanding, err := decimal.NewFromString(rec[5])
	if err != nil {
		return domain.Loan{}, fmt.Errorf("decodeLoan: outstanding_balance: %w", err)
	}
	createdAt, err := time.Parse(domain.DateLayout, rec[7])
	if err != nil {
		return domain.Loan{}, fmt.Errorf("decodeLoan: created_at: %w", err)
	}
	return domain.Loan{
		LoanID:             id,
		UserID:             userID,
		PrincipalAmount:    principal,
		InterestRate:       rate,
		RepaymentPeriod:    period,
		OutstandingBalance: outstanding,
		Status:             rec[6],
		CreatedAt:          createdAt,
	}, nil
}

// AppendLoan durably adds one loan row.
func (s *Store) AppendLoan(l domain.Loan) error {
	if err := s.appendRow(s.loansPath(), encodeLoan(l)); err != nil {
		return fmt.Errorf("AppendLoan: %w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// RewriteLoans atomically replaces the loans log with the given rows. Used
// when an existing loan row changes, e.g. after a repayment.
func (s *Store) RewriteLoans(loans []domain.Loan) error {
	records := make([][]string, 0, len(loans))
	for _, l := range loans {
		records = append(records, encodeLoan(l))
	}
	if err := s.rewriteAll(s.loansPath(), headers["loans"], records); err != nil {
		return fmt.Errorf("RewriteLoans: %w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// ListLoans returns all loan rows in log order.
func (s *Store) ListLoans() ([]domain.Loan, error) {
	rows, err := readRows(s.loansPath())
	if err != nil {
		return nil, fmt.Errorf("ListLoans: %w: %w", domain.ErrPersistence, err)
	}
	loans := make([]domain.Loan, 0, len(rows))
	for i, rec := range rows {
		l, err := decodeLoan(rec)
		if err != nil {
			return nil, fmt.Errorf("ListLoans: row %d: %w", i+1, err)
		}
		loans = append(loans, l)
	}
	return loans, nil
}
