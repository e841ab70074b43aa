package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/akxxtz/lesger2/internal/domain"
)

// SweepDescription labels the synthetic transaction created by the monthly
// savings sweep.
const SweepDescription = "Monthly Savings Transfer"

// ConfigureSavings activates the savings sweep at the given percentage and
// appends a new settings row. Percentage must be within [0,100].
func (s *Service) ConfigureSavings(acct *domain.Account, percentage int) error {
	if percentage < 0 || percentage > 100 {
		return fmt.Errorf("ConfigureSavings: percentage %d out of range: %w", percentage, domain.ErrValidation)
	}
	st := domainSetting(s.store.NextSavingsID(), acct.UserID, percentage)
	if err := s.store.AppendSavingsSetting(st); err != nil {
		return fmt.Errorf("ConfigureSavings: %w", err)
	}
	s.settings = append(s.settings, st)
	acct.SavingsActive = true
	acct.SavingsPercentage = percentage
	s.log.Info().Int("user_id", acct.UserID).Int("percentage", percentage).Msg("savings configured")
	return nil
}

func domainSetting(id, userID, percentage int) domain.SavingsSetting {
	return domain.SavingsSetting{
		SavingsID:  id,
		UserID:     userID,
		Status:     domain.SavingsStatusActive,
		Percentage: percentage,
	}
}

// divertToSavings moves the configured share of a debit amount into the
// savings pot and takes it back out of the balance, so the balance only
// grows by the remainder. Returns the diverted amount, zero when savings are
// inactive.
func (s *Service) divertToSavings(acct *domain.Account, amount decimal.Decimal) decimal.Decimal {
	if !acct.SavingsActive {
		return domain.Zero()
	}
	diverted := domain.RoundMoney(amount.Mul(decimal.NewFromInt(int64(acct.SavingsPercentage))).Div(decimal.NewFromInt(100)))
	acct.Savings = domain.RoundMoney(acct.Savings.Add(diverted))
	acct.Balance = domain.RoundMoney(acct.Balance.Sub(diverted))
	return diverted
}

// sweepIfNewMonth moves the whole savings pot back into the balance when the
// calendar month has changed since the account's last activity, recording
// the transfer as a normal debit transaction dated today. The check is
// idempotent within a month: the activity date is always advanced, so a
// second login in the same month does nothing. The transfer is appended
// before the pot is touched; a failed write leaves the pot intact.
func (s *Service) sweepIfNewMonth(acct *domain.Account) (*domain.Transaction, error) {
	today := s.today()
	defer func() { acct.LastActivityDate = today }()

	if domain.SameMonth(today, acct.LastActivityDate) || !acct.Savings.IsPositive() {
		return nil, nil
	}

	tx := domain.Transaction{
		TransactionID: s.store.NextTransactionID(),
		UserID:        acct.UserID,
		Type:          domain.TxTypeDebit,
		Amount:        acct.Savings,
		Description:   SweepDescription,
		Date:          today,
	}
	if err := s.store.AppendTransaction(tx); err != nil {
		return nil, fmt.Errorf("sweepIfNewMonth: %w", err)
	}
	s.transactions = append(s.transactions, tx)
	acct.Balance = domain.RoundMoney(acct.Balance.Add(acct.Savings))
	acct.Savings = domain.Zero()
	s.log.Info().
		Int("user_id", acct.UserID).
		Str("amount", domain.FormatMoney(tx.Amount)).
		Msg("monthly savings swept into balance")
	return &tx, nil
}
