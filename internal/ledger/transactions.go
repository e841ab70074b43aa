package ledger

import (
	"fmt"
	"unicode/utf8"

	"github.com/akxxtz/lesger2/internal/domain"
)

// RecordTransaction validates and appends one transaction for the account,
// then applies its balance effect. A debit increases the balance (money in),
// a credit decreases it (money out). When savings are active the configured
// percentage of every debit is diverted into the savings pot instead of the
// balance. The row is persisted before any in-memory mutation so a failed
// write leaves the projection untouched.
func (s *Service) RecordTransaction(acct *domain.Account, txType, amountStr, description string) (*domain.Transaction, error) {
	if s.hasOverdueLoan(acct.UserID) {
		return nil, fmt.Errorf("RecordTransaction: %w", domain.ErrLoanOverdue)
	}
	if txType != domain.TxTypeDebit && txType != domain.TxTypeCredit {
		return nil, fmt.Errorf("RecordTransaction: unknown type %q: %w", txType, domain.ErrValidation)
	}
	amount, err := domain.ParseAmount(amountStr)
	if err != nil {
		return nil, fmt.Errorf("RecordTransaction: %w", err)
	}
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLen {
		return nil, fmt.Errorf("RecordTransaction: description too long: %w", domain.ErrValidation)
	}

	tx := domain.Transaction{
		TransactionID: s.store.NextTransactionID(),
		UserID:        acct.UserID,
		Type:          txType,
		Amount:        amount,
		Description:   description,
		Date:          s.today(),
	}
	if err := s.store.AppendTransaction(tx); err != nil {
		return nil, fmt.Errorf("RecordTransaction: %w", err)
	}
	s.transactions = append(s.transactions, tx)

	if txType == domain.TxTypeDebit {
		acct.Balance = domain.RoundMoney(acct.Balance.Add(amount))
		if diverted := s.divertToSavings(acct, amount); diverted.IsPositive() {
			s.log.Debug().
				Int("user_id", acct.UserID).
				Str("diverted", domain.FormatMoney(diverted)).
				Msg("savings diversion applied")
		}
	} else {
		acct.Balance = domain.RoundMoney(acct.Balance.Sub(amount))
	}

	s.log.Info().
		Int("transaction_id", tx.TransactionID).
		Int("user_id", acct.UserID).
		Str("type", txType).
		Str("amount", domain.FormatMoney(amount)).
		Msg("transaction recorded")
	return &tx, nil
}

// UserTransactions returns a copy of the user's transactions in log order.
func (s *Service) UserTransactions(userID int) []domain.Transaction {
	var out []domain.Transaction
	for _, t := range s.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out
}
