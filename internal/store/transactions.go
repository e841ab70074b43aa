package store

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akxxtz/lesger2/internal/domain"
)

func encodeTransaction(t domain.Transaction) []string {
	return []string{
		strconv.Itoa(t.TransactionID),
		strconv.Itoa(t.UserID),
		t.Type,
		domain.FormatMoney(t.Amount),
		t.Description,
		t.Date.Format(domain.DateLayout),
	}
}

func decodeTransaction(rec []string) (domain.Transaction, error) {
	if len(rec) != 6 {
		return domain.Transaction{}, fmt.Errorf("decodeTransaction: want 6 fields, got %d", len(rec))
	}
	id, err := strconv.Atoi(rec[0])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("decodeTransaction: transaction_id: %w", err)
	}
	userID, err := strconv.Atoi(rec[1])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("decodeTransaction: user_id: %w", err)
	}
	amount, err := decimal.NewFromString(rec[3])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("decodeTransaction: amount: %w", err)
	}
	date, err := time.Parse(domain.DateLayout, rec[5])
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("decodeTransaction: date: %w", err)
	}
	return domain.Transaction{
		TransactionID: id,
		UserID:        userID,
		Type:          rec[2],
		Amount:        amount,
		Description:   rec[4],
		Date:          date,
	}, nil
}

// AppendTransaction durably adds one transaction row. Transactions are
// immutable once appended; the log is the system's event source.
func (s *Store) AppendTransaction(t domain.Transaction) error {
	if err := s.appendRow(s.transactionsPath(), encodeTransaction(t)); err != nil {
		return fmt.Errorf("AppendTransaction: %w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// ListTransactions returns all transaction rows in log order.
func (s *Store) ListTransactions() ([]domain.Transaction, error) {
	rows, err := readRows(s.transactionsPath())
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: %w: %w", domain.ErrPersistence, err)
	}
	txs := make([]domain.Transaction, 0, len(rows))
	for i, rec := range rows {
		t, err := decodeTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("ListTransactions: row %d: %w", i+1, err)
		}
		txs = append(txs, t)
	}
	return txs, nil
}
