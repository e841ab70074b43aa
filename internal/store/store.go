// Package store persists ledger entities as flat CSV logs, one file per
// entity kind with a fixed header row. Rows are appended for immutable
// entities and rewritten wholesale for mutable ones.
package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/akxxtz/lesger2/internal/domain"
)

// Files names the four entity logs inside the data directory.
type Files struct {
	Users        string
	Transactions string
	Savings      string
	Loans        string
}

// DefaultFiles matches the historical on-disk layout.
func DefaultFiles() Files {
	return Files{
		Users:        "users.csv",
		Transactions: "transactions.csv",
		Savings:      "savings.csv",
		Loans:        "loans.csv",
	}
}

var headers = map[string][]string{
	"users":        {"user_id", "name", "email", "password_hash"},
	"transactions": {"transaction_id", "user_id", "type", "amount", "description", "date"},
	"savings":      {"savings_id", "user_id", "status", "percentage"},
	"loans":        {"loan_id", "user_id", "principal_amount", "interest_rate", "repayment_period", "outstanding_balance", "status", "created_at"},
}

// Store is the persistence boundary for all entity kinds. It hands out
// monotonic ids, hydrated from the existing logs at open time rather than
// inferred from row counts, so ids survive compaction.
type Store struct {
	mu    sync.Mutex
	dir   string
	files Files

	nextUser        int
	nextTransaction int
	nextSavings     int
	nextLoan        int
}

// Open prepares the data directory, creating any missing log file with its
// header row, and hydrates the id counters from the rows already present.
func Open(dir string, files Files) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("Open: creating data dir: %w: %w", domain.ErrPersistence, err)
	}
	s := &Store{dir: dir, files: files}
	for kind, path := range map[string]string{
		"users":        s.usersPath(),
		"transactions": s.transactionsPath(),
		"savings":      s.savingsPath(),
		"loans":        s.loansPath(),
	} {
		if err := ensureLog(path, headers[kind]); err != nil {
			return nil, fmt.Errorf("Open: bootstrapping %s log: %w: %w", kind, domain.ErrPersistence, err)
		}
	}
	if err := s.hydrateCounters(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) usersPath() string        { return filepath.Join(s.dir, s.files.Users) }
func (s *Store) transactionsPath() string { return filepath.Join(s.dir, s.files.Transactions) }
func (s *Store) savingsPath() string      { return filepath.Join(s.dir, s.files.Savings) }
func (s *Store) loansPath() string        { return filepath.Join(s.dir, s.files.Loans) }

func (s *Store) hydrateCounters() error {
	users, err := s.ListUsers()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.UserID >= s.nextUser {
			s.nextUser = u.UserID + 1
		}
	}
	txs, err := s.ListTransactions()
	if err != nil {
		return err
	}
	for _, t := range txs {
		if t.TransactionID >= s.nextTransaction {
			s.nextTransaction = t.TransactionID + 1
		}
	}
	settings, err := s.ListSavingsSettings()
	if err != nil {
		return err
	}
	for _, st := range settings {
		if st.SavingsID >= s.nextSavings {
			s.nextSavings = st.SavingsID + 1
		}
	}
	loans, err := s.ListLoans()
	if err != nil {
		return err
	}
	for _, l := range loans {
		if l.LoanID >= s.nextLoan {
			s.nextLoan = l.LoanID + 1
		}
	}
	if s.nextUser == 0 {
		s.nextUser = 1
	}
	if s.nextTransaction == 0 {
		s.nextTransaction = 1
	}
	if s.nextSavings == 0 {
		s.nextSavings = 1
	}
	if s.nextLoan == 0 {
		s.nextLoan = 1
	}
	return nil
}

// NextUserID issues the next user id.
func (s *Store) NextUserID() int { return s.next(&s.nextUser) }

// NextTransactionID issues the next transaction id.
func (s *Store) NextTransactionID() int { return s.next(&s.nextTransaction) }

// NextSavingsID issues the next savings-setting id.
func (s *Store) NextSavingsID() int { return s.next(&s.nextSavings) }

// NextLoanID issues the next loan id.
func (s *Store) NextLoanID() int { return s.next(&s.nextLoan) }

func (s *Store) next(counter *int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := *counter
	*counter++
	return id
}

func ensureLog(path string, header []string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// readRows returns all data rows of a log, header excluded, in file order.
func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) <= 1 {
		return nil, nil
	}
	return records[1:], nil
}

// appendRow durably adds one row to the end of a log. The write is flushed
// and synced before success is reported so a failure never leaves the caller
// believing a row exists.
func (s *Store) appendRow(path string, record []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(record); err != nil {
		f.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// rewriteAll replaces the entire contents of a log. The new contents are
// written to a temp file in the same directory and renamed over the log, so a
// crash mid-rewrite leaves the previous rows intact.
func (s *Store) rewriteAll(path string, header []string, records [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := w.WriteAll(records); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
