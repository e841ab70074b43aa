// Package report builds and renders transaction statements and the ASCII
// analytics charts. It works on plain transaction slices and writers; it
// never touches the store.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/akxxtz/lesger2/internal/domain"
)

// Line is one statement row: the transaction plus the running balance after
// it. Exactly one of Debit/Credit is set.
type Line struct {
	Date        time.Time
	Description string
	Debit       string
	Credit      string
	Balance     string
}

// BuildStatement produces statement lines in ascending date order (ties keep
// insertion order) with a running balance from zero, debits adding and
// credits subtracting.
//
// The running balance is reconstructed from gross transaction amounts and
// deliberately does not re-apply savings diversions, so the final line can
// differ from the live account balance once diversions have occurred.
func BuildStatement(txs []domain.Transaction) []Line {
	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	lines := make([]Line, 0, len(sorted))
	running := domain.Zero()
	for _, t := range sorted {
		line := Line{Date: t.Date, Description: t.Description}
		if t.Type == domain.TxTypeDebit {
			running = running.Add(t.Amount)
			line.Debit = domain.FormatMoney(t.Amount)
		} else {
			running = running.Sub(t.Amount)
			line.Credit = domain.FormatMoney(t.Amount)
		}
		line.Balance = domain.FormatMoney(running)
		lines = append(lines, line)
	}
	return lines
}

const (
	rowFormat = "| %-10s | %-15s | %12s | %12s | %12s |\n"
	separator = "+------------+-----------------+--------------+--------------+--------------+\n"
)

// RenderStatement writes the statement as a bordered text table.
func RenderStatement(w io.Writer, lines []Line) {
	fmt.Fprint(w, separator)
	fmt.Fprintf(w, rowFormat, "Date", "Description", "Debit", "Credit", "Balance")
	fmt.Fprint(w, separator)
	for _, l := range lines {
		fmt.Fprintf(w, rowFormat, l.Date.Format(domain.DateLayout), l.Description, l.Debit, l.Credit, l.Balance)
	}
	fmt.Fprint(w, separator)
}

// ExportStatement writes the statement as a CSV file named after the user,
// under dir, and returns the written path.
func ExportStatement(dir string, userID int, lines []Line) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ExportStatement: %w: %w", domain.ErrPersistence, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("history_%d.csv", userID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("ExportStatement: %w: %w", domain.ErrPersistence, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"Date", "Description", "Debit", "Credit", "Balance"}); err != nil {
		return "", fmt.Errorf("ExportStatement: %w: %w", domain.ErrPersistence, err)
	}
	for _, l := range lines {
		rec := []string{l.Date.Format(domain.DateLayout), l.Description, l.Debit, l.Credit, l.Balance}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("ExportStatement: %w: %w", domain.ErrPersistence, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("ExportStatement: %w: %w", domain.ErrPersistence, err)
	}
	return path, nil
}

// FilterByDateRange keeps transactions dated within [from, to] inclusive.
func FilterByDateRange(txs []domain.Transaction, from, to time.Time) []domain.Transaction {
	var out []domain.Transaction
	for _, t := range txs {
		if !t.Date.Before(from) && !t.Date.After(to) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByType keeps transactions of the given type.
func FilterByType(txs []domain.Transaction, txType string) []domain.Transaction {
	var out []domain.Transaction
	for _, t := range txs {
		if t.Type == txType {
			out = append(out, t)
		}
	}
	return out
}

// FilterByAmountRange keeps transactions with amounts within [min, max]
// inclusive.
func FilterByAmountRange(txs []domain.Transaction, min, max decimal.Decimal) []domain.Transaction {
	var out []domain.Transaction
	for _, t := range txs {
		if t.Amount.GreaterThanOrEqual(min) && t.Amount.LessThanOrEqual(max) {
			out = append(out, t)
		}
	}
	return out
}

// SortByDate returns a copy sorted by date, newest first when desc.
func SortByDate(txs []domain.Transaction, desc bool) []domain.Transaction {
	out := make([]domain.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// SortByAmount returns a copy sorted by amount, largest first when desc.
func SortByAmount(txs []domain.Transaction, desc bool) []domain.Transaction {
	out := make([]domain.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		if desc {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Amount.LessThan(out[j].Amount)
	})
	return out
}
