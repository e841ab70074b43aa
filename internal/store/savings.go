package store

import (
	"fmt"
	"strconv"

	"github.com/akxxtz/lesger2/internal/domain"
)

func encodeSavingsSetting(st domain.SavingsSetting) []string {
	return []string{
		strconv.Itoa(st.SavingsID),
		strconv.Itoa(st.UserID),
		st.Status,
		strconv.Itoa(st.Percentage),
	}
}

func decodeSavingsSetting(rec []string) (domain.SavingsSetting, error) {
	if len(rec) != 4 {
		return domain.SavingsSetting{}, fmt.Errorf("decodeSavingsSetting: want 4 fields, got %d", len(rec))
	}
	id, err := strconv.Atoi(rec[0])
	if err != nil {
		return domain.SavingsSetting{}, fmt.Errorf("decodeSavingsSetting: savings_id: %w", err)
	}
	userID, err := strconv.Atoi(rec[1])
	if err != nil {
		return domain.SavingsSetting{}, fmt.Errorf("decodeSavingsSetting: user_id: %w", err)
	}
	pct, err := strconv.Atoi(rec[3])
	if err != nil {
		return domain.SavingsSetting{}, fmt.Errorf("decodeSavingsSetting: percentage: %w", err)
	}
	return domain.SavingsSetting{
		SavingsID:  id,
		UserID:     userID,
		Status:     rec[2],
		Percentage: pct,
	}, nil
}

// AppendSavingsSetting adds one settings row. The log keeps the full history
// of changes; readers take the latest row per user.
func (s *Store) AppendSavingsSetting(st domain.SavingsSetting) error {
	if err := s.appendRow(s.savingsPath(), encodeSavingsSetting(st)); err != nil {
		return fmt.Errorf("AppendSavingsSetting: %w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// ListSavingsSettings returns all settings rows in log order.
func (s *Store) ListSavingsSettings() ([]domain.SavingsSetting, error) {
	rows, err := readRows(s.savingsPath())
	if err != nil {
		return nil, fmt.Errorf("ListSavingsSettings: %w: %w", domain.ErrPersistence, err)
	}
	settings := make([]domain.SavingsSetting, 0, len(rows))
	for i, rec := range rows {
		st, err := decodeSavingsSetting(rec)
		if err != nil {
			return nil, fmt.Errorf("ListSavingsSettings: row %d: %w", i+1, err)
		}
		settings = append(settings, st)
	}
	return settings, nil
}
