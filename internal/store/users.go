package store

import (
	"fmt"
	"strconv"

	"github.com/akxxtz/lesger2/internal/domain"
)

func encodeUser(u domain.User) []string {
	return []string{
		strconv.Itoa(u.UserID),
		u.Name,
		u.Email,
		u.PasswordHash,
	}
}

func decodeUser(rec []string) (domain.User, error) {
	if len(rec) != 4 {
		return domain.User{}, fmt.Errorf("decodeUser: want 4 fields, got %d", len(rec))
	}
	id, err := strconv.Atoi(rec[0])
	if err != nil {
		return domain.User{}, fmt.Errorf("decodeUser: user_id: %w", err)
	}
	return domain.User{
		UserID:       id,
		Name:         rec[1],
		Email:        rec[2],
		PasswordHash: rec[3],
	}, nil
}

// AppendUser durably adds one user row.
func (s *Store) AppendUser(u domain.User) error {
	if err := s.appendRow(s.usersPath(), encodeUser(u)); err != nil {
		return fmt.Errorf("AppendUser: %w: %w", domain.ErrPersistence, err)
	}
	return nil
}

// ListUsers returns all user rows in log order.
func (s *Store) ListUsers() ([]domain.User, error) {
	rows, err := readRows(s.usersPath())
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w: %w", domain.ErrPersistence, err)
	}
	users := make([]domain.User, 0, len(rows))
	for i, rec := range rows {
		u, err := decodeUser(rec)
		if err != nil {
			return nil, fmt.Errorf("ListUsers: row %d: %w", i+1, err)
		}
		users = append(users, u)
	}
	return users, nil
}
