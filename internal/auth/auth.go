// Package auth provides credential hashing and the email/password format
// checks used at registration.
package auth

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/akxxtz/lesger2/internal/domain"
)

var (
	emailRe  = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
	letterRe = regexp.MustCompile(`[a-zA-Z]`)
	digitRe  = regexp.MustCompile(`\d`)
)

// MinPasswordLen is the shortest accepted password.
const MinPasswordLen = 6

// ValidateEmail checks the email format.
func ValidateEmail(email string) error {
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("ValidateEmail: bad email format: %w", domain.ErrValidation)
	}
	return nil
}

// ValidatePassword enforces the password policy: at least MinPasswordLen
// characters with both a letter and a digit.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen || !letterRe.MatchString(password) || !digitRe.MatchString(password) {
		return fmt.Errorf("ValidatePassword: password must be at least %d characters and contain both letters and numbers: %w",
			MinPasswordLen, domain.ErrValidation)
	}
	return nil
}

// HashPassword produces an opaque credential hash for storage.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("HashPassword: %w", err)
	}
	return string(h), nil
}

// VerifyPassword checks a password against a stored hash.
func VerifyPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("VerifyPassword: %w", err)
	}
	return nil
}
