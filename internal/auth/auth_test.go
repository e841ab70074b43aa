package auth

import (
	"errors"
	"testing"

	"github.com/akxxtz/lesger2/internal/domain"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"user@example.com", true},
		{"first.last+tag@sub.example.com", true},
		{"  user@example.com  ", true},
		{"", false},
		{"plainaddress", false},
		{"@nouser.com", false},
		{"user@", false},
	}
	for _, tt := range tests {
		err := ValidateEmail(tt.email)
		if tt.valid && err != nil {
			t.Errorf("ValidateEmail(%q) = %v, want nil", tt.email, err)
		}
		if !tt.valid && !errors.Is(err, domain.ErrValidation) {
			t.Errorf("ValidateEmail(%q) = %v, want ErrValidation", tt.email, err)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"letters and digits", "abc123", true},
		{"long mixed", "correct horse 99", true},
		{"too short", "a1b2c", false},
		{"letters only", "abcdefg", false},
		{"digits only", "1234567", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.valid && err != nil {
				t.Errorf("err = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("hash stores the plaintext")
	}
	if err := VerifyPassword(hash, "secret1"); err != nil {
		t.Errorf("VerifyPassword with correct password: %v", err)
	}
	if err := VerifyPassword(hash, "wrong99"); err == nil {
		t.Error("VerifyPassword accepted the wrong password")
	}
}
