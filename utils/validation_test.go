package utils

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantOK   bool
	}{
		{"simple", "cook", true},
		{"with allowed symbols", "user.name@host+x-1", true},
		{"cyrillic letters", "повар", true},
		{"empty", "", false},
		{"space", "two words", false},
		{"exclamation", "cook!", false},
		{"reserved me lowercase", "me", false},
		{"reserved me uppercase", "ME", false},
		{"too long", strings.Repeat("a", MaxUsernameLength+1), false},
		{"max length", strings.Repeat("a", MaxUsernameLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := ValidateUsername(tt.username)
			if ok := len(messages) == 0; ok != tt.wantOK {
				t.Errorf("ValidateUsername(%q) = %v, want ok=%v", tt.username, messages, tt.wantOK)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name   string
		email  string
		wantOK bool
	}{
		{"valid", "cook@example.com", true},
		{"empty", "", false},
		{"no at sign", "cook.example.com", false},
		{"no domain dot", "cook@example", false},
		{"spaces", "co ok@example.com", false},
		{"too long", strings.Repeat("a", MaxEmailLength) + "@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := ValidateEmail(tt.email)
			if ok := len(messages) == 0; ok != tt.wantOK {
				t.Errorf("ValidateEmail(%q) = %v, want ok=%v", tt.email, messages, tt.wantOK)
			}
		})
	}
}

func TestValidationErrorCollects(t *testing.T) {
	verr := NewValidationError()
	if verr.HasErrors() {
		t.Fatal("empty validation error should have no errors")
	}

	verr.Add("name", "Обязательное поле.")
	verr.Add("name", "Слишком длинное.")
	verr.Add("text", "Обязательное поле.")

	if !verr.HasErrors() {
		t.Fatal("expected errors after Add")
	}
	if got := len(verr.Fields["name"]); got != 2 {
		t.Errorf("expected 2 name messages, got %d", got)
	}
	if verr.Error() == "" {
		t.Error("Error() should render a message")
	}
}
