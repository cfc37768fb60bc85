package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	// ValidUsernameRegex validates account usernames, letters in any
	// script plus digits and a few symbols
	ValidUsernameRegex = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

	// ValidEmailRegex is a pragmatic email shape check
	ValidEmailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const (
	// MaxEmailLength defines the maximum email length
	MaxEmailLength = 254

	// MaxUsernameLength defines the maximum username length
	MaxUsernameLength = 150

	// MaxNameLength defines the maximum first/last name length
	MaxNameLength = 150

	// MaxPasswordLength defines the maximum password length
	MaxPasswordLength = 128

	// MaxRecipeNameLength defines the maximum recipe name length
	MaxRecipeNameLength = 256
)

// ValidationError carries per-field error message lists and renders as
// the 400 response body.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty validation error
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// Add appends a message to the field's error list
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors returns true if any field collected a message
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, messages := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(messages, "; ")))
	}
	return strings.Join(parts, ", ")
}

// TooLong reports whether the value exceeds max characters.
func TooLong(value string, max int) bool {
	return utf8.RuneCountInString(value) > max
}

// ValidateUsername checks the username against length, charset and the
// reserved "me" alias used by the profile endpoint.
func ValidateUsername(username string) []string {
	var messages []string
	if username == "" {
		return []string{"Обязательное поле."}
	}
	if TooLong(username, MaxUsernameLength) {
		messages = append(messages, fmt.Sprintf("Убедитесь, что это значение содержит не более %d символов.", MaxUsernameLength))
	}
	if !ValidUsernameRegex.MatchString(username) {
		messages = append(messages, "Введите корректное имя пользователя.")
	}
	if strings.EqualFold(username, "me") {
		messages = append(messages, "Использовать имя 'me' в качестве username запрещено.")
	}
	return messages
}

// ValidateEmail checks the email shape and length.
func ValidateEmail(email string) []string {
	var messages []string
	if email == "" {
		return []string{"Обязательное поле."}
	}
	if TooLong(email, MaxEmailLength) {
		messages = append(messages, fmt.Sprintf("Убедитесь, что это значение содержит не более %d символов.", MaxEmailLength))
	}
	if !ValidEmailRegex.MatchString(email) {
		messages = append(messages, "Введите правильный адрес электронной почты.")
	}
	return messages
}
