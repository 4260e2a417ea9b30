// ABOUTME: Local input validation mirroring the backend's registration rules
// ABOUTME: Rejects bad input before any request is dispatched

package session

import (
	"fmt"
	"regexp"
	"strings"
)

// Username: alphanumeric plus underscores and hyphens, matching the backend.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var passwordSpecials = `!@#$%^&*(),.?":{}|<>`

// ValidationError is a local, pre-network rejection. No request has been
// dispatched when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RegisterInput holds registration form data. ConfirmPassword must match
// Password; the mismatch is caught here, never sent to the backend.
type RegisterInput struct {
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
	FullName        string
}

// Validate applies the same rules the backend enforces so obviously bad
// input fails fast with a field-level message.
func (in RegisterInput) Validate() error {
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		return &ValidationError{Field: "email", Message: "a valid email address is required"}
	}
	if len(in.Username) < 3 || len(in.Username) > 50 {
		return &ValidationError{Field: "username", Message: "username must be between 3 and 50 characters"}
	}
	if !usernameRegex.MatchString(in.Username) {
		return &ValidationError{Field: "username", Message: "username can only contain letters, numbers, underscores and hyphens"}
	}
	if in.Password != in.ConfirmPassword {
		return &ValidationError{Field: "confirm_password", Message: "passwords do not match"}
	}
	if err := validatePassword(in.Password); err != nil {
		return err
	}
	return nil
}

// validatePassword checks the backend's complexity rules.
func validatePassword(password string) error {
	if len(password) < 8 || len(password) > 100 {
		return &ValidationError{Field: "password", Message: "password must be between 8 and 100 characters"}
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	switch {
	case !upper:
		return &ValidationError{Field: "password", Message: "password must contain at least one uppercase letter"}
	case !lower:
		return &ValidationError{Field: "password", Message: "password must contain at least one lowercase letter"}
	case !digit:
		return &ValidationError{Field: "password", Message: "password must contain at least one digit"}
	case !special:
		return &ValidationError{Field: "password", Message: "password must contain at least one special character"}
	}
	return nil
}
