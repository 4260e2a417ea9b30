// ABOUTME: Tests for local registration input validation
// ABOUTME: Mirrors the backend's username and password complexity rules

package session

import (
	"errors"
	"testing"
)

func validInput() RegisterInput {
	return RegisterInput{
		Email:           "a@b.com",
		Username:        "alice",
		Password:        "Str0ng!pass",
		ConfirmPassword: "Str0ng!pass",
	}
}

func TestRegisterInputValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*RegisterInput)
		wantField string
	}{
		{"valid", func(in *RegisterInput) {}, ""},
		{"valid with full name", func(in *RegisterInput) { in.FullName = "Alice B" }, ""},
		{"empty email", func(in *RegisterInput) { in.Email = "" }, "email"},
		{"email without at sign", func(in *RegisterInput) { in.Email = "nope" }, "email"},
		{"username too short", func(in *RegisterInput) { in.Username = "ab" }, "username"},
		{"username too long", func(in *RegisterInput) { in.Username = string(make([]byte, 51)) }, "username"},
		{"username with spaces", func(in *RegisterInput) { in.Username = "bad name" }, "username"},
		{"username with dots", func(in *RegisterInput) { in.Username = "bad.name" }, "username"},
		{"username with underscore and hyphen ok", func(in *RegisterInput) { in.Username = "ok_name-1" }, ""},
		{"password mismatch", func(in *RegisterInput) { in.ConfirmPassword = "Other!pass1" }, "confirm_password"},
		{"password too short", func(in *RegisterInput) { in.Password = "S1!a"; in.ConfirmPassword = "S1!a" }, "password"},
		{"password no uppercase", func(in *RegisterInput) { in.Password = "weak!pass1"; in.ConfirmPassword = "weak!pass1" }, "password"},
		{"password no lowercase", func(in *RegisterInput) { in.Password = "WEAK!PASS1"; in.ConfirmPassword = "WEAK!PASS1" }, "password"},
		{"password no digit", func(in *RegisterInput) { in.Password = "Weak!passX"; in.ConfirmPassword = "Weak!passX" }, "password"},
		{"password no special", func(in *RegisterInput) { in.Password = "Weakpass11"; in.ConfirmPassword = "Weakpass11" }, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := in.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if valErr.Field != tt.wantField {
				t.Errorf("field = %q, want %q", valErr.Field, tt.wantField)
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "password", Message: "too weak"}
	if got := err.Error(); got != "password: too weak" {
		t.Errorf("Error() = %q", got)
	}
}
