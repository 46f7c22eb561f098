package utils

import (
	"testing"
)

type signupForm struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Nickname *string `json:"nickname" validate:"omitempty,max=5"`
}

func TestGetValidationErrorsUsesJSONNames(t *testing.T) {
	long := "much too long"
	err := ValidateStruct(&signupForm{Username: "ab", Email: "nope", Nickname: &long})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	fields := GetValidationErrors(err)
	want := map[string]string{
		"username": "Shorter than minimum length 3.",
		"email":    "Not a valid email address.",
		"nickname": "Longer than maximum length 5.",
	}
	for field, msg := range want {
		if fields[field] != msg {
			t.Errorf("field %s = %q, want %q", field, fields[field], msg)
		}
	}
}

func TestGetValidationErrorsRequired(t *testing.T) {
	fields := GetValidationErrors(ValidateStruct(&signupForm{}))
	if fields["username"] != "Missing data for required field." {
		t.Fatalf("username = %q", fields["username"])
	}
	if fields["email"] != "Missing data for required field." {
		t.Fatalf("email = %q", fields["email"])
	}
}

func TestValidStruct(t *testing.T) {
	if err := ValidateStruct(&signupForm{Username: "alice", Email: "alice@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEmailHelpers(t *testing.T) {
	valid := []string{"alice@example.com", "a.b+c@sub.example.org"}
	invalid := []string{"", "alice", "alice@", "@example.com", "alice@example"}

	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true", email)
		}
	}
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Fatalf("NormalizeEmail = %q", got)
	}
}
