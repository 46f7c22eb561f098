package utils

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	BcryptCost        = 12
	MinPasswordLength = 8
	passwordSymbols   = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the bcrypt hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CheckPasswordStrength returns every policy rule the password breaks.
// An empty result means the password is strong.
func CheckPasswordStrength(password string) []string {
	var problems []string

	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, "Password must be at least 8 characters long")
	}
	if !strings.ContainsFunc(password, unicode.IsUpper) {
		problems = append(problems, "Password must contain at least one uppercase letter")
	}
	if !strings.ContainsFunc(password, unicode.IsLower) {
		problems = append(problems, "Password must contain at least one lowercase letter")
	}
	if !strings.ContainsFunc(password, unicode.IsDigit) {
		problems = append(problems, "Password must contain at least one digit")
	}
	if !strings.ContainsAny(password, passwordSymbols) {
		problems = append(problems, "Password must contain at least one special character")
	}

	return problems
}

// IsPasswordStrong is CheckPasswordStrength reduced to a bool.
func IsPasswordStrong(password string) bool {
	return len(CheckPasswordStrength(password)) == 0
}
