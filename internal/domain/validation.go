package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxCategoryLength    = 50
	MaxDescriptionLength = 200
	MinUsernameLength    = 3
	MaxUsernameLength    = 50
	MinPasswordLength    = 8
	MaxPasswordLength    = 100
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateAmount validates an expense amount. Zero and negative amounts are
// rejected; there is no upper bound.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: got %s", ErrInvalidAmount, amount)
	}

	return nil
}

// ValidateCategory validates an expense category.
func ValidateCategory(category string) error {
	category = strings.TrimSpace(category)

	if category == "" {
		return ErrInvalidCategory
	}

	if len(category) > MaxCategoryLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidCategory, MaxCategoryLength)
	}

	return nil
}

// ValidateEmail validates email format.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if !emailRegex.MatchString(email) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidateUsername validates username length.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)

	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return fmt.Errorf("%w: must be %d-%d characters",
			ErrBadUsername, MinUsernameLength, MaxUsernameLength)
	}

	return nil
}

// ValidatePassword validates password strength: length bounds plus at least
// one digit and one uppercase letter.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrWeakPassword, MaxPasswordLength)
	}

	hasDigit := strings.ContainsAny(password, "0123456789")
	hasUpper := strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")

	if !hasDigit || !hasUpper {
		return fmt.Errorf("%w: must contain at least one digit and one uppercase letter", ErrWeakPassword)
	}

	return nil
}
