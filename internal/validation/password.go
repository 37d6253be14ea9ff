package validation

import (
	"errors"
)

const MinPasswordLength = 6

// ValidatePassword enforces the signup password rule: present and at least
// MinPasswordLength bytes long.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}

	if len(password) < MinPasswordLength {
		return errors.New("password must be at least 6 characters")
	}

	return nil
}
