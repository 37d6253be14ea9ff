package validation

import (
	"errors"
)

// ValidateEmail checks presence and length. Addresses are stored and matched
// exactly as given, so there is no format check or normalization.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}

	// RFC 5321: total max 254 with @
	if len(email) > 254 {
		return errors.New("email address is too long (max 254 characters)")
	}

	return nil
}
