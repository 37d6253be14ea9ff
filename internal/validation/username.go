package validation

import (
	"errors"
)

func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username is required")
	}

	if len(username) > 100 {
		return errors.New("username is too long (max 100 characters)")
	}

	return nil
}
