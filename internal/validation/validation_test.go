package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		password string
		wantErr  string
	}{
		{"", "password is required"},
		{"abc", "at least 6 characters"},
		{"12345", "at least 6 characters"},
		{"secret", ""},
		{"secret1", ""},
	}

	for _, tt := range tests {
		err := ValidatePassword(tt.password)
		if tt.wantErr == "" {
			assert.NoError(t, err, tt.password)
			continue
		}
		assert.ErrorContains(t, err, tt.wantErr, tt.password)
	}
}

func TestValidateEmail(t *testing.T) {
	assert.EqualError(t, ValidateEmail(""), "email is required")
	assert.NoError(t, ValidateEmail("a@x.com"))
	assert.NoError(t, ValidateEmail("not-an-address"), "format is not checked on signup")
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.com"))
}

func TestValidateUsername(t *testing.T) {
	assert.EqualError(t, ValidateUsername(""), "username is required")
	assert.NoError(t, ValidateUsername("alice"))
	assert.Error(t, ValidateUsername(strings.Repeat("a", 101)))
}
