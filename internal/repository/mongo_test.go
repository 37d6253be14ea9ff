package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/templui/userbase/internal/model"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestProfileSet_OnlySuppliedFields(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	bio := "hello"
	phone := "555-0100"

	set := profileSet(model.ProfileUpdate{Bio: &bio, PhoneNumber: &phone}, now)

	assert.Equal(t, bson.D{
		{Key: "bio", Value: "hello"},
		{Key: "phoneNumber", Value: "555-0100"},
		{Key: "updatedAt", Value: now},
	}, set)
}

func TestDuplicateKey(t *testing.T) {
	dup := func(index string) error {
		return mongo.WriteException{WriteErrors: mongo.WriteErrors{{
			Code:    11000,
			Message: "E11000 duplicate key error collection: userDb.accounts index: " + index + " dup key",
		}}}
	}

	assert.ErrorIs(t, duplicateKey(dup("email_1")), ErrDuplicateEmail)
	assert.ErrorIs(t, duplicateKey(dup("username_1")), ErrDuplicateUsername)

	other := errors.New("server selection timeout")
	assert.Equal(t, other, duplicateKey(other))
}
