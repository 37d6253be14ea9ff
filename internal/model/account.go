package model

import (
	"time"
)

const (
	AuthMethodLocal  = "local"
	AuthMethodGoogle = "google" // reserved, no login flow populates it
)

type Account struct {
	ID             string     `db:"id" bson:"_id" json:"id"`
	Email          string     `db:"email" bson:"email" json:"email"`
	Username       string     `db:"username" bson:"username" json:"username"`
	PasswordDigest string     `db:"password_digest" bson:"password" json:"-"`
	CreatedAt      time.Time  `db:"created_at" bson:"createdAt" json:"createdAt"`
	LastLoginAt    *time.Time `db:"last_login_at" bson:"lastLogin" json:"lastLogin"`
	AuthMethod     string     `db:"auth_method" bson:"authMethod" json:"authMethod"`
	ExternalID     *string    `db:"external_id" bson:"googleId" json:"googleId,omitempty"`
	PictureURL     *string    `db:"picture_url" bson:"picture" json:"picture"`
	EmailVerified  bool       `db:"email_verified" bson:"isEmailVerified" json:"isEmailVerified"`
}

// AccountSummary is the projection returned by account listings.
type AccountSummary struct {
	Email       string     `db:"email" bson:"email" json:"email"`
	Username    string     `db:"username" bson:"username" json:"username"`
	CreatedAt   time.Time  `db:"created_at" bson:"createdAt" json:"createdAt"`
	LastLoginAt *time.Time `db:"last_login_at" bson:"lastLogin" json:"lastLogin"`
}

func (a *Account) Summary() AccountSummary {
	return AccountSummary{
		Email:       a.Email,
		Username:    a.Username,
		CreatedAt:   a.CreatedAt,
		LastLoginAt: a.LastLoginAt,
	}
}

func (a *Account) Picture() string {
	if a.PictureURL == nil {
		return ""
	}
	return *a.PictureURL
}
