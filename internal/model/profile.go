package model

import "time"

// Profile shares its email with an Account. The link is not enforced by the
// store, and Username is a copy taken at signup.
type Profile struct {
	ID          string    `db:"id" bson:"_id" json:"-"`
	Email       string    `db:"email" bson:"email" json:"email"`
	Username    string    `db:"username" bson:"username" json:"username"`
	PictureURL  *string   `db:"picture_url" bson:"picture" json:"picture"`
	Bio         *string   `db:"bio" bson:"bio" json:"bio"`
	Location    *string   `db:"location" bson:"location" json:"location"`
	PhoneNumber *string   `db:"phone_number" bson:"phoneNumber" json:"phoneNumber"`
	CreatedAt   time.Time `db:"created_at" bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" bson:"updatedAt" json:"updatedAt"`
}

// ProfileUpdate carries a partial profile change. Nil fields are left as they are.
type ProfileUpdate struct {
	PictureURL  *string `json:"picture"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	PhoneNumber *string `json:"phoneNumber"`
}

func (u ProfileUpdate) IsEmpty() bool {
	return u.PictureURL == nil && u.Bio == nil && u.Location == nil && u.PhoneNumber == nil
}

// Apply copies the non-nil fields of u onto p.
func (u ProfileUpdate) Apply(p *Profile) {
	if u.PictureURL != nil {
		p.PictureURL = u.PictureURL
	}
	if u.Bio != nil {
		p.Bio = u.Bio
	}
	if u.Location != nil {
		p.Location = u.Location
	}
	if u.PhoneNumber != nil {
		p.PhoneNumber = u.PhoneNumber
	}
}
