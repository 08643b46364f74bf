package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID               primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name             string             `json:"name" bson:"name"`
	Email            string             `json:"email" bson:"email"`
	PasswordHash     string             `json:"-" bson:"password_hash,omitempty"`
	RegistrationDate string             `json:"registration_date" bson:"registration_date"`
	CooldownUntil    string             `json:"cooldown_until,omitempty" bson:"cooldown_until,omitempty"`
	ReferredBy       string             `json:"referred_by,omitempty" bson:"referred_by,omitempty"`
	AffiliateCode    string             `json:"affiliate_code,omitempty" bson:"affiliate_code,omitempty"`
}

// RegisteredAt parses the stored registration timestamp. The zero time is
// returned when the field is missing or malformed.
func (u *User) RegisteredAt() time.Time {
	t, err := time.Parse(time.RFC3339, u.RegistrationDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// InCooldown reports whether the post-first-operation cooldown is still
// running at the given instant.
func (u *User) InCooldown(now time.Time) bool {
	if u.CooldownUntil == "" {
		return false
	}
	until, err := time.Parse(time.RFC3339, u.CooldownUntil)
	if err != nil {
		return false
	}
	return now.Before(until)
}
