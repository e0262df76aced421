package models

import (
	"errors"
	"time"
)

var ErrAccountDeactivated = errors.New("account is deactivated")

// ShippingAddress is embedded in User (saved default) and Order (frozen
// copy taken at checkout). It has no lifecycle of its own.
type ShippingAddress struct {
	FullName string `bson:"full_name" json:"fullName"`
	Address  string `bson:"address" json:"address"`
	City     string `bson:"city" json:"city"`
	State    string `bson:"state" json:"state"`
	ZipCode  string `bson:"zipcode" json:"zipCode"`
	Country  string `bson:"country" json:"country"`
	Phone    string `bson:"phone" json:"phone"`
}

// User represents a user in the system. The _id is a string: the
// federated-identity id for Google sign-ups, an internally generated
// uuid otherwise.
type User struct {
	ID                string           `bson:"_id,omitempty" json:"id,omitempty"`
	Name              string           `bson:"name" json:"name"`
	Email             string           `bson:"email,omitempty" json:"email,omitempty"`
	Mobile            string           `bson:"mobile,omitempty" json:"mobile,omitempty"`
	Password          string           `bson:"password,omitempty" json:"-"`
	GoogleID          string           `bson:"google_id,omitempty" json:"-"`
	Role              string           `bson:"role" json:"role"` // "user" or "admin"
	Address           *ShippingAddress `bson:"address,omitempty" json:"address,omitempty"`
	IsActive          bool             `bson:"is_active" json:"is_active"`
	IsVerified        bool             `bson:"is_verified" json:"is_verified"`
	VerificationToken string           `bson:"verification_token,omitempty" json:"-"`
	OTP               string           `bson:"otp,omitempty" json:"-"`
	OTPExpiry         time.Time        `bson:"otp_expiry,omitempty" json:"-"`
	CreatedAt         time.Time        `bson:"created_at" json:"created_at"`
}

// IsRegistered reports whether the record is a full account rather than a
// stub provisioned when an OTP was requested for an unknown mobile number.
func (u *User) IsRegistered() bool {
	return u.Name != ""
}

// CanSignIn rejects deactivated accounts. Every credential path (password,
// OTP, Google) runs this before issuing a session, matching the session
// contract that an inactive user equals no session.
func (u *User) CanSignIn() error {
	if !u.IsActive {
		return ErrAccountDeactivated
	}
	return nil
}
