package models

import (
	"errors"
	"fmt"
	"strings"
)

// Checkout validation errors. The same checks run client-side in the cart
// package (before any network call) and server-side in the order controller.
var (
	ErrNoItems      = errors.New("order has no items")
	ErrNoUser       = errors.New("user id is required")
	ErrInvalidPhone = errors.New("phone number must be exactly 10 digits")
	ErrInvalidZip   = errors.New("zip code must be exactly 6 digits")
)

// MissingFieldError identifies which required shipping field was blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// NormalizePhone strips everything but digits, so "98765-43210" and
// "98765 43210" both become "9876543210".
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks the required shipping fields, a 10-digit phone and a
// 6-digit zip. Phone and zip are checked after normalization; callers should
// store the normalized values.
func (a *ShippingAddress) Validate() error {
	required := []struct {
		name, value string
	}{
		{"fullName", a.FullName},
		{"address", a.Address},
		{"city", a.City},
		{"state", a.State},
		{"zipCode", a.ZipCode},
		{"phone", a.Phone},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &MissingFieldError{Field: f.name}
		}
	}
	if len(NormalizePhone(a.Phone)) != 10 {
		return ErrInvalidPhone
	}
	if len(NormalizePhone(a.ZipCode)) != 6 {
		return ErrInvalidZip
	}
	return nil
}

// Normalize rewrites phone and zip to their digits-only form.
func (a *ShippingAddress) Normalize() {
	a.Phone = NormalizePhone(a.Phone)
	a.ZipCode = NormalizePhone(a.ZipCode)
}

// ValidateOrder runs the full server-side acceptance check for a checkout
// submission: non-empty items, a user id and a valid shipping address.
func ValidateOrder(items []OrderItem, userID string, addr *ShippingAddress) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	if strings.TrimSpace(userID) == "" {
		return ErrNoUser
	}
	return addr.Validate()
}
