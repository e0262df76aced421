package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP(t *testing.T) {
	code, err := GenerateOTP()
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, r >= '0' && r <= '9', "non-digit %q in otp", r)
	}
}

func TestCheckOTP(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("match before expiry", func(t *testing.T) {
		u := User{}
		u.SetOTP("123456", now)
		assert.NoError(t, u.CheckOTP("123456", now.Add(9*time.Minute)))
	})

	t.Run("expired wins over mismatch", func(t *testing.T) {
		u := User{}
		u.SetOTP("123456", now)
		// even a wrong code reports expired once past the stored expiry,
		// so the client offers "resend" rather than "re-enter"
		assert.ErrorIs(t, u.CheckOTP("000000", now.Add(11*time.Minute)), ErrOTPExpired)
		assert.ErrorIs(t, u.CheckOTP("123456", now.Add(11*time.Minute)), ErrOTPExpired)
	})

	t.Run("mismatch", func(t *testing.T) {
		u := User{}
		u.SetOTP("123456", now)
		assert.ErrorIs(t, u.CheckOTP("654321", now.Add(time.Minute)), ErrOTPMismatch)
		// failed check leaves the pending code usable
		assert.NoError(t, u.CheckOTP("123456", now.Add(2*time.Minute)))
	})

	t.Run("nothing pending", func(t *testing.T) {
		u := User{}
		assert.ErrorIs(t, u.CheckOTP("123456", now), ErrNoOTPPending)
	})
}

func TestClearOTP(t *testing.T) {
	u := User{}
	u.SetOTP("123456", time.Now())
	u.ClearOTP()
	assert.Empty(t, u.OTP)
	assert.True(t, u.OTPExpiry.IsZero())
}

func TestCanSignIn(t *testing.T) {
	assert.NoError(t, (&User{ID: "u1", IsActive: true}).CanSignIn())
	assert.ErrorIs(t, (&User{ID: "u1"}).CanSignIn(), ErrAccountDeactivated)
}

func TestDeactivatedAccountFailsOTPLogin(t *testing.T) {
	// a valid, unexpired code must not let a deactivated account through
	now := time.Now()
	u := User{ID: "u1", Name: "Asha", Mobile: "9876543210", IsActive: false}
	u.SetOTP("123456", now)

	require.NoError(t, u.CheckOTP("123456", now.Add(time.Minute)))
	assert.ErrorIs(t, u.CanSignIn(), ErrAccountDeactivated)
}

func TestIsRegistered(t *testing.T) {
	assert.False(t, (&User{Mobile: "9876543210"}).IsRegistered())
	assert.True(t, (&User{Name: "Asha", Mobile: "9876543210"}).IsRegistered())
}
