package models

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

// OTPTTL is how long a generated code stays valid.
const OTPTTL = 10 * time.Minute

// OTP verification errors. Expired and mismatched are distinct so the
// client can offer "resend" vs "re-enter"; ErrOTPNeedsRegistration signals
// an unknown mobile that verified its code but supplied no account details.
var (
	ErrNoOTPPending         = errors.New("no OTP pending for this number")
	ErrOTPExpired           = errors.New("OTP has expired")
	ErrOTPMismatch          = errors.New("invalid OTP")
	ErrOTPNeedsRegistration = errors.New("name and password required to register this mobile number")
)

// GenerateOTP returns a 6-digit numeric code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("generating otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// SetOTP attaches a fresh code and expiry to the user.
func (u *User) SetOTP(code string, now time.Time) {
	u.OTP = code
	u.OTPExpiry = now.Add(OTPTTL)
}

// CheckOTP verifies a submitted code against the user's pending one.
// Expiry is checked before the code so a stale code reports "expired"
// rather than "invalid". State is left unchanged on failure.
func (u *User) CheckOTP(code string, now time.Time) error {
	if u.OTP == "" {
		return ErrNoOTPPending
	}
	if now.After(u.OTPExpiry) {
		return ErrOTPExpired
	}
	if u.OTP != code {
		return ErrOTPMismatch
	}
	return nil
}

// ClearOTP wipes the pending code after successful verification.
func (u *User) ClearOTP() {
	u.OTP = ""
	u.OTPExpiry = time.Time{}
}
