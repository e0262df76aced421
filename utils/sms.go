package utils

import (
	"log/slog"
)

// SMSSender delivers OTP codes out-of-band. The SMS gateway is deployment
// specific; LogSMSSender stands in where none is configured.
type SMSSender interface {
	SendOTP(mobile, code string) error
}

// LogSMSSender writes codes to the log instead of texting them.
type LogSMSSender struct{}

func (LogSMSSender) SendOTP(mobile, code string) error {
	slog.Info("otp issued", "mobile", mobile, "code", code)
	return nil
}
