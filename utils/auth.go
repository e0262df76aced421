package utils

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// JwtKey signs email-verification tokens. Loaded from the environment in
// main.
var JwtKey = []byte("your_secret_key")

// VerificationClaims is the payload of an email-verification token.
type VerificationClaims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// GenerateVerificationToken issues a 24h token embedded in the verification
// link mailed to a new account.
func GenerateVerificationToken(email string) (string, error) {
	claims := &VerificationClaims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}

// ParseVerificationToken validates a token from a verification link and
// returns the email it was issued for.
func ParseVerificationToken(tokenStr string) (string, error) {
	claims := &VerificationClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid verification token")
	}
	return claims.Email, nil
}
