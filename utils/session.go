package utils

import (
	"github.com/gorilla/sessions"
)

// Session cookie constants. The cookie carries only the user id and a
// logged-in flag; everything else is loaded per request.
const (
	SessionName      = "storefront_session"
	SessionUserIDKey = "user_id"
	SessionAuthKey   = "authenticated"

	sessionMaxAge = 7 * 86400 // one week
)

// NewSessionStore builds the encrypted cookie store backing all sessions.
// Secure is off only in local development.
func NewSessionStore(secret string, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(sessionMaxAge)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	return store
}
