package controllers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"storefront/utils"
)

// issueSession writes the encrypted session cookie. Every successful
// credential path (password, OTP, Google) converges here.
func issueSession(store sessions.Store, w http.ResponseWriter, r *http.Request, userID string) error {
	session, _ := store.Get(r, utils.SessionName)
	session.Values[utils.SessionUserIDKey] = userID
	session.Values[utils.SessionAuthKey] = true
	return session.Save(r, w)
}

// clearSession expires the session cookie.
func clearSession(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, _ := store.Get(r, utils.SessionName)
	session.Options.MaxAge = -1
	session.Values = map[interface{}]interface{}{}
	return session.Save(r, w)
}
