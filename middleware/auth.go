package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"

	"storefront/models"
	"storefront/utils"
)

// Key type for context
type contextKey string

const userContextKey = contextKey("user")

// UserLoader resolves a session's user id to the stored user record.
type UserLoader func(ctx context.Context, id string) (*models.User, error)

// SessionAuth resolves the encrypted session cookie into the current user
// for every protected request.
type SessionAuth struct {
	Store    sessions.Store
	LoadUser UserLoader
}

// Middleware rejects requests without a valid logged-in session. A session
// pointing at a deactivated or missing user counts as no session at all.
func (sa *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := sa.Store.Get(r, utils.SessionName)
		loggedIn, _ := session.Values[utils.SessionAuthKey].(bool)
		userID, _ := session.Values[utils.SessionUserIDKey].(string)
		if !loggedIn || userID == "" {
			utils.RespondError(w, http.StatusUnauthorized, "login required")
			return
		}

		user, err := sa.LoadUser(r.Context(), userID)
		if err != nil || user == nil || !user.IsActive {
			utils.RespondError(w, http.StatusUnauthorized, "login required")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminMiddleware ensures that the resolved user has the admin role. It must
// run after Middleware.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFrom(r.Context())
		if !ok || user.Role != "admin" {
			utils.RespondError(w, http.StatusForbidden, "access denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFrom returns the user the session middleware attached to the context.
func UserFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

// WithUser attaches a user to the context the way Middleware does.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
