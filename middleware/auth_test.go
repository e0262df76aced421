package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
	"storefront/utils"
)

func testUsers() map[string]*models.User {
	return map[string]*models.User{
		"u1": {ID: "u1", Name: "Asha", Role: "user", IsActive: true},
		"u2": {ID: "u2", Name: "Dead", Role: "user", IsActive: false},
		"a1": {ID: "a1", Name: "Admin", Role: "admin", IsActive: true},
	}
}

func newAuth(users map[string]*models.User) *SessionAuth {
	return &SessionAuth{
		Store: utils.NewSessionStore("test-secret", false),
		LoadUser: func(_ context.Context, id string) (*models.User, error) {
			if u, ok := users[id]; ok {
				return u, nil
			}
			return nil, errors.New("not found")
		},
	}
}

// loginRequest returns a request carrying a valid session cookie for userID.
func loginRequest(t *testing.T, sa *SessionAuth, userID string) *http.Request {
	t.Helper()
	login := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	session, err := sa.Store.Get(login, utils.SessionName)
	require.NoError(t, err)
	session.Values[utils.SessionUserIDKey] = userID
	session.Values[utils.SessionAuthKey] = true
	require.NoError(t, session.Save(login, rec))

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestMiddlewareAttachesUser(t *testing.T) {
	sa := newAuth(testUsers())
	var got *models.User
	handler := sa.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = UserFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, loginRequest(t, sa, "u1"))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "Asha", got.Name)
}

func TestMiddlewareRejects(t *testing.T) {
	sa := newAuth(testUsers())
	handler := sa.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	t.Run("no cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/profile", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "message")
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest(t, sa, "ghost"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("inactive user treated as no session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, loginRequest(t, sa, "u2"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("admin passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req = req.WithContext(WithUser(req.Context(), &models.User{ID: "a1", Role: "admin"}))
		rec := httptest.NewRecorder()
		AdminMiddleware(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("plain user blocked", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		req = req.WithContext(WithUser(req.Context(), &models.User{ID: "u1", Role: "user"}))
		rec := httptest.NewRecorder()
		AdminMiddleware(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
