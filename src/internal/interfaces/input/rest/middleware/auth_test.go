package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aangsquared/Events-Planner/src/internal/core"
	"github.com/aangsquared/Events-Planner/src/pkg/utilities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionStore struct {
	sessions map[string]core.Session
}

func (f *fakeSessionStore) CreateSession(session core.Session) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) GetSession(id string) (core.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return core.Session{}, fmt.Errorf("%w: session expired or revoked", core.ErrUnauthorized)
	}
	return session, nil
}

func (f *fakeSessionStore) DeleteSession(id string) error {
	delete(f.sessions, id)
	return nil
}

func loginCookie(t *testing.T, store *fakeSessionStore, userID, role string) *http.Cookie {
	t.Helper()
	sessionID := "sess-" + userID
	token, expiresAt, err := utilities.GenerateJWT(userID, role, userID+"@example.com", userID, sessionID)
	require.NoError(t, err)
	require.NoError(t, store.CreateSession(core.Session{
		ID:        sessionID,
		UserID:    userID,
		Role:      role,
		ExpiresAt: expiresAt,
		IssuedAt:  time.Now(),
	}))
	return &http.Cookie{Name: "at", Value: token}
}

func TestAuthenticate(t *testing.T) {
	store := &fakeSessionStore{sessions: map[string]core.Session{}}
	auth := NewAuth(store)

	var gotUserID, gotRole string
	handler := auth.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserID(r.Context())
		gotRole, _ = UserRole(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// No cookie.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token.
	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "at", Value: "not-a-jwt"})
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token with a live session.
	cookie := loginCookie(t, store, "u1", core.RoleUser)
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", gotUserID)
	assert.Equal(t, core.RoleUser, gotRole)

	// Valid token whose session was revoked.
	require.NoError(t, store.DeleteSession("sess-u1"))
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStaffOnly(t *testing.T) {
	store := &fakeSessionStore{sessions: map[string]core.Session{}}
	auth := NewAuth(store)

	handler := auth.Authenticate(StaffOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(loginCookie(t, store, "plain", core.RoleUser))
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(loginCookie(t, store, "boss", core.RoleStaff))
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
