package middleware

import (
	"context"
	"net/http"

	"github.com/aangsquared/Events-Planner/src/internal/core"
	pkgresponse "github.com/aangsquared/Events-Planner/src/pkg/response"
	"github.com/aangsquared/Events-Planner/src/pkg/utilities"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	userEmailKey contextKey = "userEmail"
	userNameKey  contextKey = "userName"
	userRoleKey  contextKey = "userRole"
	sessionIDKey contextKey = "sessionID"
)

// Auth wires the access-token cookie to the revocable session store.
type Auth struct {
	sessions core.SessionStore
}

func NewAuth(sessions core.SessionStore) *Auth {
	return &Auth{sessions: sessions}
}

// Authenticate validates the "at" cookie token and checks the session it
// was minted for is still live, so logout revokes tokens before expiry.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("at")
		if err != nil {
			pkgresponse.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := utilities.ValidateJWT(cookie.Value)
		if err != nil {
			pkgresponse.WriteError(w, http.StatusUnauthorized, "invalid authorization token")
			return
		}

		session, err := a.sessions.GetSession(claims.SessionID)
		if err != nil || session.UserID != claims.UserID {
			pkgresponse.WriteError(w, http.StatusUnauthorized, "session expired or revoked")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, userEmailKey, claims.Email)
		ctx = context.WithValue(ctx, userNameKey, claims.Name)
		ctx = context.WithValue(ctx, userRoleKey, session.Role)
		ctx = context.WithValue(ctx, sessionIDKey, claims.SessionID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StaffOnly gates a route group to roles that may manage platform events.
func StaffOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := UserRole(r.Context())
		if !ok || !core.CanManageEvents(role) {
			pkgresponse.WriteError(w, http.StatusForbidden, "staff access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func UserEmail(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(userEmailKey).(string)
	return email, ok
}

func UserName(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(userNameKey).(string)
	return name, ok
}

func UserRole(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(userRoleKey).(string)
	return role, ok
}

func SessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok
}
