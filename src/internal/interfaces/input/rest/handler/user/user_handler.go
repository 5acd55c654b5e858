package user

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aangsquared/Events-Planner/src/internal/core"
	"github.com/aangsquared/Events-Planner/src/internal/interfaces/input/rest/middleware"
	userservice "github.com/aangsquared/Events-Planner/src/internal/usecase/user"
	errorhandling "github.com/aangsquared/Events-Planner/src/pkg/error_handling"
	pkgresponse "github.com/aangsquared/Events-Planner/src/pkg/response"
)

type UserHandler struct {
	userService userservice.Service
}

func NewUserHandler(us userservice.Service) *UserHandler {
	return &UserHandler{userService: us}
}

// Register handles POST /auth/register.
func (uh *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req core.UserRegister
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkgresponse.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := uh.userService.RegisterUser(req)
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusCreated, map[string]interface{}{"user": profile})
}

// Login handles POST /auth/login and sets the access-token cookie.
func (uh *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req core.UserLogin
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkgresponse.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := uh.userService.LoginUser(req)
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	atCookie := http.Cookie{
		Name:     "at",
		Value:    result.Token,
		Expires:  result.ExpiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		Path:     "/",
	}
	http.SetCookie(w, &atCookie)

	pkgresponse.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": result.User})
}

// Logout handles POST /auth/logout: revokes the session and clears the
// cookie.
func (uh *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := middleware.SessionID(r.Context())
	if err := uh.userService.LogoutUser(sessionID); err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	atCookie := http.Cookie{
		Name:     "at",
		Value:    "",
		Expires:  time.Now(),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		Path:     "/",
	}
	http.SetCookie(w, &atCookie)

	pkgresponse.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /auth/me.
func (uh *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		pkgresponse.WriteError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	profile, err := uh.userService.Profile(userID)
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": profile})
}
