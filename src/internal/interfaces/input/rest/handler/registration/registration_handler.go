package registration

import (
	"encoding/json"
	"net/http"

	"github.com/aangsquared/Events-Planner/src/internal/interfaces/input/rest/middleware"
	registrationservice "github.com/aangsquared/Events-Planner/src/internal/usecase/registration"
	errorhandling "github.com/aangsquared/Events-Planner/src/pkg/error_handling"
	pkgresponse "github.com/aangsquared/Events-Planner/src/pkg/response"

	"github.com/go-chi/chi/v5"
)

type RegistrationHandler struct {
	registrationService registrationservice.Service
}

func NewRegistrationHandler(rs registrationservice.Service) *RegistrationHandler {
	return &RegistrationHandler{registrationService: rs}
}

// Register handles POST /events/register for events from either source.
func (rh *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		pkgresponse.WriteError(w, http.StatusUnauthorized, "user not found in context")
		return
	}
	userEmail, _ := middleware.UserEmail(r.Context())
	userName, _ := middleware.UserName(r.Context())

	var req struct {
		EventID string `json:"eventId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkgresponse.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reg, err := rh.registrationService.Register(r.Context(), userID, userEmail, userName, req.EventID)
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusOK, map[string]interface{}{"registration": reg})
}

// Cancel handles DELETE /registrations/{id}.
func (rh *RegistrationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		pkgresponse.WriteError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := rh.registrationService.Cancel(userID, chi.URLParam(r, "id")); err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusOK, map[string]string{"message": "registration cancelled"})
}

// My handles GET /registrations/my: the caller's active registrations.
func (rh *RegistrationHandler) My(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		pkgresponse.WriteError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	regs, err := rh.registrationService.ListForUser(userID)
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusOK, map[string]interface{}{"registrations": regs})
}

// Activity handles GET /registrations/activity: the caller's most recent
// registrations regardless of status.
func (rh *RegistrationHandler) Activity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		pkgresponse.WriteError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	regs, err := rh.registrationService.RecentActivity(userID)
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusOK, map[string]interface{}{"registrations": regs})
}

// StaffRegistrations handles GET /staff/registrations: registrations
// grouped under the caller's own events.
func (rh *RegistrationHandler) StaffRegistrations(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.UserID(r.Context())
	if !ok {
		pkgresponse.WriteError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	grouped, err := rh.registrationService.ListForStaff(staffID)
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusOK, map[string]interface{}{"events": grouped})
}

// Stats handles GET /staff/registrations/stats.
func (rh *RegistrationHandler) Stats(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.UserID(r.Context())
	if !ok {
		pkgresponse.WriteError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	stats, err := rh.registrationService.Stats(staffID)
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusOK, stats)
}
