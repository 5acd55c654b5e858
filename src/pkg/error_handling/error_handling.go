package errorhandling

import (
	"errors"
	"net/http"

	"github.com/aangsquared/Events-Planner/src/internal/core"
	pkgresponse "github.com/aangsquared/Events-Planner/src/pkg/response"
	"github.com/sirupsen/logrus"
)

// HandleError maps a domain error onto an HTTP status and the standard
// error envelope. Errors outside the domain taxonomy become an opaque 500.
func HandleError(w http.ResponseWriter, err error) {
	status, known := statusFor(err)
	message := err.Error()
	if !known {
		logrus.WithError(err).Error("internal error")
		message = "internal server error"
	}
	pkgresponse.WriteError(w, status, message)
}

func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, core.ErrUnauthorized):
		return http.StatusUnauthorized, true
	case errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden, true
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, core.ErrValidation):
		return http.StatusBadRequest, true
	case errors.Is(err, core.ErrAlreadyRegistered),
		errors.Is(err, core.ErrRegistrationsExist),
		errors.Is(err, core.ErrConflict):
		return http.StatusConflict, true
	case errors.Is(err, core.ErrUpstreamUnavailable):
		return http.StatusInternalServerError, true
	default:
		return http.StatusInternalServerError, false
	}
}
