package event

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aangsquared/Events-Planner/src/internal/adaptors/ticketmaster"
	"github.com/aangsquared/Events-Planner/src/internal/core"
	"github.com/aangsquared/Events-Planner/src/internal/interfaces/input/rest/middleware"
	eventservice "github.com/aangsquared/Events-Planner/src/internal/usecase/event"
	errorhandling "github.com/aangsquared/Events-Planner/src/pkg/error_handling"
	pkgresponse "github.com/aangsquared/Events-Planner/src/pkg/response"

	"github.com/go-chi/chi/v5"
)

type EventHandler struct {
	eventService eventservice.Service
}

func NewEventHandler(es eventservice.Service) *EventHandler {
	return &EventHandler{eventService: es}
}

// ListEvents handles GET /events, the merged listing across both sources.
func (eh *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	filters := core.EventFilters{
		Search:   r.URL.Query().Get("search"),
		Category: r.URL.Query().Get("category"),
		City:     r.URL.Query().Get("city"),
		Source:   r.URL.Query().Get("source"),
	}
	page, size := pageParams(r)

	result, err := eh.eventService.ListEvents(r.Context(), filters, page, size)
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events":     result.Events,
		"pagination": result.Pagination,
		"filters":    filters,
	})
}

// GetEvent handles GET /events/{id} for either source.
func (eh *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")

	event, err := eh.eventService.GetEvent(r.Context(), eventID)
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusOK, map[string]interface{}{"event": event})
}

// TicketmasterEvents handles GET /events/ticketmaster, the standalone
// external listing. Provider failures surface as errors here.
func (eh *EventHandler) TicketmasterEvents(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	q := ticketmaster.Query{
		City:     r.URL.Query().Get("city"),
		Keyword:  r.URL.Query().Get("keyword"),
		Category: r.URL.Query().Get("category"),
		Page:     page,
		Size:     size,
	}

	result, err := eh.eventService.TicketmasterEvents(r.Context(), q)
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events":     result.Events,
		"pagination": result.Pagination,
	})
}

// ListPlatformEvents handles GET /events/platform, the public platform
// listing.
func (eh *EventHandler) ListPlatformEvents(w http.ResponseWriter, r *http.Request) {
	events, err := eh.eventService.ListPlatformEvents(core.PlatformEventFilter{PublicOnly: true})
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// GetPlatformEvent handles GET /events/platform/{id}.
func (eh *EventHandler) GetPlatformEvent(w http.ResponseWriter, r *http.Request) {
	event, err := eh.eventService.GetPlatformEvent(chi.URLParam(r, "id"))
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusOK, map[string]interface{}{"event": event})
}

// CreateEvent handles POST /events/platform (staff only).
func (eh *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		pkgresponse.WriteError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req core.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkgresponse.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := eh.eventService.CreateEvent(&req, ownerID)
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusCreated, map[string]interface{}{"event": event})
}

// UpdateEvent handles PUT /events/platform/{id} (staff owner only).
func (eh *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		pkgresponse.WriteError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req core.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkgresponse.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := eh.eventService.UpdateEvent(chi.URLParam(r, "id"), &req, ownerID)
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusOK, map[string]interface{}{"event": event})
}

// DeleteEvent handles DELETE /events/platform/{id} (staff owner only).
func (eh *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserID(r.Context())
	if !ok {
		pkgresponse.WriteError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := eh.eventService.DeleteEvent(chi.URLParam(r, "id"), ownerID); err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}

// StaffEvents handles GET /events/platform/staff: the caller's own events
// with active registration counts.
func (eh *EventHandler) StaffEvents(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.UserID(r.Context())
	if !ok {
		pkgresponse.WriteError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	events, err := eh.eventService.ListStaffEvents(staffID)
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// EventStats handles GET /staff/events/stats.
func (eh *EventHandler) EventStats(w http.ResponseWriter, r *http.Request) {
	staffID, ok := middleware.UserID(r.Context())
	if !ok {
		pkgresponse.WriteError(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	stats, err := eh.eventService.EventStats(staffID)
	if err != nil {
		errorhandling.HandleError(w, err)
		return
	}

	pkgresponse.WriteJSON(w, http.StatusOK, stats)
}

func pageParams(r *http.Request) (page, size int) {
	size = 20
	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			page = n
		}
	}
	if v := r.URL.Query().Get("size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			size = n
		}
	}
	return page, size
}
