package routes

import (
	"net/http"

	eventhandler "github.com/aangsquared/Events-Planner/src/internal/interfaces/input/rest/handler/event"
	registrationhandler "github.com/aangsquared/Events-Planner/src/internal/interfaces/input/rest/handler/registration"
	userhandler "github.com/aangsquared/Events-Planner/src/internal/interfaces/input/rest/handler/user"
	"github.com/aangsquared/Events-Planner/src/internal/interfaces/input/rest/middleware"
	pkgresponse "github.com/aangsquared/Events-Planner/src/pkg/response"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func InitRoutes(
	auth *middleware.Auth,
	userHandler *userhandler.UserHandler,
	eventHandler *eventhandler.EventHandler,
	registrationHandler *registrationhandler.RegistrationHandler) http.Handler {

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.CORS)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			pkgresponse.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Post("/logout", userHandler.Logout)
				r.Get("/me", userHandler.Me)
			})
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.ListEvents)
			r.Get("/ticketmaster", eventHandler.TicketmasterEvents)

			r.Route("/platform", func(r chi.Router) {
				r.Get("/", eventHandler.ListPlatformEvents)
				r.Get("/{id}", eventHandler.GetPlatformEvent)

				r.Group(func(r chi.Router) {
					r.Use(auth.Authenticate)
					r.Use(middleware.StaffOnly)
					r.Post("/", eventHandler.CreateEvent)
					r.Put("/{id}", eventHandler.UpdateEvent)
					r.Delete("/{id}", eventHandler.DeleteEvent)
					r.Get("/staff", eventHandler.StaffEvents)
				})
			})

			r.Group(func(r chi.Router) {
				r.Use(auth.Authenticate)
				r.Post("/register", registrationHandler.Register)
			})

			r.Get("/{id}", eventHandler.GetEvent)
		})

		r.Route("/registrations", func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Delete("/{id}", registrationHandler.Cancel)
			r.Get("/my", registrationHandler.My)
			r.Get("/activity", registrationHandler.Activity)
		})

		r.Route("/staff", func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Use(middleware.StaffOnly)
			r.Get("/events/stats", eventHandler.EventStats)
			r.Get("/registrations", registrationHandler.StaffRegistrations)
			r.Get("/registrations/stats", registrationHandler.Stats)
		})
	})

	return router
}
