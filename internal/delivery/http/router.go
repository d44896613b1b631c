package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"campusevents/internal/delivery/http/controllers"
	"campusevents/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes.
// Authentication is optional on read routes; the actor middleware resolves
// whoever is calling and the services scope visibility from there.
func NewRouter(
	eventController *controllers.EventController,
	orgController *controllers.OrganizationController,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("POST /events", middleware.RequireAuth(eventController.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("PUT /events/{eventID}", middleware.RequireAuth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", middleware.RequireAuth(eventController.DeleteEvent))
	mux.HandleFunc("POST /events/{eventID}/approve", middleware.RequireAuth(eventController.ApproveEvent))
	mux.HandleFunc("POST /events/{eventID}/reject", middleware.RequireAuth(eventController.RejectEvent))
	mux.HandleFunc("POST /events/{eventID}/publish", middleware.RequireAuth(eventController.PublishEvent))
	mux.HandleFunc("POST /events/{eventID}/unpublish", middleware.RequireAuth(eventController.UnpublishEvent))
	mux.HandleFunc("POST /events/{eventID}/cancel", middleware.RequireAuth(eventController.CancelEvent))

	// RSVPs
	mux.HandleFunc("POST /events/{eventID}/rsvp", middleware.RequireAuth(eventController.RSVP))
	mux.HandleFunc("DELETE /events/{eventID}/cancel_rsvp", middleware.RequireAuth(eventController.CancelRSVP))
	mux.HandleFunc("GET /rsvps/me", middleware.RequireAuth(eventController.ListMyRSVPs))

	// Categories
	mux.HandleFunc("GET /categories", eventController.ListCategories)

	// Organizations
	mux.HandleFunc("GET /organizations", orgController.ListOrganizations)
	mux.HandleFunc("POST /organizations", middleware.RequireAuth(orgController.RegisterOrganization))
	mux.HandleFunc("GET /organizations/{slug}", orgController.GetOrganization)
	mux.HandleFunc("POST /organizations/{slug}/members", middleware.RequireAuth(orgController.SetMemberRole))
	mux.HandleFunc("DELETE /organizations/{slug}/members/{username}", middleware.RequireAuth(orgController.RemoveMember))
	mux.HandleFunc("GET /organizations/{slug}/events", orgController.ListOrganizationEvents)

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("POST /auth/logout", authController.Logout)
	mux.HandleFunc("GET /auth/session", authController.Session)
	mux.HandleFunc("GET /csrf", authController.CSRFToken)

	// Profiles
	mux.HandleFunc("GET /profiles/{username}", profileController.GetProfile)
	mux.HandleFunc("PUT /profiles/{username}", middleware.RequireAuth(profileController.UpdateProfile))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
