// Package api wires the HTTP transport around the core services.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/miriamsimone/upwind/internal/advisory"
	"github.com/miriamsimone/upwind/internal/conflicts"
	"github.com/miriamsimone/upwind/internal/config"
	"github.com/miriamsimone/upwind/internal/roster"
	"github.com/miriamsimone/upwind/internal/weather"
	"github.com/miriamsimone/upwind/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(store *roster.Store, weatherService *weather.Service, scanner *conflicts.Scanner, advisoryService *advisory.Service, cfg *config.Config, log *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(store, weatherService, scanner, advisoryService, log),
		middleware: NewMiddleware(log),
		config:     cfg,
		logger:     log.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		// Health check
		router.Get("/health", r.handler.GetHealth)

		// Roster routes
		router.Get("/students", r.handler.GetStudents)
		router.Get("/students/{id}", r.handler.GetStudent)
		router.Get("/students/{id}/bookings", r.handler.GetStudentBookings)

		// Conflict scan
		router.Post("/students/{id}/scan", r.handler.ScanStudent)

		// Weather data
		router.Get("/wx/current", r.handler.GetCurrentWeather)
		router.Get("/wx/daily", r.handler.GetDailyForecast)

		// Advisory routes
		router.Post("/students/{id}/advisory", r.handler.RequestAdvisory)
		router.Post("/bookings/{id}/reschedule", r.handler.RescheduleBooking)
	})

	return router
}
