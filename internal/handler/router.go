package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartroom/booking-platform/internal/middleware"
	"github.com/smartroom/booking-platform/pkg/logger"
)

// RouterConfig collects the handlers and limits served by NewRouter.
type RouterConfig struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Rooms     *RoomHandler
	Bookings  *BookingHandler
	Calendar  *CalendarHandler
	Stream    *StreamHandler
	Assistant *AssistantHandler

	JWTSecret                  string
	CORSOrigins                []string
	RateLimitRequests          int
	RateLimitWindow            time.Duration
	AssistantRateLimitRequests int
	Logger                     *logger.Logger
}

// NewRouter builds the HTTP routes.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.CORSOrigins))

	// Health endpoints (no auth required)
	r.Get("/health", cfg.Health.Health)
	r.Get("/ready", cfg.Health.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.With(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow)).
			Post("/auth/login", cfg.Auth.Login)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))
			r.Use(middleware.UserRateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

			r.Route("/rooms", func(r chi.Router) {
				r.Get("/", cfg.Rooms.List)
				r.With(middleware.RequireScope(middleware.ScopeRoomsRefresh)).Post("/refresh", cfg.Rooms.Refresh)
				r.Get("/{id}", cfg.Rooms.Get)
			})

			r.Route("/bookings", func(r chi.Router) {
				r.Use(middleware.RequireScope(middleware.ScopeBookingsRead))
				r.Get("/", cfg.Bookings.List)
				r.Get("/events", cfg.Bookings.Events)
				r.Get("/{id}", cfg.Bookings.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireScope(middleware.ScopeBookingsWrite))
					r.Post("/", cfg.Bookings.Create)
					r.Put("/{id}", cfg.Bookings.Update)
					r.Delete("/{id}", cfg.Bookings.Delete)
				})
			})

			r.Get("/calendar", cfg.Calendar.Day)
			r.Get("/calendar/now/stream", cfg.Stream.TimeIndicator)
			r.Get("/stats", cfg.Calendar.Stats)

			r.Route("/assistant", func(r chi.Router) {
				r.Use(middleware.RequireScope(middleware.ScopeAssistant))
				r.Get("/messages", cfg.Assistant.List)
				r.With(middleware.UserRateLimit(cfg.AssistantRateLimitRequests, cfg.RateLimitWindow)).
					Post("/messages", cfg.Assistant.Ask)
			})
		})
	})

	return r
}
