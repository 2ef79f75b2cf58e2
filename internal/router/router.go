// Package router wires the HTTP surface onto chi.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jotter-dev/jotter/internal/middleware"
	"github.com/jotter-dev/jotter/internal/middleware/metrics"
	rl "github.com/jotter-dev/jotter/internal/middleware/ratelimiter"
	"github.com/jotter-dev/jotter/internal/setup"
)

// New creates and configures the chi router with all routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := deps.Handler
	jwt := deps.Jwt

	needAuth := middleware.NeedAuth(jwt)
	adminOnly := middleware.AdminOnly(jwt)
	optionalAuth := middleware.OptionalAuth(jwt)
	refreshAuth := middleware.RefreshAuth(jwt)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			// Endpoints that send mail are limited by recipient and by IP
			// to contain mail floods and enumeration sweeps.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(rl.New(1.0/10, 3, time.Hour), middleware.IdentityByEmail))
				r.Use(middleware.RateLimit(rl.New(1, 5, time.Hour), middleware.IdentityByIP))
				r.Use(middleware.GlobalRateLimit(rl.New(100, 100, time.Hour))) // 100 global RPS
				r.Post("/register", h.Register)
				r.Post("/password-reset/request", h.PasswordResetRequest)
			})

			// Credential endpoints are limited by IP against brute force.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(rl.New(1, 5, time.Hour), middleware.IdentityByIP))
				r.Use(middleware.GlobalRateLimit(rl.New(100, 100, time.Hour))) // 100 global RPS
				r.Post("/login", h.Login)
				r.Post("/verify-email", h.VerifyEmail)
				r.Post("/password-reset/confirm", h.PasswordResetConfirm)
			})

			r.Post("/refresh", refreshAuth(h.Refresh))
			r.Post("/logout", needAuth(h.Logout))
		})

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", optionalAuth(h.ListNotes))
			r.Post("/", needAuth(h.CreateNote))
			r.Get("/{id}", optionalAuth(h.GetNote))
			r.Put("/{id}", needAuth(h.UpdateNote))
			r.Delete("/{id}", needAuth(h.DeleteNote))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/users", adminOnly(h.ListAccounts))
			r.Get("/users/{id}", adminOnly(h.GetAccount))
			r.Put("/users/{id}/role", adminOnly(h.ChangeRole))
			r.Put("/users/{id}/status", adminOnly(h.ChangeStatus))
			r.Delete("/users/{id}", adminOnly(h.DeleteAccount))
			r.Get("/audit-logs", adminOnly(h.AuditLog))
		})
	})

	// Wildcard OPTIONS so preflights never 404
	r.Options("/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
