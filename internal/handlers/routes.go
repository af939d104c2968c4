// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// routes.go sets up all HTTP routes and middleware chains for the admin
// API server: a rate-limited auth group, the session-guarded content
// API, and the public read endpoints.
package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"elevatecms/internal/middleware"
	"elevatecms/internal/session"
)

// loginRateLimit allows 10 login attempts per IP per minute.
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// Routes creates and returns the configured Chi router with all
// middleware and route groups wired up.
func Routes(sessionStore *session.Store, api *API, auth *Auth, public *Public, audit *Audit) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request. LoadSession runs
	// before Logger so request logs carry the acting user.
	r.Use(middleware.Recoverer)
	r.Use(middleware.LoadSession(sessionStore))
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Auth endpoints — login is rate-limited per IP.
		r.Route("/auth", func(r chi.Router) {
			limiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow)
			r.With(limiter.Middleware).Post("/login", auth.Login)
			r.Post("/logout", auth.Logout)

			// 2FA — requires auth but NOT completed verification.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/me", auth.Me)
				r.Post("/2fa/setup", auth.TwoFASetup)
				r.Post("/2fa/verify", auth.TwoFAVerify)
			})
		})

		// Content API — authenticated and 2FA-verified.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.Require2FA)

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", api.GetPosts)
				r.Post("/", api.SavePost)
				r.Get("/{slug}", api.GetPost)
				r.Delete("/{slug}", api.DeletePost)
			})

			r.Route("/servicios", func(r chi.Router) {
				r.Get("/", api.GetServicios)
				r.Post("/", api.SaveServicio)
				r.Delete("/{id}", api.DeleteServicio)
			})

			r.Route("/casos", func(r chi.Router) {
				r.Get("/", api.GetCasos)
				r.Post("/", api.SaveCaso)
				r.Delete("/{id}", api.DeleteCaso)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", api.GetAllSettings)
				r.Get("/{section}", api.GetSettings)
				r.Post("/{section}", api.SaveSettings)
			})

			r.Get("/media", api.GetMedia)
			r.Get("/stats", api.GetStats)

			// Audit log — admin only.
			r.With(middleware.RequireAdmin).Get("/audit", audit.Recent)
		})
	})

	// Public read endpoints consumed by the site.
	r.Route("/public", func(r chi.Router) {
		r.Get("/posts", public.Posts)
		r.Get("/posts/{slug}/html", public.PostHTML)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
