/*
Package handler provides the HTTP handlers and routing setup for the journal client.

This file defines the main Router. Navigation GETs and form actions sit behind the persistence
gate, so nothing is rendered or submitted before the saved session has been restored.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"journal/internal/app/session"
	"journal/internal/pkg/errs"
	"journal/internal/pkg/limiter"
	"journal/internal/pkg/logx"
	"journal/internal/pkg/resp"
)

const (
	SigninRate  = 0.5
	SigninBurst = 5
)

// NewAuthLimiter returns the IP limiter guarding the sign-in and sign-up actions.
func NewAuthLimiter() *limiter.IPRateLimiter {
	return limiter.NewIPRateLimiter(rate.Limit(SigninRate), SigninBurst)
}

// Router sets up the main HTTP routing table (chi.Router) for the client.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	allowed := newOriginPolicy(deps.Config.AllowedOrigins)

	var wsUpgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowed.permits(r, origin) {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
		Error: func(w http.ResponseWriter, r *http.Request, status int, reason error) {
			logx.Warn("WebSocket upgrade failed.", "status", status, "reason", reason.Error())
			resp.RespondError(w, r, errs.NewError(errs.ErrWebSocketUpgrade))
		},
	}

	// an origin func replaces rs/cors' "empty list allows everyone" default
	c := cors.New(cors.Options{
		AllowOriginRequestFunc: allowed.permits,
		AllowedMethods:         []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:         []string{"Accept", "Content-Type"},
		ExposedHeaders:         []string{},
		AllowCredentials:       true,
		MaxAge:                 300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		data := map[string]string{
			"status":  "ok",
			"service": "Melog",
			"session": deps.Gate.State().String(),
		}
		resp.RespondSuccess(w, r, data)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/session", HandleGetSession(deps))
	r.Get("/ws/session", HandleSessionFeed(wsUpgrader, deps))

	gated := chi.Chain(
		deps.Gate.Middleware(deps.Renderer.Placeholder()),
		session.Middleware(deps.Store),
	)

	r.Route("/actions", func(actions chi.Router) {
		actions.Use(allowed.middleware)
		actions.Use(gated...)

		actions.With(deps.AuthLimiter.Middleware).Post("/login", HandleLogin(deps))
		actions.With(deps.AuthLimiter.Middleware).Post("/signup", HandleSignup(deps))
		actions.Post("/logout", HandleLogout(deps))
		actions.Post("/experience-definitions", HandleCreateExperienceDefinition(deps))
	})

	r.With(gated...).Get("/*", HandleNavigate(deps))

	return r
}
