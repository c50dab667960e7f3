package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/glossary/internal/auth"
	"github.com/heartmarshall/glossary/internal/config"
	"github.com/heartmarshall/glossary/internal/service/glossary"
	"github.com/heartmarshall/glossary/internal/transport/middleware"
	"github.com/heartmarshall/glossary/internal/transport/rest"
)

// Router holds the assembled HTTP handler and the background resources it owns.
type Router struct {
	Handler http.Handler
	limiter *middleware.RateLimiter
}

// Stop releases background resources.
func (r *Router) Stop() {
	if r.limiter != nil {
		r.limiter.Stop()
	}
}

// RouterDeps are the collaborators needed to build the HTTP surface.
type RouterDeps struct {
	Config  *config.Config
	Service *glossary.Service
	// DB is pinged by the readiness probes; nil when no database is in use.
	DB      interface{ Ping(context.Context) error }
	JWT     *auth.JWTManager
	Logger  *slog.Logger
	Version string
}

// NewRouter wires handlers and middleware:
//
//	GET  /                     welcome page, or result page with ?text=
//	GET  /api/translate        translate (json, text or html)
//	POST /api/translate        translate a JSON body
//	GET  /api/words            sorted word list of one side
//	GET  /api/stats            word-list metadata
//	POST /api/admin/refresh    reload from the refresh sources (admin token)
//	GET  /live, /ready, /health
func NewRouter(deps RouterDeps) *Router {
	cfg := deps.Config
	logger := deps.Logger

	glossaryHandler := rest.NewGlossaryHandler(deps.Service, logger)
	healthHandler := rest.NewHealthHandler(deps.Service, deps.DB, deps.Version)

	var limiter *middleware.RateLimiter
	var limit middleware.Middleware
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, time.Minute)
		limit = limiter.Middleware
	}

	var admin middleware.Middleware
	if deps.JWT != nil {
		admin = middleware.AdminAuth(deps.JWT)
	} else {
		admin = middleware.AdminAuth(nil)
	}

	api := middleware.Chain(limit)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	mux.Handle("GET /{$}", api(http.HandlerFunc(glossaryHandler.Index)))
	mux.Handle("GET /api/translate", api(http.HandlerFunc(glossaryHandler.Translate)))
	mux.Handle("POST /api/translate", api(http.HandlerFunc(glossaryHandler.TranslateJSON)))
	mux.Handle("GET /api/words", api(http.HandlerFunc(glossaryHandler.Words)))
	mux.Handle("GET /api/stats", api(http.HandlerFunc(glossaryHandler.Stats)))
	mux.Handle("POST /api/admin/refresh", middleware.Chain(limit, admin)(http.HandlerFunc(glossaryHandler.Refresh)))

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(mux)

	return &Router{Handler: handler, limiter: limiter}
}
