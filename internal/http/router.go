// Package httpapi assembles the HTTP surface: middleware chain, operational
// endpoints, and the client module routes.
package httpapi

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"caoffice/internal/client/handler"
	"caoffice/internal/platform/metrics"
	"caoffice/internal/platform/middleware"
	"caoffice/pkg/platform/httputil"
)

// RouterConfig carries everything the router needs to assemble the surface.
type RouterConfig struct {
	Logger      *slog.Logger
	HTTPMetrics *metrics.HTTP
	Registry    *prometheus.Registry
	DB          *sql.DB
	Clients     *handler.Handler
}

// NewRouter builds the chi router with the standard middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Latency(cfg.HTTPMetrics))

	r.Get("/", handleInfo)
	r.Get("/health", handleHealth(cfg.DB))
	if cfg.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	}

	cfg.Clients.Register(r)
	return r
}

func handleInfo(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"service": "caoffice",
		"version": "1.0.0",
		"status":  "running",
	})
}

// handleHealth reports liveness and, when a database is wired, its
// reachability.
func handleHealth(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				status = "degraded"
				code = http.StatusServiceUnavailable
			}
		}
		httputil.WriteJSON(w, code, map[string]string{"status": status})
	}
}
