// Package http assembles the admin-facing router: platform middleware,
// operational endpoints, and the per-module handlers under /admin.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"siteadmin/internal/alias"
	"siteadmin/internal/platform/middleware"
	"siteadmin/internal/profile"
	"siteadmin/internal/settings"
)

// Deps carries everything the router needs; main owns construction.
type Deps struct {
	Logger     *slog.Logger
	AdminToken string
	HostToken  string

	Alias    *alias.Handler
	Profile  *profile.Handler
	Settings *settings.Handler

	// Health probes the process dependencies; nil entries are skipped.
	Health []func(ctx context.Context) error
}

// NewRouter builds the HTTP surface. Operational endpoints are open;
// everything under /admin requires an admin token.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestMeta)

	r.Get("/healthz", handleHealth(d.Health))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(d.AdminToken, d.HostToken, d.Logger))
		d.Alias.Register(r)
		d.Profile.Register(r)
		d.Settings.Register(r)
	})

	return r
}

func handleHealth(probes []func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, probe := range probes {
			if probe == nil {
				continue
			}
			if err := probe(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unhealthy"))
				return
			}
		}
		_, _ = w.Write([]byte("ok"))
	}
}
