// Package handler wires the settings service to HTTP. URL-mapping routes are
// additionally gated on the privileged capability.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"siteadmin/internal/platform/middleware"
	"siteadmin/internal/settings/service"
	id "siteadmin/pkg/domain"
	dErrors "siteadmin/pkg/domain-errors"
	"siteadmin/pkg/platform/httputil"
)

type Handler struct {
	settings *service.Service
	logger   *slog.Logger
}

func New(settings *service.Service, logger *slog.Logger) *Handler {
	return &Handler{settings: settings, logger: logger}
}

// Register mounts the settings routes on the given router. Every section is
// a read/write pair except search, which is read-only here.
func (h *Handler) Register(r chi.Router) {
	r.Route("/sites/{tenantID}/settings", func(r chi.Router) {
		r.Get("/site", get(h.settings.Site))
		r.Post("/site", post(h.settings.SaveSite))

		r.Get("/default-pages", get(h.settings.DefaultPages))
		r.Post("/default-pages", post(h.settings.SaveDefaultPages))

		r.Get("/messaging", get(h.settings.Messaging))
		r.Post("/messaging", post(h.settings.SaveMessaging))

		r.Get("/profile", get(h.settings.Profile))
		r.Post("/profile", post(h.settings.SaveProfile))

		r.Get("/search", get(h.settings.Search))

		// Alias mapping mode changes how the request pipeline treats every
		// secondary alias, so only a privileged actor may touch it.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequirePrivileged(h.logger))
			r.Get("/url-mapping", get(h.settings.URLMapping))
			r.Post("/url-mapping", post(h.settings.SaveURLMapping))
		})
	})
}

// get adapts a typed section reader into a handler.
func get[T any](read func(context.Context, id.TenantID) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenantID"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		section, err := read(r.Context(), tenantID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, section)
	}
}

// post adapts a typed section writer into a handler.
func post[T any](save func(context.Context, id.TenantID, T) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenantID"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		var section T
		if err := json.NewDecoder(r.Body).Decode(&section); err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid JSON body"))
			return
		}
		if err := save(r.Context(), tenantID, section); err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
