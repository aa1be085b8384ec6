// Package handler wires the alias registry to HTTP. Handlers parse and map;
// invariants live in the service layer.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mssola/useragent"

	"siteadmin/internal/alias/models"
	"siteadmin/internal/alias/service"
	id "siteadmin/pkg/domain"
	dErrors "siteadmin/pkg/domain-errors"
	"siteadmin/pkg/platform/httputil"
)

type Handler struct {
	registry *service.Registry
	logger   *slog.Logger
}

func New(registry *service.Registry, logger *slog.Logger) *Handler {
	return &Handler{registry: registry, logger: logger}
}

// Register mounts the alias routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/sites/{tenantID}/aliases", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleAdd)
	})
	r.Route("/aliases/{aliasID}", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Put("/", h.handleUpdate)
		r.Delete("/", h.handleDelete)
		r.Post("/primary", h.handleSetPrimary)
	})
}

type aliasRequest struct {
	Host        string `json:"host"`
	BrowserType string `json:"browser_type"`
	Skin        string `json:"skin"`
	CultureCode string `json:"culture_code"`
	IsPrimary   bool   `json:"is_primary"`
}

type listResponse struct {
	Aliases      []models.View        `json:"aliases"`
	BrowserTypes []models.BrowserType `json:"browser_types"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	views, err := h.registry.List(r.Context(), tenantID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, listResponse{
		Aliases:      views,
		BrowserTypes: models.BrowserTypes(),
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	aliasID, err := id.ParseAliasID(chi.URLParam(r, "aliasID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	alias, err := h.registry.Get(r.Context(), aliasID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, alias)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req aliasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid JSON body"))
		return
	}

	alias, err := h.registry.Add(r.Context(), service.AddParams{
		TenantID:    tenantID,
		Host:        req.Host,
		BrowserType: browserTypeFor(req.BrowserType, r),
		Skin:        req.Skin,
		CultureCode: req.CultureCode,
		IsPrimary:   req.IsPrimary,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, alias)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	aliasID, err := id.ParseAliasID(chi.URLParam(r, "aliasID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req aliasRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid JSON body"))
		return
	}

	// No User-Agent default here: an omitted browser_type keeps the stored
	// classification instead of adopting the admin's own device.
	var browserType models.BrowserType
	if req.BrowserType != "" {
		browserType = models.ParseBrowserType(req.BrowserType)
	}
	alias, err := h.registry.Update(r.Context(), aliasID, service.UpdateParams{
		Host:        req.Host,
		BrowserType: browserType,
		Skin:        req.Skin,
		CultureCode: req.CultureCode,
		IsPrimary:   req.IsPrimary,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, alias)
}

func (h *Handler) handleSetPrimary(w http.ResponseWriter, r *http.Request) {
	aliasID, err := id.ParseAliasID(chi.URLParam(r, "aliasID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	alias, err := h.registry.SetPrimary(r.Context(), aliasID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, alias)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	aliasID, err := id.ParseAliasID(chi.URLParam(r, "aliasID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.registry.Delete(r.Context(), aliasID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// browserTypeFor resolves the alias browser category. An explicit value wins;
// otherwise the caller's own User-Agent is classified as a convenience
// default for admins registering an alias for the device in hand.
func browserTypeFor(requested string, r *http.Request) models.BrowserType {
	if requested != "" {
		return models.ParseBrowserType(requested)
	}
	ua := useragent.New(r.UserAgent())
	if ua != nil && ua.Mobile() {
		return models.BrowserMobile
	}
	return models.BrowserNormal
}
