// Package handler wires the profile field registry to HTTP. Handlers parse
// and map; invariants live in the service layer.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"siteadmin/internal/profile/datatypes"
	"siteadmin/internal/profile/models"
	"siteadmin/internal/profile/service"
	id "siteadmin/pkg/domain"
	dErrors "siteadmin/pkg/domain-errors"
	"siteadmin/pkg/platform/httputil"
	"siteadmin/pkg/requestcontext"
)

type Handler struct {
	registry *service.Registry
	types    datatypes.Static
	logger   *slog.Logger
}

func New(registry *service.Registry, logger *slog.Logger) *Handler {
	return &Handler{registry: registry, logger: logger}
}

// Register mounts the profile field routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/sites/{tenantID}/profile-fields", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleAdd)
		r.Route("/{fieldID}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Put("/", h.handleUpdate)
			r.Delete("/", h.handleDelete)
		})
	})
}

type fieldRequest struct {
	Name                 string `json:"name"`
	DataType             int    `json:"data_type"`
	Category             string `json:"category"`
	Length               int    `json:"length"`
	DefaultValue         string `json:"default_value"`
	ValidationExpression string `json:"validation_expression"`
	Required             bool   `json:"required"`
	ReadOnly             bool   `json:"read_only"`
	Visible              bool   `json:"visible"`
	ViewOrder            int    `json:"view_order"`
	DefaultVisibility    int    `json:"default_visibility"`
}

func (req fieldRequest) draft() service.Draft {
	return service.Draft{
		Name:                 req.Name,
		DataType:             req.DataType,
		Category:             req.Category,
		Length:               req.Length,
		DefaultValue:         req.DefaultValue,
		ValidationExpression: req.ValidationExpression,
		Required:             req.Required,
		ReadOnly:             req.ReadOnly,
		Visible:              req.Visible,
		ViewOrder:            req.ViewOrder,
		DefaultVisibility:    models.Visibility(req.DefaultVisibility),
	}
}

type listResponse struct {
	Fields    []models.View      `json:"fields"`
	DataTypes []datatypes.Option `json:"data_types"`
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
		Fields:    views,
		DataTypes: h.types.List(),
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	tenantID, fieldID, err := h.pathIDs(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	field, err := h.registry.Get(r.Context(), tenantID, fieldID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, field)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req fieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid JSON body"))
		return
	}

	field, err := h.registry.Add(r.Context(), tenantID, req.draft(), requestcontext.Privileged(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, field)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	tenantID, fieldID, err := h.pathIDs(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req fieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "invalid JSON body"))
		return
	}

	field, err := h.registry.Update(r.Context(), tenantID, fieldID, req.draft())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, field)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	tenantID, fieldID, err := h.pathIDs(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.registry.Delete(r.Context(), tenantID, fieldID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) pathIDs(r *http.Request) (id.TenantID, id.FieldID, error) {
	tenantID, err := id.ParseTenantID(chi.URLParam(r, "tenantID"))
	if err != nil {
		return id.TenantID{}, id.FieldID{}, err
	}
	fieldID, err := id.ParseFieldID(chi.URLParam(r, "fieldID"))
	if err != nil {
		return id.TenantID{}, id.FieldID{}, err
	}
	return tenantID, fieldID, nil
}
