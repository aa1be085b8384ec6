package profile

import (
	"log/slog"

	"siteadmin/internal/profile/datatypes"
	"siteadmin/internal/profile/handler"
	"siteadmin/internal/profile/service"
)

// Registry enforces per-tenant field name uniqueness, data-type validation
// rules, and protected-name deletion rules.
type Registry = service.Registry

// Handler wires HTTP endpoints to the field registry.
type Handler = handler.Handler

// NewRegistry constructs the field registry with the stock data-type list.
func NewRegistry(fields service.Store, opts ...service.Option) *Registry {
	return service.New(fields, datatypes.Static{}, opts...)
}

// NewHandler constructs an HTTP handler for admin-facing field routes.
func NewHandler(r *Registry, logger *slog.Logger) *Handler {
	return handler.New(r, logger)
}
