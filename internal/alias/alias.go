package alias

import (
	"log/slog"

	"siteadmin/internal/alias/handler"
	"siteadmin/internal/alias/service"
)

// Registry enforces alias validity, global uniqueness, the single-primary
// invariant, and safe deletion.
type Registry = service.Registry

// Handler wires HTTP endpoints to the alias registry.
type Handler = handler.Handler

// NewRegistry constructs the alias registry with the default host-syntax
// validator.
func NewRegistry(aliases service.Store, opts ...service.Option) *Registry {
	return service.New(aliases, service.HostSyntax{}, opts...)
}

// NewHandler constructs an HTTP handler for admin-facing alias routes.
func NewHandler(r *Registry, logger *slog.Logger) *Handler {
	return handler.New(r, logger)
}
