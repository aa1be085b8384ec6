package settings

import (
	"log/slog"

	"siteadmin/internal/settings/handler"
	"siteadmin/internal/settings/service"
)

// Service exposes typed accessors over the per-tenant settings bag.
type Service = service.Service

// Handler wires HTTP endpoints to the settings service.
type Handler = handler.Handler

// NewService constructs the settings service.
func NewService(store service.Store, opts ...service.Option) *Service {
	return service.New(store, opts...)
}

// NewHandler constructs an HTTP handler for admin-facing settings routes.
func NewHandler(s *Service, logger *slog.Logger) *Handler {
	return handler.New(s, logger)
}
