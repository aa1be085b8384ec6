package config

import (
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr string

	// DatabaseURL enables the Postgres stores; empty means in-memory.
	DatabaseURL string

	// RedisURL enables the settings cache; empty means no cache layer.
	RedisURL string

	// AdminToken authorizes tenant administrators.
	AdminToken string

	// HostToken authorizes the privileged platform operator.
	HostToken string

	// AppRoot is the directory under which alias-derived folders live.
	AppRoot string

	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("SITEADMIN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	adminToken := os.Getenv("SITEADMIN_ADMIN_TOKEN")
	if adminToken == "" {
		// Development default - must be overridden in production.
		adminToken = "dev-admin-token"
	}

	appRoot := os.Getenv("SITEADMIN_APP_ROOT")
	if appRoot == "" {
		appRoot = "."
	}

	return Server{
		Addr:            addr,
		DatabaseURL:     os.Getenv("SITEADMIN_DATABASE_URL"),
		RedisURL:        os.Getenv("SITEADMIN_REDIS_URL"),
		AdminToken:      adminToken,
		HostToken:       os.Getenv("SITEADMIN_HOST_TOKEN"),
		AppRoot:         appRoot,
		ShutdownTimeout: 10 * time.Second,
	}
}
