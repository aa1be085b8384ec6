package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siteadmin/internal/alias"
	aliasstore "siteadmin/internal/alias/store"
	"siteadmin/internal/profile"
	profilestore "siteadmin/internal/profile/store"
	"siteadmin/internal/settings"
	settingsstore "siteadmin/internal/settings/store"
)

func newRouter(t *testing.T, health []func(ctx context.Context) error) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(Deps{
		Logger:     logger,
		AdminToken: "admin",
		HostToken:  "host",
		Alias:      alias.NewHandler(alias.NewRegistry(aliasstore.NewInMemory()), logger),
		Profile:    profile.NewHandler(profile.NewRegistry(profilestore.NewInMemory()), logger),
		Settings:   settings.NewHandler(settings.NewService(settingsstore.NewInMemory()), logger),
		Health:     health,
	})
}

func TestRouter_Healthz(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		router := newRouter(t, []func(ctx context.Context) error{
			func(context.Context) error { return nil },
			nil,
		})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("failing probe", func(t *testing.T) {
		router := newRouter(t, []func(ctx context.Context) error{
			func(context.Context) error { return errors.New("down") },
		})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestRouter_MetricsExposed(t *testing.T) {
	router := newRouter(t, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_AdminRequiresToken(t *testing.T) {
	router := newRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/sites/2e9b1f3a-0000-4000-8000-000000000001/aliases/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req.Header.Set("X-Admin-Token", "admin")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RequestIDStamped(t *testing.T) {
	router := newRouter(t, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
