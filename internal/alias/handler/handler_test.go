package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"siteadmin/internal/alias/models"
	"siteadmin/internal/alias/service"
	"siteadmin/internal/alias/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	registry := service.New(store.NewInMemory(), service.HostSyntax{})
	h := New(registry, slog.New(slog.NewTextHandler(io.Discard, nil)))

	r := chi.NewRouter()
	h.Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestHandler_AddListDelete(t *testing.T) {
	srv := newTestServer(t)
	tenantID := uuid.NewString()
	base := fmt.Sprintf("%s/sites/%s/aliases", srv.URL, tenantID)

	resp := postJSON(t, base, map[string]any{"host": "https://Api.Example.com", "is_primary": true})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.Alias](t, resp)
	assert.Equal(t, "Api.Example.com", created.Host)
	assert.True(t, created.IsPrimary)

	resp = postJSON(t, base, map[string]any{"host": "beta.example.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	secondary := decode[models.Alias](t, resp)

	listResp, err := http.Get(base + "/")
	require.NoError(t, err)
	defer listResp.Body.Close()
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	listed := decode[listResponse](t, listResp)
	assert.Len(t, listed.Aliases, 2)
	assert.ElementsMatch(t, []models.BrowserType{models.BrowserNormal, models.BrowserMobile}, listed.BrowserTypes)

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/aliases/%s/", srv.URL, secondary.ID), nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	assert.Equal(t, http.StatusOK, delResp.StatusCode)
}

func TestHandler_DeletePrimaryForbidden(t *testing.T) {
	srv := newTestServer(t)
	base := fmt.Sprintf("%s/sites/%s/aliases", srv.URL, uuid.NewString())

	resp := postJSON(t, base, map[string]any{"host": "primary.example.com", "is_primary": true})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.Alias](t, resp)

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/aliases/%s/", srv.URL, created.ID), nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()

	assert.Equal(t, http.StatusForbidden, delResp.StatusCode)
	body := decode[map[string]string](t, delResp)
	assert.Equal(t, "forbidden_delete", body["error"])
}

func TestHandler_DuplicateMapsToConflict(t *testing.T) {
	srv := newTestServer(t)
	base := fmt.Sprintf("%s/sites/%s/aliases", srv.URL, uuid.NewString())
	otherBase := fmt.Sprintf("%s/sites/%s/aliases", srv.URL, uuid.NewString())

	resp := postJSON(t, base, map[string]any{"host": "conflict.example.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, otherBase, map[string]any{"host": "http://CONFLICT.example.com"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "duplicate_alias", body["error"])
}

func TestHandler_SetPrimary(t *testing.T) {
	srv := newTestServer(t)
	base := fmt.Sprintf("%s/sites/%s/aliases", srv.URL, uuid.NewString())

	resp := postJSON(t, base, map[string]any{"host": "first.example.com", "is_primary": true})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := decode[models.Alias](t, resp)

	resp = postJSON(t, base, map[string]any{"host": "second.example.com"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	second := decode[models.Alias](t, resp)

	resp = postJSON(t, fmt.Sprintf("%s/aliases/%s/primary", srv.URL, second.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	promoted := decode[models.Alias](t, resp)
	assert.True(t, promoted.IsPrimary)

	getResp, err := http.Get(fmt.Sprintf("%s/aliases/%s/", srv.URL, first.ID))
	require.NoError(t, err)
	defer getResp.Body.Close()
	demoted := decode[models.Alias](t, getResp)
	assert.False(t, demoted.IsPrimary)
}

func TestHandler_BadTenantID(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/sites/not-a-uuid/aliases/")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_UpdateKeepsStoredBrowserType(t *testing.T) {
	srv := newTestServer(t)
	base := fmt.Sprintf("%s/sites/%s/aliases", srv.URL, uuid.NewString())

	resp := postJSON(t, base, map[string]any{"host": "tablet.example.com", "browser_type": "Mobile"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.Alias](t, resp)
	require.Equal(t, models.BrowserMobile, created.BrowserType)

	buf, err := json.Marshal(map[string]any{"host": "tablet.example.com", "skin": "compact"})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/aliases/%s/", srv.URL, created.ID), bytes.NewReader(buf))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[models.Alias](t, resp)
	assert.Equal(t, models.BrowserMobile, updated.BrowserType, "omitted browser_type must not be reclassified from the caller's device")
	assert.Equal(t, "compact", updated.Skin)
}

func TestHandler_MobileUserAgentDefault(t *testing.T) {
	srv := newTestServer(t)
	base := fmt.Sprintf("%s/sites/%s/aliases", srv.URL, uuid.NewString())

	buf, err := json.Marshal(map[string]any{"host": "m.example.com"})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, base+"/", bytes.NewReader(buf))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.Alias](t, resp)
	assert.Equal(t, models.BrowserMobile, created.BrowserType)
}
