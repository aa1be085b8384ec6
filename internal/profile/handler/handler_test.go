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

	"siteadmin/internal/platform/middleware"
	"siteadmin/internal/profile/datatypes"
	"siteadmin/internal/profile/models"
	"siteadmin/internal/profile/service"
	"siteadmin/internal/profile/store"
)

const (
	adminToken = "admin-token"
	hostToken  = "host-token"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := service.New(store.NewInMemory(), datatypes.Static{})
	h := New(registry, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequireAdminToken(adminToken, hostToken, logger))
	h.Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("X-Admin-Token", token)
	resp, err := http.DefaultClient.Do(req)
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

func textField(name string) map[string]any {
	return map[string]any{
		"name":      name,
		"data_type": datatypes.CodeText,
		"length":    50,
		"visible":   true,
	}
}

func TestHandler_AddAndList(t *testing.T) {
	srv := newTestServer(t)
	base := fmt.Sprintf("%s/sites/%s/profile-fields", srv.URL, uuid.NewString())

	resp := do(t, http.MethodPost, base+"/", adminToken, textField("Biography"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.FieldDefinition](t, resp)
	assert.Equal(t, "Biography", created.Name)

	resp = do(t, http.MethodGet, base+"/", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listed := decode[listResponse](t, resp)
	require.Len(t, listed.Fields, 1)
	assert.True(t, listed.Fields[0].CanDelete)
	assert.NotEmpty(t, listed.DataTypes)
}

func TestHandler_RequiredTextWithoutLengthRejected(t *testing.T) {
	srv := newTestServer(t)
	base := fmt.Sprintf("%s/sites/%s/profile-fields", srv.URL, uuid.NewString())

	field := textField("Motto")
	field["required"] = true
	field["length"] = 0

	resp := do(t, http.MethodPost, base+"/", adminToken, field)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "required_field", body["error"])
}

func TestHandler_HostTokenClearsRequired(t *testing.T) {
	srv := newTestServer(t)
	base := fmt.Sprintf("%s/sites/%s/profile-fields", srv.URL, uuid.NewString())

	field := textField("HostField")
	field["required"] = true

	resp := do(t, http.MethodPost, base+"/", hostToken, field)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.FieldDefinition](t, resp)
	assert.False(t, created.Required, "privileged creation clears the required flag")
}

func TestHandler_ProtectedDeleteForbidden(t *testing.T) {
	srv := newTestServer(t)
	base := fmt.Sprintf("%s/sites/%s/profile-fields", srv.URL, uuid.NewString())

	resp := do(t, http.MethodPost, base+"/", adminToken, textField("FirstName"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.FieldDefinition](t, resp)

	resp = do(t, http.MethodDelete, fmt.Sprintf("%s/%s/", base, created.ID), adminToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "forbidden_delete", body["error"])
}

func TestHandler_DuplicateNameConflict(t *testing.T) {
	srv := newTestServer(t)
	base := fmt.Sprintf("%s/sites/%s/profile-fields", srv.URL, uuid.NewString())

	resp := do(t, http.MethodPost, base+"/", adminToken, textField("City"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodPost, base+"/", adminToken, textField("city"))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "duplicate_name", body["error"])
}

func TestHandler_UpdateAndGet(t *testing.T) {
	srv := newTestServer(t)
	base := fmt.Sprintf("%s/sites/%s/profile-fields", srv.URL, uuid.NewString())

	resp := do(t, http.MethodPost, base+"/", adminToken, textField("Occupation"))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[models.FieldDefinition](t, resp)

	updated := textField("Occupation")
	updated["category"] = "Work"
	resp = do(t, http.MethodPut, fmt.Sprintf("%s/%s/", base, created.ID), adminToken, updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, fmt.Sprintf("%s/%s/", base, created.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[models.FieldDefinition](t, resp)
	assert.Equal(t, "Work", got.Category)
}
