package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dental-clinic/config"
	"dental-clinic/internal/infrastructure/storage"
	"dental-clinic/internal/service"
	"dental-clinic/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Port: "0", Env: "test", UploadDir: t.TempDir()},
		JWT: config.JWTConfig{
			Secret:        "test-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: time.Hour,
		},
		Cache: config.CacheConfig{SettingsTTL: time.Minute},
	}
	log := testutil.NewLogger()
	db := testutil.NewDB(t)
	_, rdb := testutil.NewRedis(t)

	files, err := storage.NewLocalStorage(cfg.App.UploadDir)
	require.NoError(t, err)

	cache := service.NewSettingsCache(rdb, cfg.Cache.SettingsTTL, log)
	return initializeServer(cfg, log, db, rdb, cache, files).Handler
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func registerAndLogin(t *testing.T, h http.Handler, username string) string {
	t.Helper()

	rec, _ := do(t, h, http.MethodPost, "/api/register", "", map[string]string{
		"username":  username,
		"password":  "secret123",
		"full_name": "Test " + username,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := do(t, h, http.MethodPost, "/api/login", "", map[string]string{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}

func TestServer_HealthAndUnknownRoute(t *testing.T) {
	h := newTestHandler(t)

	rec, _ := do(t, h, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec, _ = do(t, h, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Preflight(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/patients", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_ProtectedRoutesNeedToken(t *testing.T) {
	h := newTestHandler(t)

	rec, env := do(t, h, http.MethodGet, "/api/patients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
}

func TestServer_PatientFlow(t *testing.T) {
	h := newTestHandler(t)
	token := registerAndLogin(t, h, "admin")

	rec, env := do(t, h, http.MethodPost, "/api/patients", token, map[string]any{
		"name":         "Jane Doe",
		"age":          34,
		"sex":          "Female",
		"address":      "1 Main St",
		"phone_number": "555-0100",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID        int    `json:"id"`
		PatientID string `json:"patient_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.PatientID)

	rec, env = do(t, h, http.MethodGet, "/api/patients/"+created.PatientID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var fetched struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Jane Doe", fetched.Name)

	rec, _ = do(t, h, http.MethodPost, "/api/patients", token, map[string]any{"name": "J"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/patients/PT-missing", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_RoleGates(t *testing.T) {
	h := newTestHandler(t)
	adminToken := registerAndLogin(t, h, "admin")
	staffToken := registerAndLogin(t, h, "frontdesk")

	rec, _ := do(t, h, http.MethodGet, "/api/admin/audit-logs", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = do(t, h, http.MethodGet, "/api/admin/audit-logs", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/salary", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/api/salary", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestServer_LogoutRevokesSession(t *testing.T) {
	h := newTestHandler(t)
	token := registerAndLogin(t, h, "admin")

	rec, _ := do(t, h, http.MethodGet, "/api/user", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = do(t, h, http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, _ = do(t, h, http.MethodGet, "/api/user", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
