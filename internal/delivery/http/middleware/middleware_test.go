package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dental-clinic/config"
	"dental-clinic/internal/domain/entity"
	"dental-clinic/internal/testutil"
	"dental-clinic/pkg/actor"
	"dental-clinic/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuth(t *testing.T) (*AuthMiddleware, *jwt.JWTService, *miniredis.Miniredis) {
	t.Helper()
	mr, client := testutil.NewRedis(t)
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Minute,
		RefreshExpiry: time.Hour,
	})
	return NewAuthMiddleware(jwtService, client, testutil.NewLogger()), jwtService, mr
}

// liveToken issues an access token and whitelists it.
func liveToken(t *testing.T, jwtService *jwt.JWTService, mr *miniredis.Miniredis, userID int, role string) string {
	t.Helper()
	token, tokenID, err := jwtService.GenerateAccessToken(userID, "user", role)
	require.NoError(t, err)
	require.NoError(t, mr.Set(jwt.SessionKey(jwt.AccessToken, userID, tokenID), "refresh-id"))
	return token
}

func echoUser(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserIDFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		actorID := actor.UserID(r.Context())
		require.NotNil(t, actorID)
		assert.Equal(t, id, *actorID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	auth, jwtService, mr := newTestAuth(t)
	handler := auth.Authenticate(echoUser(t))

	token := liveToken(t, jwtService, mr, 3, entity.RoleStaff)
	refresh, _, err := jwtService.GenerateRefreshToken(3, "user", entity.RoleStaff)
	require.NoError(t, err)
	revoked, _, err := jwtService.GenerateAccessToken(3, "user", entity.RoleStaff)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"bearer", "Bearer " + token, "", http.StatusOK},
		{"lowercase scheme", "bearer " + token, "", http.StatusOK},
		{"cookie", "", token, http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"malformed header", "Token " + token, "", http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", "", http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, "", http.StatusUnauthorized},
		{"not whitelisted", "Bearer " + revoked, "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/patients", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestOptionalAuthenticate(t *testing.T) {
	auth, jwtService, mr := newTestAuth(t)
	handler := auth.OptionalAuthenticate(echoUser(t))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/register", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/register", nil)
	req.Header.Set("Authorization", "Bearer broken")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/register", nil)
	req.Header.Set("Authorization", "Bearer "+liveToken(t, jwtService, mr, 1, entity.RoleAdmin))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	serve := func(h http.Handler, role string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if role != "" {
			req = req.WithContext(withClaims(req.Context(), &jwt.Claims{UserID: 1, Role: role}))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve(RequireAdmin(ok), entity.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, serve(RequireAdmin(ok), entity.RoleDoctor))
	assert.Equal(t, http.StatusUnauthorized, serve(RequireAdmin(ok), ""))
	assert.Equal(t, http.StatusOK, serve(RequireAdminOrDoctor(ok), entity.RoleDoctor))
	assert.Equal(t, http.StatusForbidden, serve(RequireAdminOrDoctor(ok), entity.RoleStaff))
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	NewCORSMiddleware("").Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))

	rec = httptest.NewRecorder()
	NewCORSMiddleware("https://clinic.example").Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://clinic.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}

func TestLoggingMiddleware_RecoversPanics(t *testing.T) {
	logging := NewLoggingMiddleware(testutil.NewLogger())
	boom := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { panic("boom") })

	rec := httptest.NewRecorder()
	logging.Handle(logging.Recover(boom)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/patients", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestStatusRecorder(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &statusRecorder{ResponseWriter: rec}

	n, err := sr.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusOK, sr.status)
	assert.Equal(t, 5, sr.size)

	sr.WriteHeader(http.StatusCreated)
	assert.Equal(t, http.StatusCreated, sr.status)
}

func TestWithClaims(t *testing.T) {
	ctx := withClaims(context.Background(), &jwt.Claims{
		UserID:   7,
		Username: "dr.rao",
		Role:     entity.RoleDoctor,
		TokenID:  "tok-1",
	})

	userID, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, 7, userID)

	role, ok := GetRoleFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, entity.RoleDoctor, role)

	tokenID, ok := GetTokenIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok-1", tokenID)

	require.NotNil(t, actor.UserID(ctx))
	assert.Equal(t, 7, *actor.UserID(ctx))

	_, ok = GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}
