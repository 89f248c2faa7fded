package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/PortfolioApp/internal/auth"
	"github.com/GoArmGo/PortfolioApp/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTokenService() *auth.TokenService {
	return auth.NewTokenService([]byte("test-secret"), 24*time.Hour, time.Hour, 2*time.Hour)
}

func TestAuthMiddleware_VerifyToken(t *testing.T) {
	tokens := testTokenService()
	mw := NewAuthMiddleware(tokens, discardLogger())

	user := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	sessionToken, err := tokens.IssueSessionToken(user)
	require.NoError(t, err)

	var seen AuthUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CurrentUser(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "not a bearer scheme", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer not-a-jwt", wantStatus: http.StatusUnauthorized},
		{name: "valid token", authHeader: "Bearer " + sessionToken, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/profile/getMyProfile", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			mw.VerifyToken(next).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	// идентичность из валидного токена попала в контекст, роль по умолчанию user
	assert.Equal(t, user.ID.String(), seen.ID)
	assert.Equal(t, user.Email, seen.Email)
	assert.Equal(t, auth.RoleUser, seen.Role)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	expiredSvc := auth.NewTokenService([]byte("test-secret"), -time.Minute, -time.Minute, -time.Minute)
	token, err := expiredSvc.IssueSessionToken(&domain.User{ID: uuid.New()})
	require.NoError(t, err)

	mw := NewAuthMiddleware(testTokenService(), discardLogger())
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not be called for an expired token")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.VerifyToken(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RoleGates(t *testing.T) {
	tokens := testTokenService()
	mw := NewAuthMiddleware(tokens, discardLogger())

	publicToken, err := tokens.IssuePublicToken(uuid.NewString())
	require.NoError(t, err)

	userToken, err := tokens.IssueSessionToken(&domain.User{ID: uuid.New(), Email: "alice@example.com"})
	require.NoError(t, err)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		gate       func(http.Handler) http.Handler
		token      string
		wantStatus int
	}{
		{name: "requireUser blocks public token", gate: mw.RequireUser, token: publicToken, wantStatus: http.StatusForbidden},
		{name: "requireUser passes session token", gate: mw.RequireUser, token: userToken, wantStatus: http.StatusOK},
		{name: "allowPublic passes public token", gate: mw.AllowPublic, token: publicToken, wantStatus: http.StatusOK},
		{name: "allowPublic passes session token", gate: mw.AllowPublic, token: userToken, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()

			mw.VerifyToken(tt.gate(ok)).ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
