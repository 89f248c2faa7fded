package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/PortfolioApp/internal/domain"
	"github.com/GoArmGo/PortfolioApp/internal/usecase"
)

// fakeAuthUseCase позволяет подменять каждую операцию в отдельном тесте.
type fakeAuthUseCase struct {
	registerFn    func(ctx context.Context, name, email, password string) (*domain.User, string, error)
	loginFn       func(ctx context.Context, email, password string) (*domain.User, string, error)
	forgotFn      func(ctx context.Context, email string) error
	resetFn       func(ctx context.Context, token, password string) error
	publicTokenFn func(ctx context.Context) (string, error)
}

func (f *fakeAuthUseCase) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	return f.registerFn(ctx, name, email, password)
}

func (f *fakeAuthUseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	return f.loginFn(ctx, email, password)
}

func (f *fakeAuthUseCase) ForgotPassword(ctx context.Context, email string) error {
	return f.forgotFn(ctx, email)
}

func (f *fakeAuthUseCase) ResetPassword(ctx context.Context, token, password string) error {
	return f.resetFn(ctx, token, password)
}

func (f *fakeAuthUseCase) PublicToken(ctx context.Context) (string, error) {
	return f.publicTokenFn(ctx)
}

func postJSON(t *testing.T, h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestAuthHandler_Register(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}

	tests := []struct {
		name       string
		body       string
		registerFn func(ctx context.Context, name, email, password string) (*domain.User, string, error)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing fields",
			body:       `{"email": "alice@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Name, email and password are required.",
		},
		{
			name:       "malformed json",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Name, email and password are required.",
		},
		{
			name: "duplicate email",
			body: `{"name": "Alice", "email": "alice@example.com", "password": "secret"}`,
			registerFn: func(ctx context.Context, name, email, password string) (*domain.User, string, error) {
				return nil, "", usecase.ErrEmailTaken
			},
			wantStatus: http.StatusConflict,
			wantBody:   "User with this email already exists.",
		},
		{
			name: "success",
			body: `{"name": "Alice", "email": "alice@example.com", "password": "secret"}`,
			registerFn: func(ctx context.Context, name, email, password string) (*domain.User, string, error) {
				return user, "signed-token", nil
			},
			wantStatus: http.StatusCreated,
			wantBody:   "signed-token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&fakeAuthUseCase{registerFn: tt.registerFn}, discardLogger())
			rec := postJSON(t, h.Register, "/api/auth/register", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestAuthHandler_Register_NoPasswordHashInResponse(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com", PasswordHash: "$2a$10$hash"}
	h := NewAuthHandler(&fakeAuthUseCase{
		registerFn: func(ctx context.Context, name, email, password string) (*domain.User, string, error) {
			return user, "t", nil
		},
	}, discardLogger())

	rec := postJSON(t, h.Register, "/api/auth/register", `{"name": "Alice", "email": "alice@example.com", "password": "secret"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "$2a$10$hash")
}

func TestAuthHandler_Login_UniformRejection(t *testing.T) {
	// Usecase отдает один и тот же sentinel для неизвестного email
	// и неверного пароля; тело ответа обязано совпадать байт в байт.
	h := NewAuthHandler(&fakeAuthUseCase{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			return nil, "", usecase.ErrInvalidCredentials
		},
	}, discardLogger())

	unknown := postJSON(t, h.Login, "/api/auth/login", `{"email": "nobody@example.com", "password": "secret"}`)
	wrongPass := postJSON(t, h.Login, "/api/auth/login", `{"email": "alice@example.com", "password": "wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, unknown.Body.String(), wrongPass.Body.String())
}

func TestAuthHandler_Login_Success(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Name: "Alice", Email: "alice@example.com"}
	h := NewAuthHandler(&fakeAuthUseCase{
		loginFn: func(ctx context.Context, email, password string) (*domain.User, string, error) {
			return user, "session-token", nil
		},
	}, discardLogger())

	rec := postJSON(t, h.Login, "/api/auth/login", `{"email": "alice@example.com", "password": "secret"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "session-token")
	assert.Contains(t, rec.Body.String(), "alice@example.com")
}

func TestAuthHandler_ForgotPassword_SameResponseEitherWay(t *testing.T) {
	// Usecase молчит про несуществующий email, значит хендлер отвечает
	// одинаково в обоих случаях.
	h := NewAuthHandler(&fakeAuthUseCase{
		forgotFn: func(ctx context.Context, email string) error { return nil },
	}, discardLogger())

	known := postJSON(t, h.ForgotPassword, "/api/auth/forgot-password", `{"email": "alice@example.com"}`)
	unknown := postJSON(t, h.ForgotPassword, "/api/auth/forgot-password", `{"email": "nobody@example.com"}`)

	assert.Equal(t, http.StatusOK, known.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())
	assert.Contains(t, known.Body.String(), "If this email exists, reset instructions will be sent.")
}

func TestAuthHandler_ForgotPassword_EmailRequired(t *testing.T) {
	h := NewAuthHandler(&fakeAuthUseCase{}, discardLogger())
	rec := postJSON(t, h.ForgotPassword, "/api/auth/forgot-password", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email is required.")
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		resetFn    func(ctx context.Context, token, password string) error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing token",
			body:       `{"password": "newpass"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Token and new password are required.",
		},
		{
			name: "invalid token",
			body: `{"token": "bad", "password": "newpass"}`,
			resetFn: func(ctx context.Context, token, password string) error {
				return usecase.ErrInvalidResetToken
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Reset token is invalid or expired.",
		},
		{
			name: "user gone",
			body: `{"token": "ok", "password": "newpass"}`,
			resetFn: func(ctx context.Context, token, password string) error {
				return usecase.ErrUserNotFound
			},
			wantStatus: http.StatusNotFound,
			wantBody:   "User not found.",
		},
		{
			name: "success",
			body: `{"token": "ok", "password": "newpass"}`,
			resetFn: func(ctx context.Context, token, password string) error {
				return nil
			},
			wantStatus: http.StatusOK,
			wantBody:   "Password has been reset successfully.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&fakeAuthUseCase{resetFn: tt.resetFn}, discardLogger())
			rec := postJSON(t, h.ResetPassword, "/api/auth/reset-password", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}
