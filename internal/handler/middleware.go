package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/GoArmGo/PortfolioApp/internal/auth"
)

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Оборачиваем ResponseWriter, чтобы знать статус
			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			logger.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.statusCode,
				"duration_ms", duration.Milliseconds(),
			)
		})
	}
}

// responseWriter нужен, чтобы перехватывать код ответа
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// AuthUser — идентичность, разрешенная из bearer-токена
// и прикрепленная к контексту запроса.
type AuthUser struct {
	ID    string
	Email string
	Name  string
	Role  string
}

type contextKey string

const authUserKey contextKey = "authUser"

// CurrentUser достает идентичность из контекста запроса.
func CurrentUser(ctx context.Context) (AuthUser, bool) {
	u, ok := ctx.Value(authUserKey).(AuthUser)
	return u, ok
}

// AuthMiddleware проверяет bearer-токены и навешивает ролевые ворота.
type AuthMiddleware struct {
	tokens *auth.TokenService
	logger *slog.Logger
}

func NewAuthMiddleware(tokens *auth.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, logger: logger}
}

// VerifyToken извлекает токен из заголовка Authorization и проверяет его.
// На успехе кладет разрешенную идентичность в контекст запроса.
// Роль по умолчанию — "user", если в claims она не указана.
func (m *AuthMiddleware) VerifyToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			respondWithError(w, http.StatusUnauthorized, "Missing token", m.logger)
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims, err := m.tokens.Verify(tokenStr)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid or expired token", m.logger)
			return
		}

		role := claims.Role
		if role == "" {
			role = auth.RoleUser
		}

		user := AuthUser{
			ID:    claims.Subject,
			Email: claims.Email,
			Name:  claims.Name,
			Role:  role,
		}

		ctx := context.WithValue(r.Context(), authUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser пропускает только роль "user" — единственная точка,
// не дающая общему публичному токену писать.
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := CurrentUser(r.Context())
		if !ok || user.Role != auth.RoleUser {
			respondWithError(w, http.StatusForbidden, "Login required", m.logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AllowPublic — сквозные ворота: маршрут сознательно читаем
// любым верифицированным токеном независимо от роли.
func (m *AuthMiddleware) AllowPublic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
	})
}
