package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/GoArmGo/PortfolioApp/internal/domain"
)

// Роли, переносимые в токене. RoleUser — обычный интерактивный пользователь,
// RolePublic — общий read-only токен портфолио.
const (
	RoleUser   = "user"
	RolePublic = "public"
)

// TokenTypePasswordReset маркирует токен сброса пароля.
// Сессионные токены поле type не несут вовсе.
const TokenTypePasswordReset = "password-reset"

// ErrInvalidToken возвращается при любой ошибке проверки:
// битая подпись, истекший срок, некорректный формат.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims — структура утверждений: стандартные утверждения JWT
// плюс поля нашего приложения.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	Type  string `json:"type,omitempty"`
}

// TokenService выпускает и проверяет подписанные токены.
// Секрет — единственная граница доверия: владелец секрета может подделать токен.
type TokenService struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
	publicTTL  time.Duration
}

// NewTokenService создает сервис токенов с заданным секретом и сроками жизни.
func NewTokenService(secret []byte, sessionTTL, resetTTL, publicTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     secret,
		sessionTTL: sessionTTL,
		resetTTL:   resetTTL,
		publicTTL:  publicTTL,
	}
}

// IssueSessionToken выпускает сессионный токен пользователя: {sub, email, name}.
func (s *TokenService) IssueSessionToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
		Email: user.Email,
		Name:  user.Name,
	}
	return s.sign(claims)
}

// IssueResetToken выпускает токен сброса пароля: {sub, email, type, jti}.
// jti нужен, чтобы отметить токен использованным.
func (s *TokenService) IssueResetToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.resetTTL)),
		},
		Email: user.Email,
		Type:  TokenTypePasswordReset,
	}
	return s.sign(claims)
}

// IssuePublicToken выпускает общий read-only токен портфолио
// с ролью RolePublic и настроенным subject владельца.
func (s *TokenService) IssuePublicToken(subject string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.publicTTL)),
		},
		Role: RolePublic,
	}
	return s.sign(claims)
}

func (s *TokenService) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify проверяет подпись, срок и формат токена.
// Проверка поля Type остается на вызывающей стороне: только reset-flow
// обязан требовать TokenTypePasswordReset.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
