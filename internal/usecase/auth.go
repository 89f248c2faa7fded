package usecase

import (
	"context"

	"github.com/GoArmGo/PortfolioApp/internal/domain"
)

// AuthUseCase определяет интерфейс бизнес-логики регистрации и входа.
type AuthUseCase interface {
	// Register создает пользователя и возвращает его вместе со свежим
	// сессионным токеном. Возвращает ErrEmailTaken при занятом email.
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)

	// Login проверяет учетные данные. Неизвестный email и неверный пароль
	// неразличимы: оба дают ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)

	// ForgotPassword запускает процедуру сброса. Для несуществующего email
	// молча завершается успешно, чтобы не раскрывать существование аккаунта.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword проверяет токен сброса и перезаписывает пароль.
	// Каждый токен принимается не более одного раза.
	ResetPassword(ctx context.Context, token, password string) error

	// PublicToken выпускает общий read-only токен портфолио.
	PublicToken(ctx context.Context) (string, error)
}
