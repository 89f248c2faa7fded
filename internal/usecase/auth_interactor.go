package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/GoArmGo/PortfolioApp/internal/auth"
	"github.com/GoArmGo/PortfolioApp/internal/core/ports"
	"github.com/GoArmGo/PortfolioApp/internal/domain"
	"github.com/GoArmGo/PortfolioApp/internal/messaging/payloads"
)

// authUseCase implements AuthUseCase
type authUseCase struct {
	users       ports.UserStorage
	usedTokens  ports.ResetTokenStorage
	tokens      *auth.TokenService
	hasher      *auth.PasswordHasher
	mailQueue   ports.ResetEmailPublisher
	frontendURL string
	publicSub   string
	production  bool
	logger      *slog.Logger
}

// NewAuthUseCase создает новый экземпляр AuthUseCase.
func NewAuthUseCase(
	users ports.UserStorage,
	usedTokens ports.ResetTokenStorage,
	tokens *auth.TokenService,
	hasher *auth.PasswordHasher,
	mailQueue ports.ResetEmailPublisher,
	frontendURL string,
	publicSub string,
	production bool,
	logger *slog.Logger,
) AuthUseCase {
	return &authUseCase{
		users:       users,
		usedTokens:  usedTokens,
		tokens:      tokens,
		hasher:      hasher,
		mailQueue:   mailQueue,
		frontendURL: frontendURL,
		publicSub:   publicSub,
		production:  production,
		logger:      logger,
	}
}

// Register проверяет уникальность email, хеширует пароль и создает пользователя.
// Ошибка хранилища и "не найдено" здесь принципиально различаются:
// первая становится 500, второе — нормальный путь регистрации.
func (uc *authUseCase) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: проверка существующего пользователя: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: хеширование пароля: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := uc.users.Insert(ctx, user); err != nil {
		return nil, "", fmt.Errorf("usecase: создание пользователя: %w", err)
	}

	token, err := uc.tokens.IssueSessionToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: выпуск сессионного токена: %w", err)
	}

	uc.logger.Info("user registered", "user_id", user.ID)
	return user, token, nil
}

// Login сверяет пароль с хешем. Любой путь отказа сворачивается
// в ErrInvalidCredentials, чтобы ответ не зависел от причины.
func (uc *authUseCase) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		uc.logger.Warn("login lookup failed", "error", err)
		return nil, "", ErrInvalidCredentials
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := uc.hasher.Compare(password, user.PasswordHash); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := uc.tokens.IssueSessionToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("usecase: выпуск сессионного токена: %w", err)
	}

	uc.logger.Info("user logged in", "user_id", user.ID)
	return user, token, nil
}

// ForgotPassword выпускает часовой токен сброса и отправляет ссылку
// через почтовую очередь (production) либо пишет ее в лог.
// Несуществующий email завершается так же успешно, как существующий.
func (uc *authUseCase) ForgotPassword(ctx context.Context, email string) error {
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("usecase: поиск пользователя для сброса: %w", err)
	}
	if user == nil {
		return nil
	}

	resetToken, err := uc.tokens.IssueResetToken(user)
	if err != nil {
		return fmt.Errorf("usecase: выпуск токена сброса: %w", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", uc.frontendURL, resetToken)

	if uc.production {
		if err := uc.mailQueue.PublishResetEmail(ctx, payloads.ResetEmailPayload{
			Email:     user.Email,
			Name:      user.Name,
			ResetLink: resetLink,
		}); err != nil {
			return fmt.Errorf("usecase: публикация почтового задания: %w", err)
		}
	} else {
		uc.logger.Info("[DEV] password reset link", "email", user.Email, "link", resetLink)
	}

	return nil
}

// ResetPassword проверяет токен, его тип и одноразовость,
// затем перезаписывает хеш пароля.
func (uc *authUseCase) ResetPassword(ctx context.Context, token, password string) error {
	claims, err := uc.tokens.Verify(token)
	if err != nil {
		return ErrInvalidResetToken
	}
	if claims.Type != auth.TokenTypePasswordReset {
		return ErrInvalidResetToken
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ErrInvalidResetToken
	}
	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return ErrInvalidResetToken
	}

	user, err := uc.users.GetByID(ctx, subject)
	if err != nil {
		return fmt.Errorf("usecase: поиск пользователя по subject токена: %w", err)
	}
	if user == nil {
		return ErrUserNotFound
	}

	// Отмечаем токен использованным до записи пароля: повтор в пределах
	// срока жизни не должен пройти.
	firstUse, err := uc.usedTokens.MarkUsed(ctx, jti, claims.ExpiresAt.Time)
	if err != nil {
		return fmt.Errorf("usecase: отметка токена сброса: %w", err)
	}
	if !firstUse {
		return ErrInvalidResetToken
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("usecase: хеширование нового пароля: %w", err)
	}

	if err := uc.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("usecase: обновление пароля: %w", err)
	}

	uc.logger.Info("password reset completed", "user_id", user.ID)
	return nil
}

// PublicToken выпускает общий токен портфолио с ролью public.
func (uc *authUseCase) PublicToken(_ context.Context) (string, error) {
	token, err := uc.tokens.IssuePublicToken(uc.publicSub)
	if err != nil {
		return "", fmt.Errorf("usecase: выпуск публичного токена: %w", err)
	}
	return token, nil
}
