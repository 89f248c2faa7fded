package ports

import (
	"context"
	"time"

	"github.com/GoArmGo/PortfolioApp/internal/domain"
	"github.com/google/uuid"
)

// UserStorage определяет методы для взаимодействия с хранилищем пользователей.
// "Не найдено" и ошибка хранилища различаются: для отсутствующей записи
// возвращается (nil, nil), ошибка означает сбой самого хранилища.
type UserStorage interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error
}

// ProfileStorage определяет методы для взаимодействия с хранилищем профилей.
type ProfileStorage interface {
	GetByUserID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	// Upsert атомарно вставляет или обновляет строку профиля.
	// values содержит только реально переданные колонки.
	Upsert(ctx context.Context, id uuid.UUID, values map[string]interface{}) (*domain.Profile, error)
}

// ResetTokenStorage хранит отметки об использованных токенах сброса пароля.
// Отметка живет до истечения срока самого токена.
type ResetTokenStorage interface {
	// MarkUsed помечает jti использованным. Возвращает true, если отметка
	// поставлена впервые, и false, если токен уже был использован.
	MarkUsed(ctx context.Context, jti uuid.UUID, expiresAt time.Time) (bool, error)
	PurgeExpired(ctx context.Context) (int64, error)
}
