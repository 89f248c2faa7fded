package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/GoArmGo/PortfolioApp/internal/domain"
)

// UserStorage реализует интерфейс ports.UserStorage поверх sqlx.
type UserStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewUserStorage создает новый экземпляр UserStorage
func NewUserStorage(db *sqlx.DB, logger *slog.Logger) *UserStorage {
	return &UserStorage{db: db, logger: logger}
}

// GetByEmail получает пользователя по email.
// Возвращает (nil, nil), если пользователь не найден: отсутствие строки
// не является ошибкой хранилища.
func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("failed to select user by email", "error", err)
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return &user, nil
}

// GetByID получает пользователя по ID. (nil, nil), если не найден.
func (s *UserStorage) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := s.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("failed to select user by id", "user_id", id, "error", err)
		return nil, fmt.Errorf("select user by id: %w", err)
	}
	return &user, nil
}

// Insert сохраняет нового пользователя.
func (s *UserStorage) Insert(ctx context.Context, user *domain.User) error {
	start := time.Now()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.db.NamedExecContext(ctx, `
        INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
        VALUES (:id, :name, :email, :password_hash, :created_at, :updated_at)
    `, user)
	if err != nil {
		s.logger.Error("failed to insert user", "error", err)
		return fmt.Errorf("insert user: %w", err)
	}

	s.logger.Info("user created successfully",
		"user_id", user.ID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// UpdatePasswordHash перезаписывает хеш пароля пользователя.
func (s *UserStorage) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, time.Now(), id,
	)
	if err != nil {
		s.logger.Error("failed to update password hash", "user_id", id, "error", err)
		return fmt.Errorf("update password hash: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password hash rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
