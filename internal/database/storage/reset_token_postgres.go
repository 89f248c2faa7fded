package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ResetTokenStorage реализует ports.ResetTokenStorage поверх sqlx.
// Хранит jti использованных токенов сброса до истечения их срока.
type ResetTokenStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewResetTokenStorage(db *sqlx.DB, logger *slog.Logger) *ResetTokenStorage {
	return &ResetTokenStorage{db: db, logger: logger}
}

// MarkUsed помечает jti использованным. ON CONFLICT DO NOTHING:
// если строка уже есть, вставка не происходит и токен считается повторным.
func (s *ResetTokenStorage) MarkUsed(ctx context.Context, jti uuid.UUID, expiresAt time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO used_reset_tokens (jti, expires_at)
        VALUES ($1, $2)
        ON CONFLICT (jti) DO NOTHING
    `, jti, expiresAt)
	if err != nil {
		s.logger.Error("failed to mark reset token as used", "jti", jti, "error", err)
		return false, fmt.Errorf("mark reset token used: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark reset token used rows affected: %w", err)
	}
	return affected == 1, nil
}

// PurgeExpired удаляет отметки по токенам, срок которых уже истек.
// Такие токены и без отметки не пройдут проверку подписи по сроку.
func (s *ResetTokenStorage) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM used_reset_tokens WHERE expires_at < now()`)
	if err != nil {
		s.logger.Error("failed to purge expired reset token marks", "error", err)
		return 0, fmt.Errorf("purge expired reset tokens: %w", err)
	}
	return res.RowsAffected()
}
