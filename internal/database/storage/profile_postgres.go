package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/GoArmGo/PortfolioApp/internal/domain"
)

// ProfileStorage реализует интерфейс ports.ProfileStorage с использованием GORM.
type ProfileStorage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewProfileStorage(db *gorm.DB, logger *slog.Logger) *ProfileStorage {
	return &ProfileStorage{db: db, logger: logger}
}

// GetByUserID получает профиль по ID владельца.
// Возвращает (nil, nil), если строки ещё нет: профиль создается лениво.
func (s *ProfileStorage) GetByUserID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	result := s.db.WithContext(ctx).First(&profile, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при получении профиля из БД: %w", result.Error)
	}
	return &profile, nil
}

// Upsert атомарно вставляет или обновляет строку профиля одним
// INSERT ... ON CONFLICT (id) DO UPDATE. Обновляются только переданные колонки,
// так что разреженное обновление не затирает остальные поля.
func (s *ProfileStorage) Upsert(ctx context.Context, id uuid.UUID, values map[string]interface{}) (*domain.Profile, error) {
	start := time.Now()

	row := map[string]interface{}{"id": id}
	assignments := map[string]interface{}{}
	for k, v := range values {
		row[k] = v
		assignments[k] = v
	}

	result := s.db.WithContext(ctx).
		Model(&domain.Profile{}).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(row)
	if result.Error != nil {
		s.logger.Error("failed to upsert profile", "user_id", id, "error", result.Error)
		return nil, fmt.Errorf("ошибка при сохранении профиля в БД: %w", result.Error)
	}

	profile, err := s.GetByUserID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("profile saved successfully",
		"user_id", id,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return profile, nil
}
