package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/GoArmGo/PortfolioApp/internal/core/ports"
	"github.com/GoArmGo/PortfolioApp/internal/domain"
)

// profileUseCase implements ProfileUseCase
type profileUseCase struct {
	profiles     ports.ProfileStorage
	fileStorage  FileStorage
	resumeExpiry time.Duration
	logger       *slog.Logger
}

// NewProfileUseCase создает новый экземпляр ProfileUseCase.
func NewProfileUseCase(
	profiles ports.ProfileStorage,
	fileStorage FileStorage,
	resumeExpiry time.Duration,
	logger *slog.Logger,
) ProfileUseCase {
	return &profileUseCase{
		profiles:     profiles,
		fileStorage:  fileStorage,
		resumeExpiry: resumeExpiry,
		logger:       logger,
	}
}

// GetMyProfile возвращает профиль владельца токена, (nil, nil) если его еще нет.
func (uc *profileUseCase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := uc.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usecase: получение профиля: %w", err)
	}
	return profile, nil
}

// UpdateMyProfile собирает разреженный набор колонок, загружает приложенные
// файлы в объектное хранилище и выполняет атомарный upsert строки профиля.
func (uc *profileUseCase) UpdateMyProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*domain.Profile, error) {
	values := map[string]interface{}{
		"full_name":       nullable(firstNonEmpty(input.FullName, input.Name)),
		"description":     nullable(input.Description),
		"email":           nullable(input.Email),
		"primary_phone":   nullable(input.PrimaryPhone),
		"secondary_phone": nullable(input.SecondaryPhone),
		"location":        nullable(input.Location),
		"website":         nullable(input.Website),
		"linkedin":        nullable(input.Linkedin),
		"github":          nullable(input.Github),
		"logo_initials":   nullable(input.LogoInitials),
		"open_to_work":    input.OpenToWork == "true",
		"currenttheme":    nullable(input.CurrentTheme),
		"updated_at":      time.Now(),
	}

	// JSON-поля обновляются только когда реально переданы
	if v := parseJSONField(input.Themes); v != nil {
		values["themes"] = v
	}
	if v := parseJSONField(input.Skills); v != nil {
		values["skills"] = v
	}
	if v := parseJSONField(input.Experiences); v != nil {
		values["experiences"] = v
	}

	if input.Avatar != nil {
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(input.Avatar.Filename), "."))
		if ext == "" {
			ext = "jpg"
		}
		key := fmt.Sprintf("avatars/%s/%s.%s", userID, uuid.New(), ext)

		url, err := uc.fileStorage.UploadFile(ctx, key, bytes.NewReader(input.Avatar.Data), input.Avatar.ContentType)
		if err != nil {
			return nil, fmt.Errorf("usecase: загрузка аватара в хранилище: %w", err)
		}
		values["avatar_url"] = url
	}

	if input.Resume != nil {
		if input.Resume.ContentType != "application/pdf" &&
			!strings.HasSuffix(strings.ToLower(input.Resume.Filename), ".pdf") {
			return nil, ErrResumeNotPDF
		}
		// Для резюме храним ключ объекта, а не публичный URL:
		// наружу оно отдается только по подписанной ссылке.
		key := fmt.Sprintf("resumes/%s/%s.pdf", userID, uuid.New())

		if _, err := uc.fileStorage.UploadFile(ctx, key, bytes.NewReader(input.Resume.Data), input.Resume.ContentType); err != nil {
			return nil, fmt.Errorf("usecase: загрузка резюме в хранилище: %w", err)
		}
		values["resume_url"] = key
	}

	profile, err := uc.profiles.Upsert(ctx, userID, values)
	if err != nil {
		return nil, fmt.Errorf("usecase: сохранение профиля: %w", err)
	}

	uc.logger.Info("profile updated", "user_id", userID)
	return profile, nil
}

// ResumeDownloadURL выпускает подписанную ссылку на сохраненное резюме.
func (uc *profileUseCase) ResumeDownloadURL(ctx context.Context, userID uuid.UUID) (string, int, error) {
	profile, err := uc.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return "", 0, fmt.Errorf("usecase: получение профиля для резюме: %w", err)
	}
	if profile == nil || profile.ResumeURL == nil || *profile.ResumeURL == "" {
		return "", 0, ErrNoResume
	}

	url, err := uc.fileStorage.PresignedGetURL(ctx, *profile.ResumeURL, uc.resumeExpiry)
	if err != nil {
		return "", 0, fmt.Errorf("usecase: подпись ссылки на резюме: %w", err)
	}
	return url, int(uc.resumeExpiry.Seconds()), nil
}

// parseJSONField принимает либо валидный JSON, либо строку с разделителями-запятыми.
// Невалидный JSON разбирается как список токенов с обрезанными пробелами.
func parseJSONField(value string) domain.JSON {
	if value == "" {
		return nil
	}
	if json.Valid([]byte(value)) {
		return domain.JSON(value)
	}

	parts := strings.Split(value, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tokens = append(tokens, t)
		}
	}
	b, err := json.Marshal(tokens)
	if err != nil {
		return nil
	}
	return domain.JSON(b)
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
