package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/GoArmGo/PortfolioApp/internal/domain"
)

// FileStorage определяет интерфейс для работы с файловым хранилищем (AWS S3, MinIO).
type FileStorage interface {
	// UploadFile загружает файл в хранилище и возвращает его публичный URL.
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)

	// PresignedGetURL выпускает подписанную ссылку на скачивание объекта.
	PresignedGetURL(ctx context.Context, key string, expires time.Duration) (string, error)

	// DeleteFile удаляет файл из хранилища по его ключу.
	DeleteFile(ctx context.Context, key string) error
}

// FileUpload — файл из multipart-формы, целиком прочитанный в память
// (формы здесь маленькие: аватар и резюме).
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ProfileInput — разреженный набор полей профиля из multipart-формы.
// Пустые текстовые поля записываются как NULL, пустые JSON-поля не трогаются.
type ProfileInput struct {
	Name           string
	FullName       string
	Description    string
	Email          string
	PrimaryPhone   string
	SecondaryPhone string
	Location       string
	Website        string
	Linkedin       string
	Github         string
	LogoInitials   string
	OpenToWork     string
	CurrentTheme   string
	Themes         string
	Skills         string
	Experiences    string

	Avatar *FileUpload
	Resume *FileUpload
}

// ProfileUseCase определяет интерфейс бизнес-логики профиля портфолио.
type ProfileUseCase interface {
	// GetMyProfile возвращает профиль владельца токена.
	// (nil, nil) — профиль еще не создавался.
	GetMyProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// UpdateMyProfile загружает приложенные файлы и атомарно
	// вставляет либо обновляет строку профиля.
	UpdateMyProfile(ctx context.Context, userID uuid.UUID, input ProfileInput) (*domain.Profile, error)

	// ResumeDownloadURL выпускает подписанную ссылку на резюме
	// и сообщает срок ее действия в секундах.
	ResumeDownloadURL(ctx context.Context, userID uuid.UUID) (string, int, error)
}
