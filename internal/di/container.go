package di

import (
	"github.com/GoArmGo/PortfolioApp/internal/adapter/mail"
	"github.com/GoArmGo/PortfolioApp/internal/adapter/storage/minio"
	"github.com/GoArmGo/PortfolioApp/internal/app"
	"github.com/GoArmGo/PortfolioApp/internal/auth"
	"github.com/GoArmGo/PortfolioApp/internal/config"
	"github.com/GoArmGo/PortfolioApp/internal/database/client"
	"github.com/GoArmGo/PortfolioApp/internal/database/storage"
	"github.com/GoArmGo/PortfolioApp/internal/logger"
	"github.com/GoArmGo/PortfolioApp/internal/rabbitmq"
	"github.com/GoArmGo/PortfolioApp/internal/usecase"
)

// BuildApp инициализирует все зависимости и возвращает готовый объект App.
func BuildApp() (*app.App, error) {
	// 1. Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	slogger := logger.NewSlog(logger.SlogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "portfolioapp",
	})
	slogger.Info("logger initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)

	// 2. Инициализация PostgreSQL клиента (sqlx + GORM, миграции)
	dbClient, err := client.NewClient(cfg, slogger)
	if err != nil {
		return nil, err
	}

	// 3. Инициализация хранилищ
	userStorage := storage.NewUserStorage(dbClient.DB, slogger)
	profileStorage := storage.NewProfileStorage(dbClient.Gorm, slogger)
	resetTokenStorage := storage.NewResetTokenStorage(dbClient.DB, slogger)

	// 4. Инициализация клиентов внешних сервисов
	fileStorage, err := minio.NewMinioClient(cfg) // S3 / MinIO адаптер
	if err != nil {
		return nil, err
	}

	rabbitMQClient, err := rabbitmq.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	var mailer mail.Mailer
	if cfg.IsProduction() {
		mailer = mail.NewSMTPMailer(cfg, slogger)
	} else {
		mailer = mail.NewConsoleMailer(slogger)
	}

	// 5. Сервисы аутентификации
	tokenService := auth.NewTokenService(
		[]byte(cfg.JWTSecret),
		cfg.SessionTokenTTL,
		cfg.ResetTokenTTL,
		cfg.PublicTokenTTL,
	)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	// 6. Инициализация бизнес-логики (usecases)
	authUseCase := usecase.NewAuthUseCase(
		userStorage,
		resetTokenStorage,
		tokenService,
		hasher,
		rabbitMQClient,
		cfg.FrontendURL,
		cfg.PublicPortfolioUserID,
		cfg.IsProduction(),
		slogger,
	)
	profileUseCase := usecase.NewProfileUseCase(
		profileStorage,
		fileStorage,
		cfg.ResumeURLExpiry,
		slogger,
	)

	// 7. Сборка итогового приложения
	application := app.NewApp(
		cfg,
		slogger,
		dbClient,
		authUseCase,
		profileUseCase,
		tokenService,
		rabbitMQClient,
		mailer,
		resetTokenStorage,
	)

	slogger.Info("все зависимости успешно инициализированы")
	return application, nil
}
