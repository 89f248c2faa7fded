package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/GoArmGo/PortfolioApp/internal/adapter/mail"
	"github.com/GoArmGo/PortfolioApp/internal/auth"
	"github.com/GoArmGo/PortfolioApp/internal/config"
	"github.com/GoArmGo/PortfolioApp/internal/core/ports"
	"github.com/GoArmGo/PortfolioApp/internal/database/client"
	"github.com/GoArmGo/PortfolioApp/internal/usecase"
)

// App собирает все зависимости приложения и управляет его жизненным циклом.
type App struct {
	Config *config.Config

	logger         *slog.Logger
	dbClient       *client.Client
	authUseCase    usecase.AuthUseCase
	profileUseCase usecase.ProfileUseCase
	tokenService   *auth.TokenService
	mailConsumer   ports.ResetEmailConsumer
	mailer         mail.Mailer
	usedTokens     ports.ResetTokenStorage
}

func NewApp(
	cfg *config.Config,
	logger *slog.Logger,
	dbClient *client.Client,
	authUseCase usecase.AuthUseCase,
	profileUseCase usecase.ProfileUseCase,
	tokenService *auth.TokenService,
	mailConsumer ports.ResetEmailConsumer,
	mailer mail.Mailer,
	usedTokens ports.ResetTokenStorage,
) *App {
	return &App{
		Config:         cfg,
		logger:         logger,
		dbClient:       dbClient,
		authUseCase:    authUseCase,
		profileUseCase: profileUseCase,
		tokenService:   tokenService,
		mailConsumer:   mailConsumer,
		mailer:         mailer,
		usedTokens:     usedTokens,
	}
}

// LoggerIns возвращает основной логгер приложения.
func (a *App) LoggerIns() *slog.Logger {
	return a.logger
}

// Run запускает приложение в выбранном режиме и блокируется до сигнала завершения.
func (a *App) Run(ctx context.Context, mode *string) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("application starting", "mode", *mode)

	var err error
	switch *mode {
	case "server":
		err = runServer(ctx, a.Config, a.logger, a.authUseCase, a.profileUseCase, a.tokenService)
	case "worker":
		err = runWorker(ctx, a.logger, a.mailConsumer, a.mailer, a.usedTokens)
	default:
		err = fmt.Errorf("неизвестный режим: %s (используйте 'server' или 'worker')", *mode)
	}

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	return err
}

// Shutdown закрывает все ресурсы приложения
func (a *App) Shutdown() error {
	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("ошибка закрытия БД: %w", err)
		}
	}

	if closer, ok := a.mailConsumer.(interface{ Close() }); ok {
		closer.Close()
	}

	return nil
}
