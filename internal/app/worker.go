package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoArmGo/PortfolioApp/internal/adapter/mail"
	"github.com/GoArmGo/PortfolioApp/internal/core/ports"
	"github.com/GoArmGo/PortfolioApp/internal/messaging/payloads"
)

// Период опортунистической чистки просроченных отметок токенов сброса.
const purgeInterval = time.Hour

// runWorker запускает потребителя RabbitMQ и отправляет письма сброса пароля.
// Попутно чистит просроченные отметки использованных токенов.
func runWorker(
	ctx context.Context,
	logger *slog.Logger,
	mailConsumer ports.ResetEmailConsumer,
	mailer mail.Mailer,
	usedTokens ports.ResetTokenStorage,
) error {
	logger.Info("mail worker started, waiting for messages")

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	messageHandler := func(ctx context.Context, payload payloads.ResetEmailPayload) error {
		if err := mailer.SendResetEmail(payload.Email, payload.Name, payload.ResetLink); err != nil {
			logger.Error("failed to deliver reset email", "to", payload.Email, "error", err)
			return err
		}
		return nil
	}

	if err := mailConsumer.StartConsumingResetEmails(workerCtx, messageHandler); err != nil {
		return fmt.Errorf("ошибка при запуске потребителя RabbitMQ: %w", err)
	}

	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			purged, err := usedTokens.PurgeExpired(workerCtx)
			if err != nil {
				logger.Error("failed to purge expired reset token marks", "error", err)
				continue
			}
			if purged > 0 {
				logger.Info("expired reset token marks purged", "count", purged)
			}
		case <-ctx.Done():
			logger.Info("mail worker stopping")
			cancelWorker()
			// Небольшая задержка, чтобы in-flight сообщения успели подтвердиться
			time.Sleep(2 * time.Second)
			return nil
		}
	}
}
