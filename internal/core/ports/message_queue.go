package ports

import (
	"context"

	"github.com/GoArmGo/PortfolioApp/internal/messaging/payloads"
)

// ResetEmailPublisher определяет методы для публикации заданий на отправку
// письма сброса пароля. Используется обработчиком forgot-password.
type ResetEmailPublisher interface {
	PublishResetEmail(ctx context.Context, payload payloads.ResetEmailPayload) error
}

// ResetEmailConsumer определяет методы для потребления заданий из очереди,
// используется воркером отправки почты.
type ResetEmailConsumer interface {
	// StartConsumingResetEmails начинает прослушивание очереди.
	// Принимает функцию-обработчик, вызываемую для каждого задания.
	StartConsumingResetEmails(ctx context.Context, handler func(context.Context, payloads.ResetEmailPayload) error) error
}
