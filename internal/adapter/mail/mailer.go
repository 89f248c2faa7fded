package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	appconfig "github.com/GoArmGo/PortfolioApp/internal/config"
)

// Mailer — интерфейс исходящего почтового канала.
// Позволяет заменить способ доставки (SMTP / лог) без изменения воркера.
type Mailer interface {
	SendResetEmail(to, name, resetLink string) error
}

// SMTPMailer отправляет письма через обычный SMTP с PLAIN-аутентификацией.
type SMTPMailer struct {
	host   string
	port   int
	user   string
	pass   string
	from   string
	logger *slog.Logger
}

func NewSMTPMailer(cfg *appconfig.Config, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:   cfg.SMTP.Host,
		port:   cfg.SMTP.Port,
		user:   cfg.SMTP.User,
		pass:   cfg.SMTP.Pass,
		from:   cfg.SMTP.From,
		logger: logger,
	}
}

// SendResetEmail отправляет письмо со ссылкой на сброс пароля.
func (m *SMTPMailer) SendResetEmail(to, name, resetLink string) error {
	body := buildResetEmailBody(name, resetLink)

	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: Password Reset Instructions",
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)

	if err := smtp.SendMail(addr, auth, m.user, []string{to}, []byte(msg)); err != nil {
		m.logger.Error("failed to send reset email", "to", to, "error", err)
		return fmt.Errorf("send reset email: %w", err)
	}

	m.logger.Info("reset email sent", "to", to)
	return nil
}

func buildResetEmailBody(name, resetLink string) string {
	return fmt.Sprintf(`<p>Hello %s,</p>
<p>You requested a password reset. Click the link below to set a new password:</p>
<p><a href="%s">%s</a></p>
<p>If you did not request this, you can ignore this email.</p>`, name, resetLink, resetLink)
}

// ConsoleMailer пишет ссылку в лог вместо отправки письма.
// Используется вне production, как и в обычной локальной разработке.
type ConsoleMailer struct {
	logger *slog.Logger
}

func NewConsoleMailer(logger *slog.Logger) *ConsoleMailer {
	return &ConsoleMailer{logger: logger}
}

func (m *ConsoleMailer) SendResetEmail(to, name, resetLink string) error {
	m.logger.Info("[DEV] password reset link", "to", to, "link", resetLink)
	return nil
}
