package email

import (
	"context"

	"internship_backend/internal/logger"
)

// LogSender используется, когда SMTP не настроен (локальная разработка, тесты).
// Тело письма не логируется: в нем может быть токен сброса пароля.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	logger.CtxInfo(ctx, "email delivery skipped: smtp is not configured",
		"to", logger.RedactEmail(msg.To),
		"subject", msg.Subject,
	)
	return nil
}

// NewMailer выбирает SMTPSender или LogSender по конфигурации
func NewMailer(cfg SMTPConfig) Mailer {
	if cfg.Enabled() {
		return NewSMTPSender(cfg)
	}
	return LogSender{}
}
