package email

import "context"

// Message - письмо одному получателю
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// TemplateData представляет данные для шаблонов писем
type TemplateData map[string]any

// Mailer доставляет письма. Send блокирует до ответа сервера.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
