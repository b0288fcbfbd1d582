package email

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const TemplatePasswordReset = "password_reset"

const passwordResetTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Password Reset Request</h2>
  <p>Hello {{.Name}},</p>
  <p>You requested a password reset. Click the link below to reset your password:</p>
  <p><a href="{{.ResetLink}}" style="color: #1a73e8;">Reset Password</a></p>
  <p>This link will expire in {{.ExpiresIn}}.</p>
  <p>If you didn't request this, please ignore this email.</p>
</body>
</html>`

// TemplateManager хранит HTML-шаблоны писем
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// NewDefaultTemplateManager загружает встроенные шаблоны и, если dir задан,
// шаблоны из директории (одноименные файлы переопределяют встроенные).
func NewDefaultTemplateManager(dir string) (*TemplateManager, error) {
	tm := NewTemplateManager()
	if err := tm.AddTemplate(TemplatePasswordReset, passwordResetTemplate); err != nil {
		return nil, err
	}
	if dir != "" {
		if err := tm.LoadTemplates(dir); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()
	return nil
}

// LoadTemplates загружает *.html из директории, имя шаблона = имя файла
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		templateName := strings.TrimSuffix(filepath.Base(path), ".html")
		if err := tm.AddTemplate(templateName, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", templateName, err)
		}
		return nil
	})
}

// PasswordResetMessage собирает письмо со ссылкой сброса пароля
func (tm *TemplateManager) PasswordResetMessage(to, name, resetLink, expiresIn string) (Message, error) {
	html, err := tm.Render(TemplatePasswordReset, TemplateData{
		"Name":      name,
		"ResetLink": resetLink,
		"ExpiresIn": expiresIn,
	})
	if err != nil {
		return Message{}, err
	}

	return Message{
		To:      to,
		Subject: "Password Reset Request",
		HTML:    html,
		Text: fmt.Sprintf("Hello %s,\n\nReset your password: %s\nThis link will expire in %s.\n"+
			"If you didn't request this, please ignore this email.\n", name, resetLink, expiresIn),
	}, nil
}
