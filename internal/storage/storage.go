package storage

import (
	"context"
	"fmt"
	"io"
)

const (
	TypeLocal        = "local"
	TypeCloudflareR2 = "cloudflare_r2"
)

// Storage - хранилище вложений.
type Storage interface {
	// Save сохраняет файл по относительному пути
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Delete удаляет файл; отсутствие файла не считается ошибкой
	Delete(ctx context.Context, path string) error

	// URL возвращает публичную ссылку на файл
	URL(path string) string
}

type Config struct {
	Type       string // local, cloudflare_r2
	BasePath   string // For local storage
	BaseURL    string // Public URL base
	Bucket     string // For R2
	AccessKey  string // For R2
	SecretKey  string // For R2
	Endpoint   string // For R2
	PublicRead bool
}

// NewStorage создает хранилище по типу из конфигурации
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case TypeLocal, "":
		return NewLocalStorage(cfg)
	case TypeCloudflareR2:
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
