package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

type Config struct {
	Server struct {
		Host            string        `yaml:"host" env:"SERVER_HOST"`
		Port            int           `yaml:"port" env:"PORT"`
		Env             string        `yaml:"env" env:"SERVER_ENV"`
		FrontendURL     string        `yaml:"frontend_url" env:"FRONTEND_URL"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		DSN             string        `yaml:"url" env:"DATABASE_URL"`
		MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env:"DB_CONN_MAX_IDLE_TIME"`
		// Timeout ограничивает каждую операцию с БД, включая ожидание соединения из пула.
		Timeout     time.Duration `yaml:"timeout" env:"DB_TIMEOUT"`
		AutoMigrate bool          `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE"`
	} `yaml:"database"`

	Redis struct {
		URL    string `yaml:"url" env:"REDIS_URL"`
		Prefix string `yaml:"prefix" env:"REDIS_PREFIX"`
	} `yaml:"redis"`

	JWT struct {
		Secret        string        `yaml:"secret" env:"JWT_SECRET"`
		RefreshSecret string        `yaml:"refresh_secret" env:"JWT_REFRESH_SECRET"`
		Issuer        string        `yaml:"issuer" env:"JWT_ISSUER"`
		AccessTTL     time.Duration `yaml:"access_ttl" env:"ACCESS_TOKEN_TTL"`
		RefreshTTL    time.Duration `yaml:"refresh_ttl" env:"REFRESH_TOKEN_TTL"`
		ResetTTL      time.Duration `yaml:"reset_ttl" env:"RESET_TOKEN_TTL"`
	} `yaml:"jwt"`

	Auth struct {
		BcryptCost int `yaml:"bcrypt_cost" env:"BCRYPT_COST"`
		// ExposeResetToken возвращает reset-токен в ответе forgot-password.
		// Разрешено только при server.env = development.
		ExposeResetToken bool `yaml:"expose_reset_token" env:"AUTH_EXPOSE_RESET_TOKEN"`
	} `yaml:"auth"`

	Admin struct {
		Email    string `yaml:"email" env:"FIRST_ADMIN_EMAIL"`
		Password string `yaml:"password" env:"FIRST_ADMIN_PASSWORD"`
		IDNumber string `yaml:"id_number" env:"FIRST_ADMIN_ID_NUMBER"`
		Name     string `yaml:"name" env:"FIRST_ADMIN_NAME"`
	} `yaml:"admin"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host" env:"SMTP_HOST"`
		SMTPPort     int    `yaml:"smtp_port" env:"SMTP_PORT"`
		SMTPUsername string `yaml:"smtp_user" env:"SMTP_USER"`
		SMTPPassword string `yaml:"smtp_password" env:"SMTP_PASSWORD"`
		FromEmail    string `yaml:"from_email" env:"EMAIL_FROM"`
		FromName     string `yaml:"from_name" env:"EMAIL_FROM_NAME"`
		TemplatesDir string `yaml:"templates_dir" env:"EMAIL_TEMPLATES_DIR"`
	} `yaml:"email"`

	Storage struct {
		Type       string `yaml:"type" env:"STORAGE_TYPE"`             // local, cloudflare_r2
		BasePath   string `yaml:"base_path" env:"FILE_UPLOAD_PATH"`    // For local storage
		BaseURL    string `yaml:"base_url" env:"STORAGE_BASE_URL"`     // Public URL base
		Bucket     string `yaml:"bucket" env:"STORAGE_BUCKET"`         // For R2
		AccessKey  string `yaml:"access_key" env:"STORAGE_ACCESS_KEY"` // For R2
		SecretKey  string `yaml:"secret_key" env:"STORAGE_SECRET_KEY"` // For R2
		Endpoint   string `yaml:"endpoint" env:"STORAGE_ENDPOINT"`     // For R2
		PublicRead bool   `yaml:"public_read" env:"STORAGE_PUBLIC_READ"`
	} `yaml:"storage"`

	Upload struct {
		MaxSize           int64    `yaml:"max_size" env:"MAX_FILE_SIZE"`
		AllowedExtensions []string `yaml:"allowed_extensions" env:"UPLOAD_ALLOWED_EXTENSIONS" envSeparator:","`
		ThumbnailSize     int      `yaml:"thumbnail_size" env:"UPLOAD_THUMBNAIL_SIZE"`
		ImageQuality      int      `yaml:"image_quality" env:"UPLOAD_IMAGE_QUALITY"`
	} `yaml:"upload"`

	RateLimit struct {
		Requests int           `yaml:"requests" env:"RATE_LIMIT_REQUESTS"`
		Window   time.Duration `yaml:"window" env:"RATE_LIMIT_WINDOW"`
	} `yaml:"rate_limit"`

	Notifications struct {
		Retention       time.Duration `yaml:"retention" env:"NOTIFICATION_RETENTION"`
		CleanupInterval time.Duration `yaml:"cleanup_interval" env:"NOTIFICATION_CLEANUP_INTERVAL"`
	} `yaml:"notifications"`
}

// Load собирает конфигурацию: значения по умолчанию, затем YAML-файл
// (если он есть), затем переменные окружения.
func Load() (*Config, error) {
	cfg := Default()

	configPath := os.Getenv("CONFIG_PATH")
	explicit := configPath != ""
	if !explicit {
		configPath = "config/config.yaml"
	}

	if err := cfg.loadFile(configPath); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("failed to parse config file at %s: %w", path, err)
	}
	return nil
}

// Default возвращает конфигурацию с безопасными значениями по умолчанию.
func Default() *Config {
	var cfg Config

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 5000
	cfg.Server.Env = EnvDevelopment
	cfg.Server.FrontendURL = "http://localhost:3000"
	cfg.Server.ShutdownTimeout = 10 * time.Second

	cfg.Database.MaxOpenConns = 20
	cfg.Database.MaxIdleConns = 10
	cfg.Database.ConnMaxIdleTime = 30 * time.Second
	cfg.Database.Timeout = 2 * time.Second

	cfg.Redis.Prefix = "imts:"

	cfg.JWT.Issuer = "internship-backend"
	cfg.JWT.AccessTTL = 15 * time.Minute
	cfg.JWT.RefreshTTL = 7 * 24 * time.Hour
	cfg.JWT.ResetTTL = time.Hour

	cfg.Auth.BcryptCost = 10

	cfg.Admin.Name = "Administrator"

	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "Internship Management"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/uploads"

	cfg.Upload.MaxSize = 5 * 1024 * 1024 // 5MB
	cfg.Upload.AllowedExtensions = []string{".jpeg", ".jpg", ".png", ".pdf", ".doc", ".docx"}
	cfg.Upload.ThumbnailSize = 300
	cfg.Upload.ImageQuality = 85

	cfg.RateLimit.Requests = 100
	cfg.RateLimit.Window = 15 * time.Minute

	cfg.Notifications.Retention = 30 * 24 * time.Hour
	cfg.Notifications.CleanupInterval = time.Hour

	return &cfg
}

// Validate проверяет обязательные поля и опасные комбинации.
func (c *Config) Validate() error {
	var errs []error

	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database url (DATABASE_URL) is required"))
	}
	if c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt secret (JWT_SECRET) is required"))
	}
	if c.JWT.RefreshSecret == "" {
		errs = append(errs, errors.New("jwt refresh secret (JWT_REFRESH_SECRET) is required"))
	}
	if c.JWT.Secret != "" && c.JWT.Secret == c.JWT.RefreshSecret {
		errs = append(errs, errors.New("JWT_SECRET and JWT_REFRESH_SECRET must differ"))
	}
	if c.Auth.ExposeResetToken && !c.IsDevelopment() {
		errs = append(errs, fmt.Errorf("auth.expose_reset_token is only allowed in %s, got %q", EnvDevelopment, c.Server.Env))
	}
	if c.Database.Timeout <= 0 {
		errs = append(errs, errors.New("database timeout must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == EnvDevelopment
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == EnvProduction
}

func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
