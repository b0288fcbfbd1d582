package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
  env: production
database:
  url: postgres://file/db
jwt:
  secret: file-secret
  refresh_secret: file-refresh
  access_ttl: 5m
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, EnvProduction, cfg.Server.Env)
	assert.Equal(t, "postgres://file/db", cfg.Database.DSN)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
	assert.Equal(t, 5*time.Minute, cfg.JWT.AccessTTL)
	// значения по умолчанию сохраняются
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
}

func TestLoad_EnvOnlyWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("JWT_SECRET", "a")
	t.Setenv("JWT_REFRESH_SECRET", "b")
	t.Setenv("UPLOAD_ALLOWED_EXTENSIONS", ".png,.pdf")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://env/db", cfg.Database.DSN)
	assert.Equal(t, []string{".png", ".pdf"}, cfg.Upload.AllowedExtensions)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Database.DSN = "postgres://x"
	cfg.JWT.Secret = "same"
	cfg.JWT.RefreshSecret = "same"

	assert.ErrorContains(t, cfg.Validate(), "must differ")

	cfg.JWT.RefreshSecret = "other"
	require.NoError(t, cfg.Validate())

	cfg.Auth.ExposeResetToken = true
	cfg.Server.Env = EnvProduction
	assert.ErrorContains(t, cfg.Validate(), "expose_reset_token")

	cfg.Server.Env = EnvDevelopment
	assert.NoError(t, cfg.Validate())
}

func TestValidate_RequiredSecrets(t *testing.T) {
	err := Default().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "JWT_REFRESH_SECRET")
}
