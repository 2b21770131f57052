package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{Environment: "development"}
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg = &Config{Environment: "production"}
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.IsProduction())
}

func TestLoadWithOptions(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_ISSUER", "https://id.example.com")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("DB_HOST", "testhost")
	t.Setenv("DB_USER", "testuser")
	t.Setenv("DB_NAME", "crm_test")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("LOCALE", "EN")
	t.Setenv("CACHE_PAGE_TTL", "30s")

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, "testhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "testuser", cfg.Database.User)
	assert.Equal(t, "crm_test", cfg.Database.DBName)
	assert.Equal(t, testSecret, cfg.Security.JWTSecret)
	assert.Equal(t, "https://id.example.com", cfg.Security.JWTIssuer)
	assert.Equal(t, "authenticated", cfg.Security.JWTAudience)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, 30*time.Second, cfg.Cache.PageTTL)
	assert.Equal(t, "crm:invalidate", cfg.Cache.RedisChannel)
	assert.Equal(t, VERSION, cfg.Version)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadWithOptions_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := LoadWithOptions(LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "nb", cfg.Locale)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "none", cfg.Tracing.TraceExporter)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, 2*time.Minute, cfg.Cache.PageTTL)
}

func TestLoadWithOptions_MissingSecret(t *testing.T) {
	os.Unsetenv("JWT_SECRET")

	_, err := LoadWithOptions(LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestLoadWithOptions_ShortSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")

	_, err := LoadWithOptions(LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestLoadWithOptions_UnsupportedLocale(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("LOCALE", "de")

	_, err := LoadWithOptions(LoadOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported LOCALE")
}

func TestLoadWithOptions_EnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("SERVER_PORT=7070\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := LoadWithOptions(LoadOptions{EnvFile: ".env.test"})
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}
