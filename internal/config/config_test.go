package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/app?sslmode=require")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, ResponseModeSchema, cfg.Gemini.ResponseMode)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Auth.TokensEnabled)
	assert.Equal(t, 24*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("GEMINI_RESPONSE_MODE", "PROMPT")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_MAX_CONNS", "12")
	t.Setenv("GEMINI_TIMEOUT", "15s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ResponseModePrompt, cfg.Gemini.ResponseMode)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, int32(12), cfg.Database.MaxConns)
	assert.Equal(t, 15*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestLoadMissingAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("DATABASE_URL", "postgres://localhost/app")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoadMissingDatabaseURL(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "k")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{URL: "postgres://localhost/app"},
			Gemini:   GeminiConfig{APIKey: "k", ResponseMode: ResponseModeSchema},
			Upload:   UploadConfig{MaxBytes: 1024},
			Auth:     AuthConfig{BcryptCost: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown response mode", mutate: func(c *Config) { c.Gemini.ResponseMode = "xml" }, wantErr: "GEMINI_RESPONSE_MODE"},
		{name: "bcrypt cost too low", mutate: func(c *Config) { c.Auth.BcryptCost = 2 }, wantErr: "BCRYPT_COST"},
		{name: "tokens without secret", mutate: func(c *Config) { c.Auth.TokensEnabled = true }, wantErr: "JWT_SECRET"},
		{name: "tokens with secret", mutate: func(c *Config) { c.Auth.TokensEnabled = true; c.Auth.JWTSecret = "s" }},
		{name: "zero upload limit", mutate: func(c *Config) { c.Upload.MaxBytes = 0 }, wantErr: "UPLOAD_MAX_BYTES"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
