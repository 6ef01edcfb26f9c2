package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "APP_ENV", "LOG_LEVEL", "LOG_FORMAT", "STORE_BACKEND", "MONGODB_URI",
	"MONGODB_DATABASE", "DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD",
	"DB_NAME", "DB_SSLMODE", "JWT_SECRET", "TOKEN_TTL", "AUTH_JWKS_URL", "AUTH_ISSUER",
	"PINATA_JWT", "PINATA_GATEWAY", "PINATA_UPLOAD_URL", "PINATA_API_URL", "SENTRY_DSN",
	"CORS_ORIGINS", "BODY_LIMIT_MB",
}

// clearEnv unsets every key for the duration of the test. Setenv first so
// the original values are restored afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, BackendStatic, cfg.Backend())
	assert.Equal(t, devSecret, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "gateway.pinata.cloud", cfg.PinataGateway)
	assert.False(t, cfg.PinataEnabled())
	assert.Equal(t, 10*1024*1024, cfg.BodyLimit())
}

func TestAutoBackend(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"mongo wins", map[string]string{"MONGODB_URI": "mongodb://localhost", "DATABASE_URL": "postgres://x"}, BackendMongoDB},
		{"database url", map[string]string{"DATABASE_URL": "postgres://x"}, BackendPostgres},
		{"db parts", map[string]string{"DB_HOST": "db"}, BackendPostgres},
		{"nothing configured", nil, BackendStatic},
		{"explicit static", map[string]string{"STORE_BACKEND": "static", "MONGODB_URI": "mongodb://localhost"}, BackendStatic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := FromEnv()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Backend())
		})
	}
}

func TestPostgresDSNFromParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "host=db user=postgres password=secret dbname=glamstore port=5432 sslmode=disable TimeZone=UTC", cfg.PostgresDSN())
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"STORE_BACKEND": "redis"}},
		{"mongo without uri", map[string]string{"STORE_BACKEND": "mongodb"}},
		{"postgres without dsn", map[string]string{"STORE_BACKEND": "postgres"}},
		{"production without secret", map[string]string{"APP_ENV": "production"}},
		{"bad ttl", map[string]string{"TOKEN_TTL": "soon"}},
		{"zero body limit", map[string]string{"BODY_LIMIT_MB": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestProductionWithSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}
