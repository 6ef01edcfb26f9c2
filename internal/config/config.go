package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Store backends.
const (
	BackendAuto     = "auto"
	BackendMongoDB  = "mongodb"
	BackendPostgres = "postgres"
	BackendStatic   = "static"
)

const devSecret = "glamstore-dev-secret-change-me"

type Config struct {
	Port   string `envconfig:"PORT" default:"8080"`
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	StoreBackend string `envconfig:"STORE_BACKEND" default:"auto"`

	MongoURI      string `envconfig:"MONGODB_URI"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"glamstore"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"glamstore"`
	DBSSLMode   string `envconfig:"DB_SSLMODE" default:"disable"`

	JWTSecret string        `envconfig:"JWT_SECRET"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	// Identity provider whose RS256 tokens are accepted alongside local ones.
	AuthJWKSURL string `envconfig:"AUTH_JWKS_URL"`
	AuthIssuer  string `envconfig:"AUTH_ISSUER"`

	PinataJWT       string `envconfig:"PINATA_JWT"`
	PinataGateway   string `envconfig:"PINATA_GATEWAY" default:"gateway.pinata.cloud"`
	PinataUploadURL string `envconfig:"PINATA_UPLOAD_URL" default:"https://uploads.pinata.cloud/v3/files"`
	PinataAPIURL    string `envconfig:"PINATA_API_URL" default:"https://api.pinata.cloud"`

	SentryDSN string `envconfig:"SENTRY_DSN"`

	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"*"`
	BodyLimitMB int    `envconfig:"BODY_LIMIT_MB" default:"10"`
}

// Load reads .env (when present) into the environment and decodes it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}
	return FromEnv()
}

// FromEnv decodes and validates the process environment.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "decode environment")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	switch c.StoreBackend {
	case BackendAuto, BackendMongoDB, BackendPostgres, BackendStatic:
	default:
		return errors.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.StoreBackend == BackendMongoDB && c.MongoURI == "" {
		return errors.New("STORE_BACKEND=mongodb requires MONGODB_URI")
	}
	if c.StoreBackend == BackendPostgres && c.PostgresDSN() == "" {
		return errors.New("STORE_BACKEND=postgres requires DATABASE_URL or DB_HOST")
	}
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET is required outside development")
		}
		c.JWTSecret = devSecret
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.BodyLimitMB <= 0 {
		return errors.New("BODY_LIMIT_MB must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Backend resolves "auto" to a concrete backend.
func (c *Config) Backend() string {
	if c.StoreBackend != BackendAuto {
		return c.StoreBackend
	}
	switch {
	case c.MongoURI != "":
		return BackendMongoDB
	case c.PostgresDSN() != "":
		return BackendPostgres
	default:
		return BackendStatic
	}
}

// PostgresDSN prefers DATABASE_URL and otherwise assembles a DSN from the
// DB_* parts. Empty when neither is configured.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	if c.DBHost == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func (c *Config) PinataEnabled() bool {
	return c.PinataJWT != ""
}

func (c *Config) BodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}
