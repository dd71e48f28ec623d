package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	DBDSN      string
	AuditDBDSN string
	Storage    string
	ServerPort string
	LogLevel   string

	SessionSecret string
	JWTSecret     string
	JWTExpiration time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	CORSAllowedOrigins []string
	ProjectCacheTTL    time.Duration

	AdminEmail    string
	AdminPassword string
}

// GoogleEnabled reports whether federated sign-in is configured.
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

func Load() *Config {
	_ = godotenv.Load()

	cfg, err := FromEnv()
	if err != nil {
		logrus.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatal(err)
	}
	return cfg
}

// FromEnv reads the process environment and fills in defaults.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DBDSN:              os.Getenv("DB_DSN"),
		AuditDBDSN:         os.Getenv("AUDIT_DB_DSN"),
		Storage:            strings.ToLower(os.Getenv("STORAGE")),
		ServerPort:         os.Getenv("SERVER_PORT"),
		LogLevel:           os.Getenv("LOG_LEVEL"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
	}

	if cfg.Storage == "" {
		cfg.Storage = StoragePostgres
	}
	if cfg.AuditDBDSN == "" {
		cfg.AuditDBDSN = cfg.DBDSN
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.GoogleRedirectURL == "" {
		cfg.GoogleRedirectURL = "http://localhost:" + cfg.ServerPort + "/api/v1/login/oauth2/code/google"
	}
	if cfg.AdminEmail == "" {
		cfg.AdminEmail = "admin@tracker.local"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "Admin123!"
	}

	var err error
	if cfg.JWTExpiration, err = durationEnv("JWT_EXPIRATION", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ProjectCacheTTL, err = durationEnv("PROJECT_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}

	origins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000"
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Storage {
	case StoragePostgres:
		if c.DBDSN == "" {
			errs = append(errs, errors.New("DB_DSN is not set"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if (c.GoogleClientID == "") != (c.GoogleClientSecret == "") {
		errs = append(errs, errors.New("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set together"))
	}

	return errors.Join(errs...)
}
