package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultSessionTTL      = "24h"
	defaultMagicLinkTTL    = "1h"
	defaultResendCooldown  = "60s"
	defaultJWTSecret       = "change-me-jwt-secret"
	defaultLinkTokenPepper = "change-me-link-pepper"
	defaultListenAddr      = ":8080"
	defaultFrontendURL     = "http://localhost:3000"
	defaultUploadsDir      = "./uploads"
	defaultLogLevel        = "info"
)

// Config is the env-driven runtime configuration for the portal.
type Config struct {
	AppEnv      string
	ListenAddr  string
	DatabaseURL string
	FrontendURL string
	UploadsDir  string

	JWTSecret       string
	AdminSetupKey   string
	SessionTTL      time.Duration
	LinkTokenPepper string
	MagicLinkTTL    time.Duration
	ResendCooldown  time.Duration

	// DevExposeLinks logs issued magic links to the console instead of
	// relying on SMTP delivery. Refused outside dev environments.
	DevExposeLinks bool

	SMTP SMTPConfig

	LogLevel  string
	LogFormat string
}

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

func (s SMTPConfig) Configured() bool { return s.Host != "" }

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.FrontendURL = strings.TrimRight(getEnv("FRONTEND_URL", defaultFrontendURL), "/")
	cfg.UploadsDir = getEnv("UPLOADS_DIR", defaultUploadsDir)

	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.AdminSetupKey = strings.TrimSpace(os.Getenv("ADMIN_SETUP_KEY"))
	cfg.LinkTokenPepper = strings.TrimSpace(getEnv("LINK_TOKEN_PEPPER", defaultLinkTokenPepper))

	var err error
	cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", defaultSessionTTL)
	if err != nil {
		return nil, err
	}
	cfg.MagicLinkTTL, err = parseDurationEnv("MAGIC_LINK_TTL", defaultMagicLinkTTL)
	if err != nil {
		return nil, err
	}
	cfg.ResendCooldown, err = parseDurationEnv("RESEND_COOLDOWN", defaultResendCooldown)
	if err != nil {
		return nil, err
	}

	cfg.DevExposeLinks = parseBoolEnv("DEV_EXPOSE_MAGIC_LINKS", "false")

	cfg.SMTP = SMTPConfig{
		Host:        strings.TrimSpace(os.Getenv("SMTP_HOST")),
		Username:    os.Getenv("SMTP_USERNAME"),
		Password:    os.Getenv("SMTP_PASSWORD"),
		FromAddress: getEnv("SMTP_FROM_ADDRESS", "no-reply@ur.ac.rw"),
		FromName:    getEnv("SMTP_FROM_NAME", "UR Course Portal"),
	}
	if port := strings.TrimSpace(os.Getenv("SMTP_PORT")); port != "" {
		cfg.SMTP.Port, err = strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT value %q: %w", port, err)
		}
	} else {
		cfg.SMTP.Port = 587
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", defaultLogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", "")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsProd() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.MagicLinkTTL <= 0 {
		return fmt.Errorf("MAGIC_LINK_TTL must be > 0")
	}
	if cfg.ResendCooldown <= 0 {
		return fmt.Errorf("RESEND_COOLDOWN must be > 0")
	}

	if cfg.IsProd() {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if isEmptyOrDefault(cfg.LinkTokenPepper, defaultLinkTokenPepper) {
			return fmt.Errorf("in prod/release LINK_TOKEN_PEPPER must be set and not default")
		}
		if cfg.DevExposeLinks {
			return fmt.Errorf("DEV_EXPOSE_MAGIC_LINKS must not be enabled in prod/release")
		}
		if !cfg.SMTP.Configured() {
			return fmt.Errorf("in prod/release SMTP_HOST must be configured")
		}
	}

	return nil
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
