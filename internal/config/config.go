// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast
// on misconfiguration.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Uploads  UploadsConfig
	Mail     MailConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`

	// MainURL is the externally visible base URL, used in reset-password
	// mails and PDF asset links.
	MainURL string `env:"MAIN_URL" default:"http://localhost:8080"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (required)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL" required:"true"`
}

// AuthConfig holds JWT and session settings.
type AuthConfig struct {
	// AppName names the auth cookie ("<AppName>_Auth") and the JWT issuer.
	AppName string `env:"APP_NAME" default:"crimebase"`

	// JWTSecret signs session tokens (required).
	JWTSecret string `env:"JWT_SECRET" required:"true"`

	// TokenTTL is how long an issued token remains valid (default: 168h)
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" default:"168h"`
}

// UploadsConfig holds file-storage settings for photos and generated
// spreadsheets.
type UploadsConfig struct {
	// ImageDir stores criminal photos (default: static/images)
	ImageDir string `env:"UPLOAD_IMAGE_DIR" default:"static/images"`

	// FailedDir stores generated failed-import reports (default: static/failed_excel)
	FailedDir string `env:"UPLOAD_FAILED_DIR" default:"static/failed_excel"`

	// LogoPath is the application logo served to clients (default: public/logo.png)
	LogoPath string `env:"UPLOAD_LOGO_PATH" default:"public/logo.png"`

	// MaxFileSize is the maximum accepted upload size in bytes (default: 5MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"5242880"`
}

// MailConfig holds SMTP settings for password-reset mail. Mail is optional;
// with no host configured, reset keys are only logged.
type MailConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" default:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Enabled reports whether outbound mail is configured.
func (c *MailConfig) Enabled() bool {
	return c.Host != ""
}
