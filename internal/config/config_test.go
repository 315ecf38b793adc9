package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Auth.AppName != "crimebase" {
		t.Errorf("Auth.AppName = %q, want %q", cfg.Auth.AppName, "crimebase")
	}
	if cfg.Auth.TokenTTL != 168*time.Hour {
		t.Errorf("Auth.TokenTTL = %v, want 168h", cfg.Auth.TokenTTL)
	}
	if cfg.Uploads.MaxFileSize != 5242880 {
		t.Errorf("Uploads.MaxFileSize = %d, want %d", cfg.Uploads.MaxFileSize, 5242880)
	}
	if cfg.Uploads.ImageDir != "static/images" {
		t.Errorf("Uploads.ImageDir = %q", cfg.Uploads.ImageDir)
	}
	if cfg.Uploads.LogoPath != "public/logo.png" {
		t.Errorf("Uploads.LogoPath = %q", cfg.Uploads.LogoPath)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Mail.Enabled() {
		t.Error("Mail.Enabled() = true with no SMTP_HOST")
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("AUTH_TOKEN_TTL", "24h")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("Auth.TokenTTL = %v, want 24h", cfg.Auth.TokenTTL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/alttest")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.URL != "postgres://localhost/alttest" {
		t.Errorf("Database.URL = %q, want %q", cfg.Database.URL, "postgres://localhost/alttest")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("DB_URL")
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without DATABASE_URL")
	}
}

func TestValidate_BadPort(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "70000")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should reject out-of-range port")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("error %q does not mention SERVER_PORT", err)
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "verbose")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should reject unknown log level")
	}
}

func TestValidate_MailRequiresFrom(t *testing.T) {
	setRequired(t)
	t.Setenv("SMTP_HOST", "smtp.example.com")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should require SMTP_FROM when SMTP_HOST is set")
	}
	if !strings.Contains(err.Error(), "SMTP_FROM") {
		t.Errorf("error %q does not mention SMTP_FROM", err)
	}
}

func TestAddr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 3000}
	if got := c.Addr(); got != "127.0.0.1:3000" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:3000")
	}
}
