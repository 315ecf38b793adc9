package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crimebase/crimebase/internal/auth"
	"github.com/crimebase/crimebase/internal/config"
	"github.com/crimebase/crimebase/internal/database"
	"github.com/crimebase/crimebase/internal/logging"
	"github.com/crimebase/crimebase/internal/mailer"
	"github.com/crimebase/crimebase/internal/repository"
	"github.com/crimebase/crimebase/internal/service"
	"github.com/crimebase/crimebase/internal/storage"
	"github.com/crimebase/crimebase/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"token_ttl", cfg.Auth.TokenTTL,
		"mail_enabled", cfg.Mail.Enabled(),
	)

	// Connect to database and run migrations
	db, err := database.Connect(&cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to database")

	// Prepare upload directories
	photos, err := storage.New(cfg.Uploads.ImageDir)
	if err != nil {
		slog.Error("failed to create image directory", "error", err)
		os.Exit(1)
	}
	failed, err := storage.New(cfg.Uploads.FailedDir)
	if err != nil {
		slog.Error("failed to create failed-report directory", "error", err)
		os.Exit(1)
	}

	// Wire the service layer
	tokens := auth.NewManager(cfg.Auth.JWTSecret, cfg.Auth.AppName, cfg.Auth.TokenTTL)
	mail := mailer.New(&cfg.Mail)
	repos := repository.New(db)
	svc := service.New(repos, photos, tokens, mail, cfg)

	// Create server with config
	server := web.NewServer(svc, tokens, failed, cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())

	// Prune expired session rows so the token table does not grow unbounded
	go pruneTokens(jobCtx, repos.Tokens, cfg.Auth.TokenTTL)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

// pruneTokens periodically deletes session rows older than the token TTL.
// Tokens past the TTL already fail JWT verification, so removing the rows
// only reclaims space.
func pruneTokens(ctx context.Context, tokens *repository.TokenRepo, ttl time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-ttl)
			if err := tokens.DeleteOlderThan(ctx, cutoff); err != nil {
				slog.Error("token prune failed", "error", err)
			} else {
				slog.Debug("pruned expired tokens", "cutoff", cutoff)
			}
		}
	}
}
