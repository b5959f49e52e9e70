package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fieldserv/openorders/internal/config"
	"github.com/fieldserv/openorders/internal/logging"
	"github.com/fieldserv/openorders/internal/metrics"
	"github.com/fieldserv/openorders/internal/orders"
	"github.com/fieldserv/openorders/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
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
		"source_path", cfg.Source.Path,
		"cache_ttl", cfg.Cache.TTL,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	if cfg.Source.ReferenceTime != "" {
		slog.Warn("reference instant pinned, ages will not track wall-clock time",
			"reference_time", cfg.Source.ReferenceTime)
	}

	reg := metrics.NewRegistry()

	loader := orders.NewLoader(cfg.Source.Path, cfg.Source.DelimiterRune(), cfg.Source.ReferenceClock())
	service := orders.NewService(loader, cfg.Cache.TTL, reg)

	server := web.NewServer(service, cfg, reg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
