package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/hxdemo/internal/adapter/httpserver"
	"github.com/pscheid92/hxdemo/internal/adapter/memory"
	"github.com/pscheid92/hxdemo/internal/adapter/metrics"
	"github.com/pscheid92/hxdemo/internal/app"
	"github.com/pscheid92/hxdemo/internal/platform/config"
	"github.com/pscheid92/hxdemo/internal/platform/logging"
	"github.com/pscheid92/hxdemo/internal/platform/version"
	"github.com/pscheid92/hxdemo/internal/waveform"
)

const shutdownTimeout = 10 * time.Second

func runGracefulShutdown(srv *httpserver.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	info := version.Get()
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "version", info.Version, "commit", info.Commit)

	registry := metrics.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	plotMetrics := metrics.NewPlotMetrics(registry)

	sessions := memory.NewSessionRepo()
	items := memory.NewItemRepo()
	metrics.RegisterSessionGauge(registry, sessions.Len)
	renderer := waveform.NewRenderer(clock, plotMetrics)

	appSvc := app.NewService(sessions, items, renderer, clock, app.Options{PagingDelay: cfg.PagingDelay})

	healthChecks := []httpserver.HealthCheck{
		{
			Name: "items",
			Check: func(ctx context.Context) error {
				_, err := items.List(ctx)
				return err
			},
		},
	}

	obs := httpserver.Observability{Registry: registry, HTTPMetrics: httpMetrics}
	srv, err := httpserver.NewServer(cfg, appSvc, clock, obs, healthChecks)
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
