// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the stickynote HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open storage: PostgreSQL (pool + migrations) or in-memory.
//  4. Connect to Redis when REDIS_URL is set, for the shared rate limiter.
//  5. Build the password hasher and token service from configuration.
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/stickynote/internal/api"
	"github.com/taibuivan/stickynote/internal/auth"
	"github.com/taibuivan/stickynote/internal/note"
	"github.com/taibuivan/stickynote/internal/platform/config"
	"github.com/taibuivan/stickynote/internal/platform/constants"
	"github.com/taibuivan/stickynote/internal/platform/middleware"
	"github.com/taibuivan/stickynote/internal/platform/migration"
	pgstore "github.com/taibuivan/stickynote/internal/platform/postgres"
	redisstore "github.com/taibuivan/stickynote/internal/platform/redis"
	"github.com/taibuivan/stickynote/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo, false)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug || cfg.IsDevelopment() {
		level := slog.LevelInfo
		if cfg.Debug {
			level = slog.LevelDebug
		}
		log = newLogger(level, cfg.IsDevelopment())
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage_driver", cfg.StorageDriver),
		slog.Bool("redis_enabled", cfg.RedisURL != ""),
	)

	// Application lifetime context; cancelling it stops background janitors.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// Startup deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(appCtx, 30*time.Second)
	defer startupCancel()

	var checks []api.HealthCheck

	// ── 3. Storage ────────────────────────────────────────────────────────
	var userRepository auth.UserRepository
	var noteRepository note.Repository

	switch cfg.StorageDriver {
	case constants.StorageDriverPostgres:
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, cfg.QueryTimeout, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		userRepository = auth.NewPostgresUserRepository(pool)
		noteRepository = note.NewPostgresRepository(pool)
		checks = append(checks, api.HealthCheck{
			Name:  "postgres",
			Probe: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		})

	case constants.StorageDriverMemory:
		log.Warn("memory_storage_enabled", slog.String("detail", "data is lost on restart"))
		userRepository = auth.NewMemoryUserRepository()
		noteRepository = note.NewMemoryRepository()
	}

	// ── 4. Rate Limiter ───────────────────────────────────────────────────
	var limiter middleware.Limiter = middleware.NewMemoryLimiter(appCtx, cfg.RateLimitMax, cfg.RateLimitWindow)

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if closeErr := rdb.Close(); closeErr != nil {
				log.Error("redis_close_failed", slog.Any("error", closeErr))
			}
		}()

		limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow)
		checks = append(checks, api.HealthCheck{
			Name:  "redis",
			Probe: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		})
	}

	// ── 5. Credentials ────────────────────────────────────────────────────
	hasher, err := sec.NewHasher(cfg.BcryptCost)
	must(log, err, "initialize password hasher")

	tokenService, err := sec.NewTokenService([]byte(cfg.JWTSecret), constants.AuthIssuer)
	must(log, err, "initialize token service")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	authService, err := auth.NewService(userRepository, hasher, tokenService, log)
	must(log, err, "initialize auth service")
	noteService := note.NewService(noteRepository, log)

	liveness, readiness := api.NewHealthHandlers(checks, log)

	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Note:      note.NewHandler(noteService),
	}

	server := api.NewServer(cfg, log, tokenService, limiter, handlers)

	// ── 7. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	log.Info("server_shutting_down", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		return
	}

	log.Info("server_stopped")
}

// newLogger builds the process logger tagged with the app name. Output is
// JSON unless readable is set, which gives key=value lines for local runs.
func newLogger(level slog.Level, readable bool) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, options)
	if readable {
		handler = slog.NewTextHandler(os.Stdout, options)
	}

	return slog.New(handler).With(slog.String(constants.FieldApp, constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
