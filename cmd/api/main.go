// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

// Command api is the entry point for the Memoria HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Prepare the media root directory buckets.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buihoang/memoria/internal/access"
	"github.com/buihoang/memoria/internal/album"
	"github.com/buihoang/memoria/internal/api"
	"github.com/buihoang/memoria/internal/auth"
	"github.com/buihoang/memoria/internal/invite"
	"github.com/buihoang/memoria/internal/media"
	"github.com/buihoang/memoria/internal/photo"
	"github.com/buihoang/memoria/internal/platform/config"
	"github.com/buihoang/memoria/internal/platform/constants"
	"github.com/buihoang/memoria/internal/platform/mailer"
	"github.com/buihoang/memoria/internal/platform/middleware"
	"github.com/buihoang/memoria/internal/platform/migration"
	pgstore "github.com/buihoang/memoria/internal/platform/postgres"
	redisstore "github.com/buihoang/memoria/internal/platform/redis"
	"github.com/buihoang/memoria/internal/share"
	"github.com/buihoang/memoria/internal/tag"
)

// publicMediaPrefix is the session-surface media route prefix.
const publicMediaPrefix = "/api/v1/media"

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "memoria"))
	slog.SetDefault(log)

	log.Info("[Memoria] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "memoria"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Application context: cancelled on shutdown so background goroutines
	// (rate limiter cleanup) stop with the server.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Media Root ─────────────────────────────────────────────────────
	pipeline := media.NewPipeline(cfg.MediaRoot)
	must(log, pipeline.EnsureDirs(), "prepare media root")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CheckMediaRoot: func() error {
			info, err := os.Stat(cfg.MediaRoot)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("media root %s is not a directory", cfg.MediaRoot)
			}
			return nil
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewPostgresUserRepository(pool)
	sessionRepository := auth.NewPostgresSessionRepository(pool)
	authService := auth.NewService(userRepository, sessionRepository)

	photoRepository := photo.NewPostgresRepository(pool)
	albumRepository := album.NewPostgresRepository(pool)

	// The album repository is the live membership oracle for album shares.
	authorizer := access.NewAuthorizer(albumRepository)
	locator := media.NewLocator(photoRepository)

	photoService := photo.NewService(photoRepository, pipeline, locator, authorizer, publicMediaPrefix)
	albumService := album.NewService(albumRepository)
	tagService := tag.NewService(tag.NewPostgresRepository(pool))

	var mail mailer.Mailer
	if cfg.SendgridAPIKey != "" {
		mail = mailer.NewSendgrid(cfg.SendgridAPIKey, cfg.EmailFrom, cfg.AppURL, log)
	} else {
		log.Warn("sendgrid_key_missing_using_noop_mailer")
		mail = &mailer.NoopMailer{AppURL: cfg.AppURL, Log: log}
	}

	inviteService := invite.NewService(
		invite.NewPostgresRepository(pool),
		authService,
		mail,
		time.Duration(cfg.InviteExpiresDays)*24*time.Hour,
		log,
	)

	shareService := share.NewService(
		share.NewPostgresRepository(pool),
		photoService,
		albumService,
		time.Duration(cfg.ShareExpiresHours)*time.Hour,
	)

	// Abuse-sensitive routes get Redis-backed fixed windows on top of the
	// global in-memory limiter.
	loginLimit := middleware.WindowLimit(rdb, "login", constants.LoginRateLimitPerMinute, time.Minute)
	inviteLimit := middleware.WindowLimit(rdb, "invite", constants.InviteRateLimitPerMinute, time.Minute)
	shareLimit := middleware.WindowLimit(rdb, "share", constants.ShareRateLimitPerMinute, time.Minute)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, cfg.CookieSecure, loginLimit),
		Invite:    invite.NewHandler(inviteService, cfg.CookieSecure, inviteLimit),
		Photo:     photo.NewHandler(photoService, cfg.MaxUploadBytes()),
		Album:     album.NewHandler(albumService, photoService),
		Tag:       tag.NewHandler(tagService),
		Share:     share.NewHandler(shareService, shareLimit),
	}

	server := api.NewServer(appCtx, cfg, log, authService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
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
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
