// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

// Command seed provisions the initial admin account.
//
// It reads ADMIN_EMAIL and ADMIN_PASSWORD from the environment and is
// idempotent: an existing account with that email gets its password and
// role refreshed instead of failing. Run once after the first migration,
// or any time the admin credentials need to be reset.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/buihoang/memoria/internal/access"
	"github.com/buihoang/memoria/internal/auth"
	"github.com/buihoang/memoria/internal/platform/config"
	"github.com/buihoang/memoria/internal/platform/migration"
	pgstore "github.com/buihoang/memoria/internal/platform/postgres"
	"github.com/buihoang/memoria/internal/platform/sec"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})).With(slog.String("app", "memoria-seed"))

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Error("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	users := auth.NewPostgresUserRepository(pool)
	sessions := auth.NewPostgresSessionRepository(pool)
	service := auth.NewService(users, sessions)

	// Idempotency: refresh the password of an existing admin account
	// instead of failing on the unique email constraint.
	existing, err := users.FindByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		passwordHash, err := sec.HashPassword(cfg.AdminPassword)
		must(log, err, "hash admin password")
		must(log, users.UpdatePassword(ctx, existing.ID, passwordHash), "update admin password")
		log.Info("admin_password_refreshed", slog.String("user_id", existing.ID))
		return
	}

	user, err := service.CreateAccount(ctx, cfg.AdminEmail, cfg.AdminPassword, access.RoleAdmin)
	must(log, err, "create admin account")

	log.Info("admin_account_created",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("seed failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
