// Command seed creates the default roles and, when configured, the first administrator.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"account_backend/internal/app/di"
	"account_backend/internal/feature/user/domain/entity"
	"account_backend/internal/platform/config"
	"account_backend/internal/platform/db"
	"account_backend/internal/platform/logger"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.New(cfg.Log)
	defer cleanup()

	gdb, err := db.Open(cfg.DB, log)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	c := di.Build(cfg, gdb, nil, log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	roles, err := c.Roles.SeedDefaults(ctx)
	if err != nil {
		log.Fatal("failed to seed roles", zap.Error(err))
	}
	log.Info("roles seeded", zap.Int("created", len(roles)))

	s := cfg.Seed
	if s.AdminEmail == "" || s.AdminPassword == "" {
		log.Info("seed ok (no admin configured)")
		return
	}
	admin, created, err := c.Users.SeedAdmin(ctx, entity.Registration{
		Profile: entity.Profile{
			Firstname: s.AdminFirstname,
			Lastname:  s.AdminLastname,
			Username:  s.AdminUsername,
			Phone:     s.AdminPhone,
		},
		Email:    s.AdminEmail,
		Password: s.AdminPassword,
	})
	if err != nil {
		log.Fatal("failed to seed admin", zap.Error(err))
	}
	log.Info("seed ok", zap.Uint("admin_id", admin.ID), zap.Bool("created", created))
}
