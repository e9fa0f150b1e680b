package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"
	_ "go.uber.org/automaxprocs"
	"go.uber.org/zap"

	"account_backend/internal/app/di"
	"account_backend/internal/app/router"
	"account_backend/internal/platform/config"
	"account_backend/internal/platform/db"
	"account_backend/internal/platform/logger"
	infraredis "account_backend/internal/platform/redis"
	"account_backend/internal/platform/validation"
)

const maintenanceInterval = time.Minute

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.New(cfg.Log)
	defer cleanup()

	if err := validation.Register(cfg.Validation.PhoneRegion); err != nil {
		log.Fatal("validator registration failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(cfg.DB, log)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	// Redis（未設定または接続不可の場合はキャッシュなしで起動）
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewClient(ctx, cfg.Redis, log); err != nil {
			log.Warn("Redis unavailable. Running without cache.", zap.Error(err))
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Error("failed to close Redis client", zap.Error(err))
				}
			}()
		}
	}

	c := di.Build(cfg, gdb, rdb, log)

	// 既定ロールの作成（存在するものはスキップ）
	if created, err := c.Roles.SeedDefaults(ctx); err != nil {
		log.Fatal("role seeding failed", zap.Error(err))
	} else if len(created) > 0 {
		log.Info("default roles created", zap.Int("count", len(created)))
	}

	go c.RunMaintenance(ctx, maintenanceInterval)

	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:        router.NewRouter(c.Deps),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info("http starting", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 優雅な停止
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", zap.Error(err))
	}
	log.Info("http stopped")
}
