// Package db opens the gorm connection and migrates the schema.
package db

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	roleadapters "account_backend/internal/feature/role/adapters"
	useradapters "account_backend/internal/feature/user/adapters"
	"account_backend/internal/platform/config"
)

// retryInterval is the pause between connection attempts.
const retryInterval = 3 * time.Second

// ErrUnsupportedDriver is returned for a driver other than mysql, postgres or sqlite.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Opener opens a gorm connection for a DSN.
type Opener func(dsn string) (*gorm.DB, error)

// BuildDSN returns the DSN for cfg. An explicit DSN wins; otherwise a Cloud SQL
// instance name takes precedence over host and port.
func BuildDSN(cfg config.DB) string {
	if cfg.DSN != "" {
		return cfg.DSN
	}
	switch cfg.Driver {
	case "postgres":
		host := cfg.Host
		if cfg.InstanceName != "" {
			host = "/cloudsql/" + cfg.InstanceName
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			host, cfg.User, cfg.Password, cfg.Name)
		if cfg.InstanceName == "" && cfg.Port != "" {
			dsn += " port=" + cfg.Port
		}
		return dsn
	case "sqlite":
		if cfg.Name == "" {
			return "file::memory:?cache=shared"
		}
		return cfg.Name
	default:
		if cfg.InstanceName != "" {
			return fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
				cfg.User, cfg.Password, cfg.InstanceName, cfg.Name)
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)
	}
}

// slowQueryThreshold is the duration above which gorm logs a query as slow.
const slowQueryThreshold = 200 * time.Millisecond

// newGormLogger routes gorm's warnings into log. Lookups that find no row are
// an expected outcome for the repositories and are not logged.
func newGormLogger(log *zap.Logger) logger.Interface {
	std, err := zap.NewStdLogAt(log.Named("gorm"), zap.WarnLevel)
	if err != nil {
		std = zap.NewStdLog(log.Named("gorm"))
	}
	return logger.New(std, logger.Config{
		SlowThreshold:             slowQueryThreshold,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// OpenerFor returns the gorm opener for driver.
func OpenerFor(driver string, log *zap.Logger) (Opener, error) {
	var dial func(string) gorm.Dialector
	switch driver {
	case "", "mysql":
		dial = gmysql.Open
	case "postgres":
		dial = postgres.Open
	case "sqlite":
		dial = sqlite.Open
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	return func(dsn string) (*gorm.DB, error) {
		return gorm.Open(dial(dsn), &gorm.Config{
			Logger:         newGormLogger(log),
			TranslateError: true,
		})
	}, nil
}

// ConnectWithRetry calls open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener, log *zap.Logger) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for attempt := 1; ; attempt++ {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		log.Warn("DB connect failed, retrying", zap.Int("attempt", attempt), zap.Error(err))
		time.Sleep(retryInterval)
	}
}

// Open connects with cfg, applies pool settings and migrates when configured.
func Open(cfg config.DB, log *zap.Logger) (*gorm.DB, error) {
	open, err := OpenerFor(cfg.Driver, log)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(BuildDSN(cfg), cfg.ConnectTimeout, open, log)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "sqlite" {
		// SQLite serialises writers.
		sqlDB.SetMaxOpenConns(1)
	} else {
		if cfg.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		}
	}

	if cfg.RunMigrations {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Info("database migrated", zap.String("driver", cfg.Driver))
	}
	return db, nil
}

// Migrate creates or updates every table owned by the service.
func Migrate(db *gorm.DB) error {
	// マイグレーション（Role, User, RevokedToken）
	if err := db.AutoMigrate(
		&roleadapters.RoleModel{},
		&useradapters.UserModel{},
		&useradapters.RevokedTokenModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
