// Package config loads process configuration from an optional YAML file and the environment.
// Environment variables use the upper-cased key with "." replaced by "_" (db.host -> DB_HOST).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type App struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type HTTP struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxInFlight    int64         `mapstructure:"max_in_flight"`
	CORSOrigins    []string      `mapstructure:"cors_origins"`
}

type Log struct {
	Level      string `mapstructure:"level"`
	JSON       bool   `mapstructure:"json"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type DB struct {
	Driver          string        `mapstructure:"driver"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	InstanceName    string        `mapstructure:"instance"`
	DSN             string        `mapstructure:"dsn"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	RunMigrations   bool          `mapstructure:"run_migrations"`
}

type Redis struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether a Redis host is configured.
func (r Redis) Enabled() bool { return r.Host != "" }

// Addr returns host:port.
func (r Redis) Addr() string { return r.Host + ":" + r.Port }

type JWT struct {
	Secret string        `mapstructure:"secret"`
	Issuer string        `mapstructure:"issuer"`
	TTL    time.Duration `mapstructure:"ttl"`
}

type Password struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type RateLimit struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type Cache struct {
	StatsTTL time.Duration `mapstructure:"stats_ttl"`
}

type Validation struct {
	PhoneRegion string `mapstructure:"phone_region"`
}

// Seed holds the optional first administrator created by cmd/seed.
type Seed struct {
	AdminEmail     string `mapstructure:"admin_email"`
	AdminPassword  string `mapstructure:"admin_password"`
	AdminUsername  string `mapstructure:"admin_username"`
	AdminFirstname string `mapstructure:"admin_firstname"`
	AdminLastname  string `mapstructure:"admin_lastname"`
	AdminPhone     string `mapstructure:"admin_phone"`
}

type Config struct {
	App        App        `mapstructure:"app"`
	HTTP       HTTP       `mapstructure:"http"`
	Log        Log        `mapstructure:"log"`
	DB         DB         `mapstructure:"db"`
	Redis      Redis      `mapstructure:"redis"`
	JWT        JWT        `mapstructure:"jwt"`
	Password   Password   `mapstructure:"password"`
	RateLimit  RateLimit  `mapstructure:"ratelimit"`
	Cache      Cache      `mapstructure:"cache"`
	Validation Validation `mapstructure:"validation"`
	Seed       Seed       `mapstructure:"seed"`
}

// ErrMissingJWTSecret is returned when no signing secret is configured.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "account_backend")
	v.SetDefault("app.env", "development")

	v.SetDefault("http.host", "")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 15*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.request_timeout", 10*time.Second)
	v.SetDefault("http.max_in_flight", 256)
	v.SetDefault("http.cors_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)

	v.SetDefault("db.driver", "mysql")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "")
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", "3306")
	v.SetDefault("db.instance", "")
	v.SetDefault("db.dsn", "")
	v.SetDefault("db.connect_timeout", 60*time.Second)
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("db.run_migrations", false)

	v.SetDefault("redis.host", "")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "account_backend")
	v.SetDefault("jwt.ttl", 24*time.Hour)

	v.SetDefault("password.bcrypt_cost", 10)

	v.SetDefault("ratelimit.rps", 5.0)
	v.SetDefault("ratelimit.burst", 10)

	v.SetDefault("cache.stats_ttl", 5*time.Minute)

	v.SetDefault("validation.phone_region", "US")

	v.SetDefault("seed.admin_email", "")
	v.SetDefault("seed.admin_password", "")
	v.SetDefault("seed.admin_username", "admin")
	v.SetDefault("seed.admin_firstname", "Admin")
	v.SetDefault("seed.admin_lastname", "Admin")
	v.SetDefault("seed.admin_phone", "")
}

// Load reads configuration. path may be empty, in which case only defaults
// and the environment are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Names kept from the Cloud Run deployment.
	_ = v.BindEnv("db.instance", "INSTANCE_CONNECTION_NAME")
	_ = v.BindEnv("db.run_migrations", "RUN_MIGRATIONS")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks settings that have no safe default.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return ErrMissingJWTSecret
	}
	if c.JWT.TTL < 0 {
		return fmt.Errorf("jwt.ttl must not be negative: %s", c.JWT.TTL)
	}
	switch c.DB.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	return nil
}

// IsProduction reports whether the process runs with production settings.
func (c *Config) IsProduction() bool { return c.App.Env == "production" }
