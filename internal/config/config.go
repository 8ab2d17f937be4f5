package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"starwars-api/internal/infrastructure/database"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the whole application configuration.
// Populated from environment variables (a .env file is loaded by main).
type Config struct {
	App      AppConfig
	Database DatabaseConfig
}

type AppConfig struct {
	Name        string `env:"APP_NAME" envDefault:"Star Wars API"`
	Environment string `env:"APP_ENV" envDefault:"development"` // development, test, production
	Port        string `env:"APP_PORT" envDefault:"3000"`
	LogLevel    string `env:"LOG_LEVEL"`
}

type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER" envDefault:"postgres"` // postgres, sqlite

	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USERNAME" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Database string `env:"DB_DATABASE" envDefault:"starwars"`
	SSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	MaxConns          int32         `env:"DB_MAX_CONNS" envDefault:"25"`
	MinConns          int32         `env:"DB_MIN_CONNS" envDefault:"2"`
	MaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"5m"`
	MaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"1m"`
	HealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	MaxRetries        int           `env:"DB_MAX_RETRIES" envDefault:"5"`
	RetryDelay        time.Duration `env:"DB_RETRY_DELAY" envDefault:"1s"`
	ConnectTimeout    time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"10s"`

	// SyncRaw is DB_SYNC as given; empty means "on unless production".
	SyncRaw string `env:"DB_SYNC"`
	Sync    bool

	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/starwars.db"`
}

// Load reads config from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.App.Environment = strings.ToLower(strings.TrimSpace(cfg.App.Environment))
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))

	sync, err := resolveSync(cfg.Database.SyncRaw, cfg.App.Environment)
	if err != nil {
		return nil, err
	}
	cfg.Database.Sync = sync

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func resolveSync(raw, environment string) (bool, error) {
	if strings.TrimSpace(raw) == "" {
		return environment != EnvProduction, nil
	}
	sync, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("invalid DB_SYNC %q: %w", raw, err)
	}
	return sync, nil
}

// Validate checks the config is usable
func (c *Config) Validate() error {
	switch c.App.Environment {
	case EnvDevelopment, EnvTest, EnvProduction:
	default:
		return fmt.Errorf("APP_ENV must be one of development, test, production; got %q", c.App.Environment)
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			return fmt.Errorf("DB_PORT out of range: %d", c.Database.Port)
		}
		if c.Database.MinConns > c.Database.MaxConns {
			return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.Database.MinConns, c.Database.MaxConns)
		}
		// Production must have a real password
		if c.IsProduction() && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Database.SQLitePath) == "" {
			return fmt.Errorf("SQLITE_PATH must be set when DB_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite; got %q", c.Database.Driver)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

// ToDBConfig maps the postgres settings onto the pool config.
// SQL statements are traced only in development.
func (c *Config) ToDBConfig() *database.DBConfig {
	return &database.DBConfig{
		Host:              c.Database.Host,
		Port:              c.Database.Port,
		Username:          c.Database.User,
		Password:          c.Database.Password,
		DBName:            c.Database.Database,
		SSLMode:           c.Database.SSLMode,
		MaxConns:          c.Database.MaxConns,
		MinConns:          c.Database.MinConns,
		MaxConnLifetime:   c.Database.MaxConnLifetime,
		MaxConnIdleTime:   c.Database.MaxConnIdleTime,
		HealthCheckPeriod: c.Database.HealthCheckPeriod,
		MaxRetries:        c.Database.MaxRetries,
		RetryDelay:        c.Database.RetryDelay,
		ConnectTimeout:    c.Database.ConnectTimeout,
		LogQueries:        c.App.Environment == EnvDevelopment,
	}
}
