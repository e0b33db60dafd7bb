// Package config читает настройки сервиса из переменных окружения.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config содержит настройки сервиса.
type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR"        envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	StorageDriver    string        `env:"STORAGE_DRIVER"     envDefault:"postgres"`
	DBDSN            string        `env:"DB_DSN"`
	DBMaxConns       int32         `env:"DB_MAX_CONNS"       envDefault:"10"`
	DBConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" envDefault:"30s"`
	MigrateOnStart   bool          `env:"MIGRATE_ON_START"   envDefault:"true"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB"          envDefault:"0"`
	LockWait      time.Duration `env:"LOCK_WAIT_TIMEOUT" envDefault:"5s"`
	LockTTL       time.Duration `env:"LOCK_TTL"          envDefault:"15s"`

	InviteCodeLength int           `env:"INVITE_CODE_LENGTH" envDefault:"8"`
	DepositTTL       time.Duration `env:"DEPOSIT_TTL"        envDefault:"30m"`
	SweepInterval    time.Duration `env:"SWEEP_INTERVAL"     envDefault:"1m"`
}

// Load разбирает окружение и проверяет согласованность настроек.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StorageDriver {
	case DriverPostgres:
		if c.DBDSN == "" {
			return errors.New("DB_DSN is required for the postgres storage driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.LockWait <= 0 || c.LockTTL <= 0 {
		return errors.New("LOCK_WAIT_TIMEOUT and LOCK_TTL must be positive")
	}
	if c.InviteCodeLength < 6 || c.InviteCodeLength > 32 {
		return errors.New("INVITE_CODE_LENGTH must be between 6 and 32")
	}
	if c.SweepInterval <= 0 || c.DepositTTL <= 0 {
		return errors.New("SWEEP_INTERVAL and DEPOSIT_TTL must be positive")
	}
	return nil
}
