package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string `env:"ENV" env-default:"local"`
	HTTP     HTTPConfig
	Log      LogConfig
	Storage  StorageConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
	Tasks    TasksConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:""`
	Port            string        `env:"HTTP_PORT" env-default:"3000"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type LogConfig struct {
	// File enables a rotating log file next to stdout when not empty.
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_FILE_MAX_SIZE_MB" env-default:"10"`
	MaxBackups int    `env:"LOG_FILE_MAX_BACKUPS" env-default:"3"`
	MaxAgeDays int    `env:"LOG_FILE_MAX_AGE_DAYS" env-default:"28"`
}

type StorageConfig struct {
	Driver             string        `env:"STORAGE_DRIVER" env-default:"memory"`
	BreakerMaxFailures uint32        `env:"STORAGE_BREAKER_MAX_FAILURES" env-default:"5"`
	BreakerTimeout     time.Duration `env:"STORAGE_BREAKER_TIMEOUT" env-default:"10s"`
}

type PostgresConfig struct {
	Host           string        `env:"POSTGRES_HOST" env-default:"localhost"`
	Port           int           `env:"POSTGRES_PORT" env-default:"5432"`
	Username       string        `env:"POSTGRES_USERNAME" env-default:"postgres"`
	Password       string        `env:"POSTGRES_PASSWORD"`
	Database       string        `env:"POSTGRES_DATABASE" env-default:"tasks"`
	SSLMode        string        `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
}

type MongoConfig struct {
	URI            string        `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database       string        `env:"MONGO_DATABASE" env-default:"tasks"`
	Collection     string        `env:"MONGO_COLLECTION" env-default:"tasks"`
	ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" env-default:"10s"`
}

type TasksConfig struct {
	// StrictDelete reports 404 when deleting a task that doesn't exist.
	StrictDelete bool `env:"TASKS_STRICT_DELETE" env-default:"false"`
}

func (c *Config) Validate() error {
	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		return fmt.Errorf("unknown env: %q", c.Env)
	}

	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres, StorageMongo:
	default:
		return fmt.Errorf("unknown storage driver: %q", c.Storage.Driver)
	}

	if c.HTTP.Port == "" {
		return errors.New("http port is required")
	}
	port, err := strconv.Atoi(c.HTTP.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid http port: %q", c.HTTP.Port)
	}
	return nil
}
