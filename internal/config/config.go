package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

type Config struct {
	Server struct {
		Port string `yaml:"port" env:"PORT"`
	} `yaml:"server"`
	Verifier struct {
		BaseURL string `yaml:"base_url" env:"VERIFY_URL"`
		Timeout string `yaml:"timeout" env:"VERIFY_TIMEOUT"`
	} `yaml:"verifier"`
	Storage struct {
		Driver string `yaml:"driver" env:"STORAGE_DRIVER"`
		Path   string `yaml:"path" env:"STORAGE_PATH"`
	} `yaml:"storage"`
	Redis struct {
		Addr     string `yaml:"addr" env:"REDIS_ADDR"`
		Password string `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"REDIS_DB"`
		Prefix   string `yaml:"prefix" env:"REDIS_PREFIX"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url" env:"POSTGRES_URL"`
	} `yaml:"postgres"`
	Catalog struct {
		TTL string `yaml:"ttl" env:"CATALOG_TTL"`
	} `yaml:"catalog"`
	Progress struct {
		Interval string  `yaml:"interval" env:"PROGRESS_INTERVAL"`
		Ceiling  float64 `yaml:"ceiling" env:"PROGRESS_CEILING"`
		MaxStep  float64 `yaml:"max_step" env:"PROGRESS_MAX_STEP"`
	} `yaml:"progress"`
	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Verifier.Timeout = "60s"
	cfg.Storage.Driver = DriverSQLite
	cfg.Storage.Path = "data/progress.db"
	cfg.Catalog.TTL = "10m"
	cfg.Progress.Interval = "500ms"
	cfg.Progress.Ceiling = 90
	cfg.Progress.MaxStep = 30
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	return cfg
}

// Load reads YAML config from path over the defaults, then applies environment overrides.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks fields every command depends on.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	case DriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("storage driver %q requires redis.addr", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == DriverSQLite && c.Storage.Path == "" {
		return fmt.Errorf("storage driver %q requires storage.path", c.Storage.Driver)
	}
	if c.Progress.Ceiling < 0 || c.Progress.Ceiling >= 100 {
		return fmt.Errorf("progress.ceiling must be in [0, 100)")
	}
	return nil
}

// RequireVerifier reports a missing verification endpoint for commands that call it.
func (c Config) RequireVerifier() error {
	if c.Verifier.BaseURL == "" {
		return fmt.Errorf("verifier base url not configured (set verifier.base_url or VERIFY_URL)")
	}
	return nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
