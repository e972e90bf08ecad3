package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/tripwise/internal/catalog"
	"github.com/alexanderramin/tripwise/internal/handoff"
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config is the full tripwise configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Catalog CatalogConfig `yaml:"catalog"`
	Handoff HandoffConfig `yaml:"handoff"`
	Log     LogConfig     `yaml:"log"`
}

type StoreConfig struct {
	Driver        string `yaml:"driver"`
	Path          string `yaml:"path"`
	RedisAddr     string `yaml:"redis_addr,omitempty"`
	RedisPassword string `yaml:"redis_password,omitempty"`
	RedisDB       int    `yaml:"redis_db,omitempty"`
	RedisPrefix   string `yaml:"redis_prefix,omitempty"`
}

type CatalogConfig struct {
	Mode       string `yaml:"mode"`
	Endpoint   string `yaml:"endpoint,omitempty"`
	TimeoutMs  int    `yaml:"timeout_ms,omitempty"`
	MaxRetries int    `yaml:"max_retries"`
	LogCalls   bool   `yaml:"log_calls,omitempty"`
}

type SMTPConfig struct {
	Host string `yaml:"host,omitempty"`
	Port string `yaml:"port,omitempty"`
	User string `yaml:"user,omitempty"`
	Pass string `yaml:"pass,omitempty"`
	From string `yaml:"from,omitempty"`
}

type HandoffConfig struct {
	Channel   string     `yaml:"channel"`
	Recipient string     `yaml:"recipient,omitempty"`
	SMTP      SMTPConfig `yaml:"smtp,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// Home returns the tripwise data directory, ~/.tripwise.
func Home() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".tripwise"), nil
}

// Default returns the built-in configuration rooted at dir.
func Default(dir string) Config {
	cat := catalog.DefaultConfig()
	return Config{
		Store: StoreConfig{
			Driver:      DriverSQLite,
			Path:        filepath.Join(dir, "tripwise.db"),
			RedisAddr:   "localhost:6379",
			RedisPrefix: "tripwise:",
		},
		Catalog: CatalogConfig{
			Mode:       string(cat.Mode),
			Endpoint:   cat.Endpoint,
			TimeoutMs:  cat.TimeoutMs,
			MaxRetries: cat.MaxRetries,
		},
		Handoff: HandoffConfig{
			Channel: "stdout",
			SMTP:    SMTPConfig{Port: "587"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(dir, "tripwise.log"),
		},
	}
}

// Path returns the config file location: $TRIPWISE_CONFIG, or
// ~/.tripwise/config.yaml.
func Path() (string, error) {
	if v := os.Getenv("TRIPWISE_CONFIG"); v != "" {
		return v, nil
	}
	dir, err := Home()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load builds the configuration in layers: defaults, then the YAML file,
// then .env files, then TRIPWISE_* environment variables. A missing YAML or
// .env file is not an error. With no dotenv arguments ./.env is tried.
func Load(path string, dotenv ...string) (*Config, error) {
	dir, err := Home()
	if err != nil {
		return nil, err
	}
	cfg := Default(dir)

	if path == "" {
		if path, err = Path(); err != nil {
			return nil, err
		}
	}
	if err := mergeFile(&cfg, path); err != nil {
		return nil, err
	}

	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, f := range dotenv {
		// godotenv never overrides variables already set in the process.
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	str := func(name string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *int, min int) {
		if v := os.Getenv(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= min {
				*dst = n
			}
		}
	}

	str("TRIPWISE_STORE_DRIVER", &cfg.Store.Driver)
	str("TRIPWISE_DB", &cfg.Store.Path)
	str("TRIPWISE_REDIS_ADDR", &cfg.Store.RedisAddr)
	str("TRIPWISE_REDIS_PASSWORD", &cfg.Store.RedisPassword)
	num("TRIPWISE_REDIS_DB", &cfg.Store.RedisDB, 0)
	str("TRIPWISE_REDIS_PREFIX", &cfg.Store.RedisPrefix)

	str("TRIPWISE_CATALOG_MODE", &cfg.Catalog.Mode)
	str("TRIPWISE_CATALOG_ENDPOINT", &cfg.Catalog.Endpoint)
	num("TRIPWISE_CATALOG_TIMEOUT_MS", &cfg.Catalog.TimeoutMs, 1)
	num("TRIPWISE_CATALOG_MAX_RETRIES", &cfg.Catalog.MaxRetries, 0)
	if v := os.Getenv("TRIPWISE_CATALOG_LOG_CALLS"); v != "" {
		cfg.Catalog.LogCalls, _ = strconv.ParseBool(v)
	}

	str("TRIPWISE_HANDOFF_CHANNEL", &cfg.Handoff.Channel)
	str("TRIPWISE_HANDOFF_TO", &cfg.Handoff.Recipient)
	str("TRIPWISE_SMTP_HOST", &cfg.Handoff.SMTP.Host)
	str("TRIPWISE_SMTP_PORT", &cfg.Handoff.SMTP.Port)
	str("TRIPWISE_SMTP_USER", &cfg.Handoff.SMTP.User)
	str("TRIPWISE_SMTP_PASS", &cfg.Handoff.SMTP.Pass)
	str("TRIPWISE_SMTP_FROM", &cfg.Handoff.SMTP.From)

	str("TRIPWISE_LOG_LEVEL", &cfg.Log.Level)
	str("TRIPWISE_LOG_FORMAT", &cfg.Log.Format)
	str("TRIPWISE_LOG_FILE", &cfg.Log.File)
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverMemory:
	case DriverRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store driver redis needs redis_addr")
		}
	default:
		return fmt.Errorf("unknown store driver %q (want sqlite, redis or memory)", c.Store.Driver)
	}
	if c.Store.Driver == DriverSQLite && c.Store.Path == "" {
		return fmt.Errorf("store driver sqlite needs a path")
	}
	if err := c.CatalogSettings().Validate(); err != nil {
		return err
	}
	switch c.Handoff.Channel {
	case "stdout", "mailto", "smtp":
	default:
		return fmt.Errorf("unknown handoff channel %q (want stdout, mailto or smtp)", c.Handoff.Channel)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.Log.Format)
	}
	return nil
}

// CatalogSettings converts the catalog section for the catalog package.
func (c Config) CatalogSettings() catalog.Config {
	return catalog.Config{
		Mode:       catalog.Mode(c.Catalog.Mode),
		Endpoint:   c.Catalog.Endpoint,
		TimeoutMs:  c.Catalog.TimeoutMs,
		MaxRetries: c.Catalog.MaxRetries,
		LogCalls:   c.Catalog.LogCalls,
	}
}

// SMTPSettings converts the SMTP section for the handoff package.
func (c Config) SMTPSettings() handoff.SMTPConfig {
	s := c.Handoff.SMTP
	return handoff.SMTPConfig{Host: s.Host, Port: s.Port, User: s.User, Pass: s.Pass, From: s.From}
}

// Save writes cfg as YAML to path, creating the directory.
func Save(cfg Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
