package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/inkwell-io/inkwell/internal/index"
	"github.com/inkwell-io/inkwell/internal/ocr"
	"github.com/inkwell-io/inkwell/pkg/database"
	"github.com/inkwell-io/inkwell/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvInkwellEnv             = "INKWELL_ENV"
	EnvInkwellShutdownTimeout = "INKWELL_SHUTDOWN_TIMEOUT"
	EnvInkwellVersion         = "INKWELL_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "INKWELL_DB_HOST",
	Port:            "INKWELL_DB_PORT",
	Name:            "INKWELL_DB_NAME",
	User:            "INKWELL_DB_USER",
	Password:        "INKWELL_DB_PASSWORD",
	SSLMode:         "INKWELL_DB_SSL_MODE",
	MaxOpenConns:    "INKWELL_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "INKWELL_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "INKWELL_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "INKWELL_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "INKWELL_STORAGE_CONTAINER_NAME",
	ConnectionString: "INKWELL_STORAGE_CONNECTION_STRING",
	MaxListSize:      "INKWELL_STORAGE_MAX_LIST_SIZE",
}

var ocrEnv = &ocr.Env{
	Engine:       "INKWELL_OCR_ENGINE",
	Endpoint:     "INKWELL_OCR_ENDPOINT",
	Key:          "INKWELL_OCR_KEY",
	Language:     "INKWELL_OCR_LANGUAGE",
	PollInterval: "INKWELL_OCR_POLL_INTERVAL",
	Timeout:      "INKWELL_OCR_TIMEOUT",
	Corrections:  "INKWELL_OCR_CORRECTIONS",
}

var indexEnv = &index.Env{
	Path: "INKWELL_INDEX_PATH",
}

// Config is the root configuration for the Inkwell service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	OCR             ocr.Config      `toml:"ocr"`
	Index           index.Config    `toml:"index"`
	Engine          EngineConfig    `toml:"engine"`
	Exports         ExportsConfig   `toml:"exports"`
	API             APIConfig       `toml:"api"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the INKWELL_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvInkwellEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.OCR.Merge(&overlay.OCR)
	c.Index.Merge(&overlay.Index)
	c.Engine.Merge(&overlay.Engine)
	c.Exports.Merge(&overlay.Exports)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.OCR.Finalize(ocrEnv); err != nil {
		return fmt.Errorf("ocr: %w", err)
	}
	if err := c.Index.Finalize(indexEnv); err != nil {
		return fmt.Errorf("index: %w", err)
	}
	if err := c.Engine.Finalize(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := c.Exports.Finalize(); err != nil {
		return fmt.Errorf("exports: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvInkwellShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvInkwellVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvInkwellEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
