package ocr

import (
	"fmt"
	"os"
	"time"
)

// Config holds OCR engine selection and Azure Vision connection parameters.
// Corrections is an optional path to a transcription fixup rules file.
type Config struct {
	Engine       string `toml:"engine"`
	Endpoint     string `toml:"endpoint"`
	Key          string `toml:"key"`
	Language     string `toml:"language"`
	PollInterval string `toml:"poll_interval"`
	Timeout      string `toml:"timeout"`
	Corrections  string `toml:"corrections"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Engine       string
	Endpoint     string
	Key          string
	Language     string
	PollInterval string
	Timeout      string
	Corrections  string
}

// PollIntervalDuration returns PollInterval as a time.Duration.
func (c *Config) PollIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.PollInterval)
	return d
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Engine != "" {
		c.Engine = overlay.Engine
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.Key != "" {
		c.Key = overlay.Key
	}
	if overlay.Language != "" {
		c.Language = overlay.Language
	}
	if overlay.PollInterval != "" {
		c.PollInterval = overlay.PollInterval
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.Corrections != "" {
		c.Corrections = overlay.Corrections
	}
}

func (c *Config) loadDefaults() {
	if c.Engine == "" {
		c.Engine = EngineAzure
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.PollInterval == "" {
		c.PollInterval = "700ms"
	}
	if c.Timeout == "" {
		c.Timeout = "2m"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Engine != "" {
		if v := os.Getenv(env.Engine); v != "" {
			c.Engine = v
		}
	}
	if env.Endpoint != "" {
		if v := os.Getenv(env.Endpoint); v != "" {
			c.Endpoint = v
		}
	}
	if env.Key != "" {
		if v := os.Getenv(env.Key); v != "" {
			c.Key = v
		}
	}
	if env.Language != "" {
		if v := os.Getenv(env.Language); v != "" {
			c.Language = v
		}
	}
	if env.PollInterval != "" {
		if v := os.Getenv(env.PollInterval); v != "" {
			c.PollInterval = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.Corrections != "" {
		if v := os.Getenv(env.Corrections); v != "" {
			c.Corrections = v
		}
	}
}

func (c *Config) validate() error {
	if c.Engine == EngineAzure {
		if c.Endpoint == "" {
			return fmt.Errorf("endpoint required")
		}
		if c.Key == "" {
			return fmt.Errorf("key required")
		}
	}
	if _, err := time.ParseDuration(c.PollInterval); err != nil {
		return fmt.Errorf("invalid poll_interval: %w", err)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
