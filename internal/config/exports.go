package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvExportsMode            = "INKWELL_EXPORTS_MODE"
	EnvExportsFillMissingDays = "INKWELL_EXPORTS_FILL_MISSING_DAYS"
	EnvExportsPrefix          = "INKWELL_EXPORTS_PREFIX"
)

// ExportsConfig holds markdown export parameters.
type ExportsConfig struct {
	Mode            string `toml:"mode"`
	FillMissingDays bool   `toml:"fill_missing_days"`
	Prefix          string `toml:"prefix"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ExportsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites fields from overlay. The boolean field always applies.
func (c *ExportsConfig) Merge(overlay *ExportsConfig) {
	c.FillMissingDays = overlay.FillMissingDays

	if overlay.Mode != "" {
		c.Mode = overlay.Mode
	}
	if overlay.Prefix != "" {
		c.Prefix = overlay.Prefix
	}
}

func (c *ExportsConfig) loadDefaults() {
	if c.Mode == "" {
		c.Mode = "auto"
	}
	if c.Prefix == "" {
		c.Prefix = "exports"
	}
}

func (c *ExportsConfig) loadEnv() {
	if v := os.Getenv(EnvExportsMode); v != "" {
		c.Mode = v
	}
	if v := os.Getenv(EnvExportsFillMissingDays); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.FillMissingDays = b
		}
	}
	if v := os.Getenv(EnvExportsPrefix); v != "" {
		c.Prefix = v
	}
}

func (c *ExportsConfig) validate() error {
	switch c.Mode {
	case "auto", "date", "page":
		return nil
	default:
		return fmt.Errorf("invalid mode: %s", c.Mode)
	}
}
