package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/inkwell-io/inkwell/pkg/chronology"
)

const (
	EnvEngineDisableRepair    = "INKWELL_ENGINE_DISABLE_REPAIR"
	EnvEngineDisableInference = "INKWELL_ENGINE_DISABLE_INFERENCE"
	EnvEngineMaxWindowDays    = "INKWELL_ENGINE_MAX_WINDOW_DAYS"
	EnvEngineAutoMinHits      = "INKWELL_ENGINE_AUTO_MIN_HITS"
	EnvEngineAutoScanPages    = "INKWELL_ENGINE_AUTO_SCAN_PAGES"
)

// EngineConfig holds date assignment engine parameters. Repair and
// inference are enabled unless explicitly disabled.
type EngineConfig struct {
	DisableRepair    bool `toml:"disable_repair"`
	DisableInference bool `toml:"disable_inference"`
	MaxWindowDays    int  `toml:"max_window_days"`
	AutoMinHits      int  `toml:"auto_min_hits"`
	AutoScanPages    int  `toml:"auto_scan_pages"`
}

// Policy returns the chronology policy described by this config.
func (c *EngineConfig) Policy() chronology.Policy {
	return chronology.Policy{
		AllowRepair:             !c.DisableRepair,
		AllowInferContinuations: !c.DisableInference,
		MaxWindowDays:           c.MaxWindowDays,
		AutoMinHits:             c.AutoMinHits,
		AutoScanPages:           c.AutoScanPages,
	}
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *EngineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites fields from overlay. Boolean fields always apply;
// numeric fields only when set.
func (c *EngineConfig) Merge(overlay *EngineConfig) {
	c.DisableRepair = overlay.DisableRepair
	c.DisableInference = overlay.DisableInference

	if overlay.MaxWindowDays != 0 {
		c.MaxWindowDays = overlay.MaxWindowDays
	}
	if overlay.AutoMinHits != 0 {
		c.AutoMinHits = overlay.AutoMinHits
	}
	if overlay.AutoScanPages != 0 {
		c.AutoScanPages = overlay.AutoScanPages
	}
}

func (c *EngineConfig) loadDefaults() {
	defaults := chronology.DefaultPolicy()

	if c.MaxWindowDays == 0 {
		c.MaxWindowDays = defaults.MaxWindowDays
	}
	if c.AutoMinHits == 0 {
		c.AutoMinHits = defaults.AutoMinHits
	}
	if c.AutoScanPages == 0 {
		c.AutoScanPages = defaults.AutoScanPages
	}
}

func (c *EngineConfig) loadEnv() {
	if v := os.Getenv(EnvEngineDisableRepair); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.DisableRepair = b
		}
	}
	if v := os.Getenv(EnvEngineDisableInference); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.DisableInference = b
		}
	}
	if v := os.Getenv(EnvEngineMaxWindowDays); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxWindowDays = n
		}
	}
	if v := os.Getenv(EnvEngineAutoMinHits); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.AutoMinHits = n
		}
	}
	if v := os.Getenv(EnvEngineAutoScanPages); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.AutoScanPages = n
		}
	}
}

func (c *EngineConfig) validate() error {
	if c.MaxWindowDays < 1 {
		return fmt.Errorf("max_window_days must be positive")
	}
	if c.AutoMinHits < 1 {
		return fmt.Errorf("auto_min_hits must be positive")
	}
	if c.AutoScanPages < 1 {
		return fmt.Errorf("auto_scan_pages must be positive")
	}
	return nil
}
