// Package config loads the optional TOML configuration file. A missing
// file yields the defaults; flags override whatever is loaded.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Duration wraps time.Duration so the TOML file can say "30s" or "2m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

type Config struct {
	// Interface is the wireless interface to operate on; empty means use
	// the platform's current wireless interface.
	Interface string `toml:"interface" validate:"omitempty,printascii"`
	// Timeout bounds each external tool invocation.
	Timeout Duration `toml:"timeout"`
	// PowerCycleWait is the pause between radio off and on.
	PowerCycleWait Duration `toml:"power_cycle_wait"`
	// ForceNetworksetup always selects the external tool backend.
	ForceNetworksetup bool `toml:"force_networksetup"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Timeout:        Duration{30 * time.Second},
		PowerCycleWait: Duration{5 * time.Second},
	}
}

var validate = validator.New()

// Load reads the configuration at path, or the default location when path
// is empty. A nonexistent file at the default location is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = defaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.validateConfig(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validateConfig() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	// validator treats durations as plain integers, so range checks on
	// them stay manual.
	if c.Timeout.Duration <= 0 {
		return fmt.Errorf("timeout must be greater than zero, got %s", c.Timeout)
	}
	if c.PowerCycleWait.Duration < 0 {
		return fmt.Errorf("power_cycle_wait must not be negative, got %s", c.PowerCycleWait)
	}
	return nil
}

func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ssidshuffle", "config.toml")
}
