package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/avtools/qrcctl/internal/qrc"
)

// CoreConfig is the on-disk client configuration for one core.
type CoreConfig struct {
	Address     string `toml:"address"`
	User        string `toml:"user"`
	Password    string `toml:"password"`
	MetricsAddr string `toml:"metrics_addr"`

	DialTimeout  string `toml:"dial_timeout"`
	TickInterval string `toml:"tick_interval"`
	IdleTicks    int    `toml:"idle_ticks"`
}

func LoadCoreConfig(path string) (CoreConfig, error) {
	var cfg CoreConfig
	if err := loadToml(path, &cfg); err != nil {
		return CoreConfig{}, err
	}
	if err := ValidateCoreConfig(cfg); err != nil {
		return CoreConfig{}, err
	}
	return cfg, nil
}

func ValidateCoreConfig(cfg CoreConfig) error {
	if strings.TrimSpace(cfg.Address) == "" {
		return fmt.Errorf("config: address is required")
	}
	if cfg.IdleTicks < 0 {
		return fmt.Errorf("config: idle_ticks must not be negative")
	}
	for _, d := range []struct {
		name  string
		value string
	}{
		{"dial_timeout", cfg.DialTimeout},
		{"tick_interval", cfg.TickInterval},
	} {
		if strings.TrimSpace(d.value) == "" {
			continue
		}
		if _, err := time.ParseDuration(d.value); err != nil {
			return fmt.Errorf("config: parse %s: %w", d.name, err)
		}
	}
	return nil
}

// ClientConfig converts the file shape into engine timing, leaving unset
// fields to the engine defaults.
func (c CoreConfig) ClientConfig() qrc.Config {
	cfg := qrc.DefaultConfig()
	if v := strings.TrimSpace(c.DialTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.DialTimeout = d
		}
	}
	if v := strings.TrimSpace(c.TickInterval); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TickInterval = d
		}
	}
	if c.IdleTicks > 0 {
		cfg.IdleTicks = c.IdleTicks
	}
	return cfg
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}
