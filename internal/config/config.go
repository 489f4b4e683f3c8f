package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "GARDENPAGES_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (GARDENPAGES_*). A double underscore in a
// variable name separates nesting levels: GARDENPAGES_COPY__REVERT_AFTER_MS
// sets copy.revert_after_ms.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Copy.RevertAfterMS <= 0 {
		return fmt.Errorf("copy.revert_after_ms must be positive")
	}
	if c.Copy.IdleText == "" || c.Copy.IdleAria == "" {
		return fmt.Errorf("copy.idle_text and copy.idle_aria are required")
	}
	if c.Copy.ConfirmText == "" || c.Copy.ConfirmAria == "" {
		return fmt.Errorf("copy.confirm_text and copy.confirm_aria are required")
	}
	if c.Copy.IdleAria == c.Copy.ConfirmAria {
		return fmt.Errorf("copy.idle_aria and copy.confirm_aria must differ, got %q for both", c.Copy.IdleAria)
	}

	if c.Telemetry.Enabled && c.Telemetry.DBPath == "" {
		return fmt.Errorf("telemetry.db_path is required when telemetry is enabled")
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}

	return nil
}
