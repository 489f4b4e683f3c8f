package config

import (
	"time"

	"github.com/homegarden/gardenpages/internal/copybutton"
)

// Config is the top-level gardenpages configuration, corresponding to
// .gardenpages.yml.
type Config struct {
	Copy      CopyConfig      `yaml:"copy" koanf:"copy"`
	Telemetry TelemetryConfig `yaml:"telemetry" koanf:"telemetry"`
	Log       LogConfig       `yaml:"log" koanf:"log"`
}

// CopyConfig holds the settings of the copy-URL control.
type CopyConfig struct {
	RevertAfterMS int    `yaml:"revert_after_ms" koanf:"revert_after_ms"`
	IdleText      string `yaml:"idle_text" koanf:"idle_text"`
	IdleAria      string `yaml:"idle_aria" koanf:"idle_aria"`
	ConfirmText   string `yaml:"confirm_text" koanf:"confirm_text"`
	ConfirmAria   string `yaml:"confirm_aria" koanf:"confirm_aria"`
}

// RevertAfter returns how long the confirmation label stays up.
func (c CopyConfig) RevertAfter() time.Duration {
	return time.Duration(c.RevertAfterMS) * time.Millisecond
}

// Labels returns the configured control labels.
func (c CopyConfig) Labels() copybutton.Labels {
	return copybutton.Labels{
		Idle:    copybutton.Label{Text: c.IdleText, Aria: c.IdleAria},
		Confirm: copybutton.Label{Text: c.ConfirmText, Aria: c.ConfirmAria},
	}
}

// TelemetryConfig controls where copy failures are recorded.
type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	DBPath  string `yaml:"db_path" koanf:"db_path"`
}

// LogConfig controls the zap logger built by the CLI.
type LogConfig struct {
	Level       string `yaml:"level" koanf:"level"`
	Development bool   `yaml:"development" koanf:"development"`
}
