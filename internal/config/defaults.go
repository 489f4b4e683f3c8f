package config

import (
	"path/filepath"

	"github.com/homegarden/gardenpages/internal/copybutton"
)

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = ".gardenpages.yml"

// DefaultDBPath is where copy failures are stored by default.
var DefaultDBPath = filepath.Join(".gardenpages", "telemetry.db")

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	labels := copybutton.DefaultLabels()
	return &Config{
		Copy: CopyConfig{
			RevertAfterMS: int(copybutton.DefaultRevertAfter.Milliseconds()),
			IdleText:      labels.Idle.Text,
			IdleAria:      labels.Idle.Aria,
			ConfirmText:   labels.Confirm.Text,
			ConfirmAria:   labels.Confirm.Aria,
		},
		Telemetry: TelemetryConfig{
			Enabled: true,
			DBPath:  DefaultDBPath,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
