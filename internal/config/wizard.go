package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Configure the copy-URL control of the not-found page.")
	fmt.Println()

	def := DefaultConfig()

	// 1. Revert duration.
	revertPrompt := promptui.Prompt{
		Label:    "Confirmation duration (ms)",
		Default:  strconv.Itoa(def.Copy.RevertAfterMS),
		Validate: validatePositiveInt,
	}
	revertStr, err := revertPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("confirmation duration: %w", err)
	}
	revertMS, _ := strconv.Atoi(revertStr)

	// 2. Labels.
	labels := []struct {
		label string
		dst   *string
		def   string
	}{
		{"Button text", &def.Copy.IdleText, def.Copy.IdleText},
		{"Button accessible name", &def.Copy.IdleAria, def.Copy.IdleAria},
		{"Confirmation text", &def.Copy.ConfirmText, def.Copy.ConfirmText},
		{"Confirmation accessible name", &def.Copy.ConfirmAria, def.Copy.ConfirmAria},
	}
	for _, l := range labels {
		p := promptui.Prompt{Label: l.label, Default: l.def, Validate: validateNonEmpty}
		v, err := p.Run()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.label, err)
		}
		*l.dst = v
	}

	// 3. Telemetry.
	telemetryPrompt := promptui.Select{
		Label: "Record copy failures",
		Items: []string{
			"yes: store failures in SQLite",
			"no:  log only",
		},
	}
	telemetryIdx, _, err := telemetryPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("telemetry selection: %w", err)
	}

	cfg := def
	cfg.Copy.RevertAfterMS = revertMS
	cfg.Telemetry.Enabled = telemetryIdx == 0

	if cfg.Telemetry.Enabled {
		dbPrompt := promptui.Prompt{
			Label:   "Telemetry database path",
			Default: DefaultDBPath,
		}
		dbPath, err := dbPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("database path: %w", err)
		}
		cfg.Telemetry.DBPath = dbPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("must be a whole number of milliseconds")
	}
	if n <= 0 {
		return errors.New("must be positive")
	}
	return nil
}

func validateNonEmpty(s string) error {
	if s == "" {
		return errors.New("must not be empty")
	}
	return nil
}
