package cmd

import (
	"github.com/spf13/cobra"

	"github.com/homegarden/gardenpages/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize gardenpages configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the copy-URL control and failure telemetry, and writes the result to the config file (.gardenpages.yml by default).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
