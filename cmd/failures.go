package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/homegarden/gardenpages/internal/telemetry"
)

var (
	failuresLimit int
	failuresKind  string
	failuresSince time.Duration
	pruneOlder    time.Duration
)

var failuresCmd = &cobra.Command{
	Use:   "failures",
	Short: "List recorded copy failures",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := requireTelemetry()
		if err != nil {
			return err
		}
		defer closeStore()

		filter := telemetry.QueryFilter{Kind: failuresKind, Limit: failuresLimit}
		if failuresSince > 0 {
			since := time.Now().Add(-failuresSince)
			filter.Since = &since
		}
		events, err := store.Query(cmd.Context(), filter)
		if err != nil {
			return err
		}
		total, err := store.Count(cmd.Context(), failuresKind)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No copy failures recorded.")
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tKIND\tTEXT\tERROR")
		for _, ev := range events {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ev.OccurredAt.Local().Format(time.DateTime), ev.Kind, ev.Text, ev.Error)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "\nShowing %d of %d\n", len(events), total)
		return nil
	},
}

var failuresPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete recorded copy failures older than --older-than",
	RunE: func(cmd *cobra.Command, args []string) error {
		if pruneOlder <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}
		store, closeStore, err := requireTelemetry()
		if err != nil {
			return err
		}
		defer closeStore()

		n, err := store.DeleteBefore(cmd.Context(), time.Now().Add(-pruneOlder))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d copy failures.\n", n)
		return nil
	},
}

func requireTelemetry() (*telemetry.Store, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Telemetry.Enabled {
		return nil, nil, fmt.Errorf("telemetry is disabled in %s", cfgFile)
	}
	return openTelemetry(cfg)
}

func init() {
	failuresCmd.Flags().IntVar(&failuresLimit, "limit", 20, "Maximum number of failures to list (0 = all)")
	failuresCmd.Flags().StringVar(&failuresKind, "kind", "", "Only list failures of this kind (clipboard_unavailable, clipboard_write_failed)")
	failuresCmd.Flags().DurationVar(&failuresSince, "since", 0, "Only list failures newer than this (e.g. 24h)")
	failuresPruneCmd.Flags().DurationVar(&pruneOlder, "older-than", 30*24*time.Hour, "Delete failures older than this")
	failuresCmd.AddCommand(failuresPruneCmd)
	rootCmd.AddCommand(failuresCmd)
}
