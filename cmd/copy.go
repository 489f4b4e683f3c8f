package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/homegarden/gardenpages/internal/clipboard"
	"github.com/homegarden/gardenpages/internal/copybutton"
	"github.com/homegarden/gardenpages/internal/dom"
	"github.com/homegarden/gardenpages/internal/notfound"
	"github.com/homegarden/gardenpages/internal/progress"
	"github.com/homegarden/gardenpages/internal/telemetry"
)

var (
	copyClicks int
	copyGap    time.Duration
	copyDryRun bool
	copyTick   = 50 * time.Millisecond
)

var copyCmd = &cobra.Command{
	Use:   "copy <path-or-url>",
	Short: "Press the copy button of the not-found page for a path",
	Long: `Renders the not-found page for a path, presses its copy button --clicks
times with --gap between presses, and follows the confirmation label until
it reverts. With --dry-run the text goes to an in-memory clipboard instead
of the system one.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if copyClicks < 1 {
			return fmt.Errorf("--clicks must be at least 1")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		page := pageFromArg(args[0])

		store, closeStore, err := openTelemetry(cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		var clip copybutton.Clipboard = clipboard.NewSystem()
		if copyDryRun {
			clip = clipboard.NewMemory()
		}

		view, err := notfound.Open(page, copybutton.Config{
			Clipboard:   clip,
			Reporter:    telemetry.NewReporter(logger, store),
			Logger:      logger,
			Labels:      cfg.Copy.Labels(),
			RevertAfter: cfg.Copy.RevertAfter(),
		})
		if err != nil {
			return fmt.Errorf("opening page: %w", err)
		}
		defer view.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		btn := view.CopyButton()
		label := buttonLabel(view.Document())
		fmt.Fprintf(out, "requested: %s\n", page.DisplayText)
		fmt.Fprintf(out, "button:    %s\n", label())

		var confirmedAt time.Time
		for i := 1; i <= copyClicks; i++ {
			if i > 1 && copyGap > 0 {
				select {
				case <-time.After(copyGap):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			res, err := btn.Activate(ctx)
			logger.Debug("copy button pressed", zap.Int("click", i), zap.Stringer("result", res))
			if res == copybutton.ResultCopied {
				confirmedAt = time.Now()
			}
			if err != nil {
				fmt.Fprintf(out, "click %d:   %s (%v)\n", i, res, err)
				continue
			}
			fmt.Fprintf(out, "click %d:   %s -> %s\n", i, res, label())
		}

		if btn.Phase() == copybutton.PhaseConfirming {
			watchRevert(ctx, btn, label, confirmedAt, cfg.Copy.RevertAfter(), progress.NewReporter(cmd.ErrOrStderr()))
		}
		if mem, ok := clip.(*clipboard.Memory); ok && mem.Writes() > 0 {
			fmt.Fprintf(out, "clipboard: %s\n", mem.Content())
		}
		fmt.Fprintf(out, "button:    %s\n", label())
		return nil
	},
}

// buttonLabel reads the copy button's current label from the document.
func buttonLabel(doc *dom.Document) func() string {
	el := doc.ByID(notfound.CopyButtonID)
	return func() string {
		if el == nil {
			return ""
		}
		text, aria := el.Label()
		return fmt.Sprintf("%s [%s]", text, aria)
	}
}

// watchRevert follows the confirmation window until the button leaves
// PhaseConfirming or ctx is cancelled.
func watchRevert(ctx context.Context, btn *copybutton.Affordance, label func() string, since time.Time, total time.Duration, rep progress.Reporter) {
	rep.Start(total, label())
	ticker := time.NewTicker(copyTick)
	defer ticker.Stop()

	for btn.Phase() == copybutton.PhaseConfirming {
		select {
		case <-ctx.Done():
			rep.Finish(label())
			return
		case <-ticker.C:
			elapsed := time.Since(since)
			if elapsed > total {
				elapsed = total
			}
			rep.Update(elapsed, label())
		}
	}
	rep.Update(total, label())
	rep.Finish(label())
}

func init() {
	copyCmd.Flags().IntVar(&copyClicks, "clicks", 1, "Number of times to press the button")
	copyCmd.Flags().DurationVar(&copyGap, "gap", 0, "Delay between presses")
	copyCmd.Flags().BoolVar(&copyDryRun, "dry-run", false, "Copy to an in-memory clipboard")
	rootCmd.AddCommand(copyCmd)
}
