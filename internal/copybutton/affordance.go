// Package copybutton drives the copy-to-clipboard control of the not-found
// page.
//
// An Affordance moves idle → copying → confirming → idle. While a write is
// in flight or the confirmation label is showing, further activations are
// dropped rather than queued, so a burst of clicks produces one clipboard
// write and one revert. The original label is captured once when the
// confirmation is shown and is the only value ever restored.
package copybutton

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Config holds the collaborators and settings of an Affordance. Zero values
// select the defaults noted on each field.
type Config struct {
	Clipboard   Clipboard     // nil = every activation fails with ErrClipboardUnavailable
	Scheduler   Scheduler     // nil = RealScheduler
	Reporter    Reporter      // nil = NopReporter
	Logger      *zap.Logger   // nil = zap.NewNop()
	Labels      Labels        // zero = DefaultLabels()
	RevertAfter time.Duration // <= 0 = DefaultRevertAfter
}

func (c *Config) defaults() {
	if c.Scheduler == nil {
		c.Scheduler = RealScheduler{}
	}
	if c.Reporter == nil {
		c.Reporter = NopReporter{}
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Labels == (Labels{}) {
		c.Labels = DefaultLabels()
	}
	if c.RevertAfter <= 0 {
		c.RevertAfter = DefaultRevertAfter
	}
}

// Affordance is the state of one copy control. It is safe for use from
// multiple goroutines; every transition runs under a single lock, including
// the write to the Control, so observers never see a half-applied label.
type Affordance struct {
	cfg  Config
	text string
	ctl  Control

	mu       sync.Mutex
	phase    Phase
	captured Label
	pending  Timer
	gen      uint64
}

// New binds an Affordance to the text held by src and to ctl. The text is
// read once here and never again. The control is reset to the idle label.
func New(src TextSource, ctl Control, cfg Config) *Affordance {
	cfg.defaults()
	a := &Affordance{
		cfg:  cfg,
		text: src.Text(),
		ctl:  ctl,
	}
	ctl.SetLabel(cfg.Labels.Idle.Text, cfg.Labels.Idle.Aria)
	return a
}

// Text returns the text this affordance copies.
func (a *Affordance) Text() string { return a.text }

// Phase returns the current phase.
func (a *Affordance) Phase() Phase {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.phase
}

// Activate handles one user activation. An activation that arrives while a
// write is in flight, while the confirmation is showing, or after Close is
// a no-op. A failed write leaves the control idle and untouched; the error
// is handed to the Reporter and also returned. A write cut short by ctx is
// returned as the context error and not reported.
func (a *Affordance) Activate(ctx context.Context) (Result, error) {
	a.mu.Lock()
	switch a.phase {
	case PhaseClosed:
		a.mu.Unlock()
		return ResultClosed, nil
	case PhaseCopying, PhaseConfirming:
		phase := a.phase
		a.mu.Unlock()
		a.cfg.Logger.Debug("activation ignored", zap.Stringer("phase", phase))
		return ResultIgnored, nil
	}
	a.phase = PhaseCopying
	a.mu.Unlock()

	err := a.write(ctx)

	a.mu.Lock()
	if a.phase == PhaseClosed {
		a.mu.Unlock()
		return ResultClosed, nil
	}
	if err != nil {
		a.phase = PhaseIdle
		a.mu.Unlock()

		if canceled(err) {
			a.cfg.Logger.Debug("copy abandoned", zap.Error(err))
			return ResultFailed, err
		}
		a.cfg.Logger.Warn("copy failed", zap.String("kind", Kind(err)), zap.Error(err))
		a.cfg.Reporter.ReportCopyFailure(ctx, Failure{Text: a.text, Err: err, At: time.Now()})
		return ResultFailed, err
	}

	a.captured = a.cfg.Labels.Idle
	a.phase = PhaseConfirming
	a.ctl.SetLabel(a.cfg.Labels.Confirm.Text, a.cfg.Labels.Confirm.Aria)
	a.gen++
	gen := a.gen
	a.pending = a.cfg.Scheduler.AfterFunc(a.cfg.RevertAfter, func() { a.revert(gen) })
	a.mu.Unlock()

	a.cfg.Logger.Debug("copied", zap.Int("bytes", len(a.text)), zap.Duration("revert_after", a.cfg.RevertAfter))
	return ResultCopied, nil
}

func (a *Affordance) write(ctx context.Context) error {
	if a.cfg.Clipboard == nil {
		return ErrClipboardUnavailable
	}
	err := a.cfg.Clipboard.Write(ctx, a.text)
	switch {
	case err == nil:
		return nil
	case canceled(err), errors.Is(err, ErrClipboardUnavailable), errors.Is(err, ErrClipboardWriteFailed):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrClipboardWriteFailed, err)
	}
}

// canceled reports whether err comes from the caller's context rather than
// from the clipboard.
func canceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// revert restores the captured label. Firings from a superseded timer, or
// after Close, do nothing.
func (a *Affordance) revert(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.phase != PhaseConfirming || a.gen != gen {
		return
	}
	a.ctl.SetLabel(a.captured.Text, a.captured.Aria)
	a.phase = PhaseIdle
	a.pending = nil
}

// Close tears the affordance down: the pending revert, if any, is cancelled
// and later activations return ResultClosed. Close is idempotent and always
// returns nil.
func (a *Affordance) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.phase == PhaseClosed {
		return nil
	}
	if a.pending != nil {
		a.pending.Stop()
		a.pending = nil
	}
	a.phase = PhaseClosed
	return nil
}
