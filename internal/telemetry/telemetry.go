// Package telemetry records failed copy attempts. It is the error-reporting
// collaborator of the copy control: failures are logged and, when a store
// is configured, persisted for later inspection.
package telemetry

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/homegarden/gardenpages/internal/copybutton"
)

// Event is one persisted copy failure.
type Event struct {
	ID         string    `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	Kind       string    `json:"kind"`
	Text       string    `json:"text"`
	Error      string    `json:"error"`
}

// Reporter implements copybutton.Reporter on top of a zap logger and an
// optional Store.
type Reporter struct {
	logger *zap.Logger
	store  *Store
}

// NewReporter returns a Reporter. A nil logger logs nowhere; a nil store
// keeps failures in the log only.
func NewReporter(logger *zap.Logger, store *Store) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{logger: logger, store: store}
}

var _ copybutton.Reporter = (*Reporter)(nil)

// ReportCopyFailure logs f and stores it. Storage errors are logged and
// otherwise swallowed; reporting never fails the caller.
func (r *Reporter) ReportCopyFailure(ctx context.Context, f copybutton.Failure) {
	errText := ""
	if f.Err != nil {
		errText = f.Err.Error()
	}
	r.logger.Warn("copy to clipboard failed",
		zap.String("kind", f.Kind()),
		zap.String("text", f.Text),
		zap.String("error", errText),
	)

	if r.store == nil {
		return
	}
	at := f.At
	if at.IsZero() {
		at = time.Now()
	}
	ev := Event{OccurredAt: at, Kind: f.Kind(), Text: f.Text, Error: errText}
	if err := r.store.Log(ctx, ev); err != nil {
		r.logger.Error("storing copy failure", zap.Error(err))
	}
}
