package copybutton

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrClipboardUnavailable means there is no usable clipboard, e.g. the
	// capability is missing or the context is not secure.
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
	// ErrClipboardWriteFailed means the clipboard rejected the write.
	ErrClipboardWriteFailed = errors.New("clipboard write failed")
)

// Failure kinds as recorded by reporters.
const (
	KindUnavailable = "clipboard_unavailable"
	KindWriteFailed = "clipboard_write_failed"
)

// Kind classifies a copy error for reporting.
func Kind(err error) string {
	if errors.Is(err, ErrClipboardUnavailable) {
		return KindUnavailable
	}
	return KindWriteFailed
}

// Failure is one failed copy attempt.
type Failure struct {
	Text string
	Err  error
	At   time.Time
}

// Kind returns the failure classification.
func (f Failure) Kind() string { return Kind(f.Err) }

// Reporter receives copy failures. Failures are never fatal; the reporter
// only records them.
type Reporter interface {
	ReportCopyFailure(ctx context.Context, f Failure)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, f Failure)

func (fn ReporterFunc) ReportCopyFailure(ctx context.Context, f Failure) { fn(ctx, f) }

// NopReporter discards failures.
type NopReporter struct{}

func (NopReporter) ReportCopyFailure(context.Context, Failure) {}
