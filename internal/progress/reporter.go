// Package progress shows how much of a copy confirmation window has elapsed.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides feedback while a confirmation label is showing.
type Reporter interface {
	Start(total time.Duration, label string)
	Update(elapsed time.Duration, label string)
	Finish(label string)
}

// NewReporter returns a TerminalReporter writing to w, or a CIReporter if
// the CI environment variable is set.
func NewReporter(w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{w: w}
	}
	return &TerminalReporter{w: w}
}

// TerminalReporter displays a countdown bar in the terminal.
type TerminalReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total time.Duration, label string) {
	r.bar = progressbar.NewOptions64(total.Milliseconds(),
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(label),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(0),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(elapsed time.Duration, label string) {
	if r.bar != nil {
		r.bar.Describe(label)
		_ = r.bar.Set64(elapsed.Milliseconds())
	}
}

func (r *TerminalReporter) Finish(label string) {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
	fmt.Fprintln(r.w, label)
}

// CIReporter prints line-by-line progress suitable for CI logs. Only label
// changes are printed.
type CIReporter struct {
	w     io.Writer
	total time.Duration
	last  string
}

func (r *CIReporter) Start(total time.Duration, label string) {
	r.total = total
	r.last = label
	fmt.Fprintf(r.w, "[0ms/%dms] %s\n", total.Milliseconds(), label)
}

func (r *CIReporter) Update(elapsed time.Duration, label string) {
	if label == r.last {
		return
	}
	r.last = label
	fmt.Fprintf(r.w, "[%dms/%dms] %s\n", elapsed.Milliseconds(), r.total.Milliseconds(), label)
}

func (r *CIReporter) Finish(label string) {
	fmt.Fprintf(r.w, "[done] %s\n", label)
}
