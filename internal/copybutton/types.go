package copybutton

import (
	"context"
	"time"
)

// DefaultRevertAfter is how long the confirmation label stays up.
const DefaultRevertAfter = 2000 * time.Millisecond

// Phase is the lifecycle position of one Affordance.
type Phase int

const (
	PhaseIdle Phase = iota
	// PhaseCopying means a clipboard write is in flight. Activations are
	// ignored exactly as in PhaseConfirming.
	PhaseCopying
	PhaseConfirming
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCopying:
		return "copying"
	case PhaseConfirming:
		return "confirming"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Result describes what a single activation did.
type Result int

const (
	ResultCopied Result = iota
	ResultIgnored
	ResultFailed
	ResultClosed
)

func (r Result) String() string {
	switch r {
	case ResultCopied:
		return "copied"
	case ResultIgnored:
		return "ignored"
	case ResultFailed:
		return "failed"
	case ResultClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Label is the visible text and accessible name of the control. Both
// halves are always written together.
type Label struct {
	Text string
	Aria string
}

// Labels holds the two fixed labels the control alternates between.
type Labels struct {
	Idle    Label
	Confirm Label
}

// DefaultLabels returns the labels used by the not-found page.
func DefaultLabels() Labels {
	return Labels{
		Idle:    Label{Text: "Copy URL", Aria: "Copy URL"},
		Confirm: Label{Text: "✅ Copied!", Aria: "URL Copied"},
	}
}

// TextSource is the DOM node holding the text to copy.
type TextSource interface {
	Text() string
}

// Control is the interactive node the affordance writes its label to.
// Implementations must not call back into the Affordance.
type Control interface {
	SetLabel(text, aria string)
}

// Clipboard writes text to the clipboard. Write may block; it should honor
// ctx cancellation.
type Clipboard interface {
	Write(ctx context.Context, text string) error
}

// Timer is a handle to a scheduled callback.
type Timer interface {
	Stop() bool
}

// Scheduler arms callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules on the runtime timer heap.
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
