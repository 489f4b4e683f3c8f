// Package copybuttontest provides deterministic collaborators for testing
// code built on copybutton.
package copybuttontest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/homegarden/gardenpages/internal/copybutton"
)

// Scheduler is a manually advanced copybutton.Scheduler. Callbacks run on
// the goroutine calling Advance, never while Scheduler's own lock is held.
type Scheduler struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*timer
}

type timer struct {
	s       *Scheduler
	at      time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *timer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

// NewScheduler returns a Scheduler at time zero.
func NewScheduler() *Scheduler { return &Scheduler{} }

func (s *Scheduler) AfterFunc(d time.Duration, f func()) copybutton.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &timer{s: s, at: s.now + d, seq: s.seq, f: f}
	s.timers = append(s.timers, t)
	return t
}

// Now returns the elapsed virtual time.
func (s *Scheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of armed timers.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves virtual time forward by d, firing due timers in order.
// It returns how many callbacks ran.
func (s *Scheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	fired := 0
	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return fired
		}
		next.fired = true
		s.now = next.at
		s.mu.Unlock()

		next.f()
		fired++
	}
}

func (s *Scheduler) nextDue(target time.Duration) *timer {
	var due []*timer
	for _, t := range s.timers {
		if !t.fired && !t.stopped && t.at <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

// Control records every label written to it.
type Control struct {
	mu      sync.Mutex
	history []copybutton.Label
}

func (c *Control) SetLabel(text, aria string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, copybutton.Label{Text: text, Aria: aria})
}

// Label returns the last label written, or the zero Label.
func (c *Control) Label() copybutton.Label {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.history) == 0 {
		return copybutton.Label{}
	}
	return c.history[len(c.history)-1]
}

// History returns a copy of every label written so far.
func (c *Control) History() []copybutton.Label {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]copybutton.Label(nil), c.history...)
}

// Text is a fixed copybutton.TextSource.
type Text string

func (t Text) Text() string { return string(t) }

// Clipboard records writes and can fail or block on demand.
type Clipboard struct {
	// Err is returned from every Write when set.
	Err error

	mu      sync.Mutex
	writes  []string
	gate    chan struct{}
	entered chan struct{}
}

// NewBlockingClipboard returns a Clipboard whose writes block until
// Release is called or the write context is done.
func NewBlockingClipboard() *Clipboard {
	return &Clipboard{
		gate:    make(chan struct{}),
		entered: make(chan struct{}, 16),
	}
}

func (c *Clipboard) Write(ctx context.Context, text string) error {
	c.mu.Lock()
	c.writes = append(c.writes, text)
	gate, entered := c.gate, c.entered
	c.mu.Unlock()

	if entered != nil {
		select {
		case entered <- struct{}{}:
		default:
		}
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return c.Err
}

// Entered signals each time a Write starts on a blocking Clipboard.
func (c *Clipboard) Entered() <-chan struct{} { return c.entered }

// Release unblocks all pending and future writes.
func (c *Clipboard) Release() { close(c.gate) }

// Writes returns every text passed to Write.
func (c *Clipboard) Writes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.writes...)
}

// Reporter records reported failures.
type Reporter struct {
	mu       sync.Mutex
	failures []copybutton.Failure
}

func (r *Reporter) ReportCopyFailure(_ context.Context, f copybutton.Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, f)
}

// Failures returns the recorded failures.
func (r *Reporter) Failures() []copybutton.Failure {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]copybutton.Failure(nil), r.failures...)
}
