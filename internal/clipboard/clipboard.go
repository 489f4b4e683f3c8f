// Package clipboard provides copybutton.Clipboard implementations.
package clipboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/homegarden/gardenpages/internal/copybutton"
)

// writeAll and unsupported are package-level to allow mocking in tests.
var (
	writeAll    = clipboard.WriteAll
	unsupported = func() bool { return clipboard.Unsupported }
)

// System writes to the operating system clipboard (pbcopy, xclip, xsel,
// wl-copy or the Windows API, whichever atotto/clipboard finds).
type System struct{}

// NewSystem returns the OS clipboard.
func NewSystem() *System { return &System{} }

func (s *System) Write(ctx context.Context, text string) error {
	if unsupported() {
		return fmt.Errorf("no clipboard utility found: %w", copybutton.ErrClipboardUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	write := writeAll
	done := make(chan error, 1)
	go func() { done <- write(text) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Memory is an in-process clipboard, used for dry runs.
type Memory struct {
	mu      sync.Mutex
	content string
	writes  int
}

// NewMemory returns an empty in-process clipboard.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = text
	m.writes++
	return nil
}

// Content returns the last text written.
func (m *Memory) Content() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.content
}

// Writes returns how many writes succeeded.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
