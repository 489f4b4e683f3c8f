package clipboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/homegarden/gardenpages/internal/copybutton"
)

func mockSystem(t *testing.T, isUnsupported bool, write func(string) error) {
	t.Helper()
	oldWrite, oldUnsupported := writeAll, unsupported
	writeAll = write
	unsupported = func() bool { return isUnsupported }
	t.Cleanup(func() { writeAll, unsupported = oldWrite, oldUnsupported })
}

func TestSystemWrite(t *testing.T) {
	var got string
	mockSystem(t, false, func(s string) error { got = s; return nil })

	if err := NewSystem().Write(context.Background(), "/some/broken/path"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got != "/some/broken/path" {
		t.Errorf("wrote %q", got)
	}
}

func TestSystemUnsupported(t *testing.T) {
	mockSystem(t, true, func(string) error { t.Error("writeAll should not be called"); return nil })

	err := NewSystem().Write(context.Background(), "x")
	if !errors.Is(err, copybutton.ErrClipboardUnavailable) {
		t.Errorf("err = %v, want ErrClipboardUnavailable", err)
	}
}

func TestSystemWriteError(t *testing.T) {
	boom := errors.New("exit status 1")
	mockSystem(t, false, func(string) error { return boom })

	if err := NewSystem().Write(context.Background(), "x"); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestSystemWriteHonorsContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	mockSystem(t, false, func(string) error { <-release; return nil })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := NewSystem().Write(ctx, "x"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("err = %v, want deadline exceeded", err)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	m.Write(ctx, "a")
	m.Write(ctx, "b")
	if m.Content() != "b" || m.Writes() != 2 {
		t.Errorf("content=%q writes=%d, want b/2", m.Content(), m.Writes())
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := m.Write(cancelled, "c"); err == nil {
		t.Error("Write with cancelled context should fail")
	}
	if m.Content() != "b" {
		t.Errorf("content = %q after failed write", m.Content())
	}
}
