package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestNewReporterCI(t *testing.T) {
	t.Setenv("CI", "true")
	if _, ok := NewReporter(&bytes.Buffer{}).(*CIReporter); !ok {
		t.Error("expected CIReporter when CI is set")
	}
}

func TestNewReporterTerminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	if _, ok := NewReporter(&bytes.Buffer{}).(*TerminalReporter); !ok {
		t.Error("expected TerminalReporter outside CI")
	}
}

func TestCIReporterPrintsLabelChanges(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{w: &buf}

	r.Start(2*time.Second, "URL Copied")
	r.Update(500*time.Millisecond, "URL Copied")
	r.Update(2*time.Second, "Copy URL")
	r.Finish("Copy URL")

	want := "[0ms/2000ms] URL Copied\n[2000ms/2000ms] Copy URL\n[done] Copy URL\n"
	if got := buf.String(); got != want {
		t.Errorf("output:\n%s\nwant:\n%s", got, want)
	}
}

func TestTerminalReporterFinishPrintsLabel(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{w: &buf}

	r.Start(time.Second, "URL Copied")
	r.Update(time.Second, "Copy URL")
	r.Finish("Copy URL")

	if !strings.HasSuffix(buf.String(), "Copy URL\n") {
		t.Errorf("output should end with the final label, got %q", buf.String())
	}
}

func TestTerminalReporterWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	r := &TerminalReporter{w: &buf}
	r.Update(time.Second, "x")
	r.Finish("done")
	if buf.String() != "done\n" {
		t.Errorf("got %q", buf.String())
	}
}
