package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/homegarden/gardenpages/internal/config"
	"github.com/homegarden/gardenpages/internal/copybutton"
	"github.com/homegarden/gardenpages/internal/db"
	"github.com/homegarden/gardenpages/internal/telemetry"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	// Flag values persist between executions of the same command tree.
	cfgFile, verbose = config.DefaultConfigFile, false
	renderAccept, renderMethod = "text/html", "GET"
	copyClicks, copyGap, copyDryRun = 1, 0, false
	failuresLimit, failuresKind, failuresSince = 20, "", 0
	pruneOlder = 30 * 24 * time.Hour

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".gardenpages.yml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "gardenpages dev\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRenderHTML(t *testing.T) {
	cfg := writeConfig(t, "telemetry:\n  enabled: false\n")
	out, err := run(t, "--config", cfg, "render", "/some/broken/path")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"/some/broken/path", "404 Not Found", "Copy URL", `class="btn-copy"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	cfg := writeConfig(t, "telemetry:\n  enabled: false\n")
	out, err := run(t, "--config", cfg, "render", "--accept", "application/json", "--method", "POST", "https://api.example.com/x?y=1")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("unmarshal %q: %v", out, err)
	}
	if body["message"] != "Cannot find POST /x" {
		t.Errorf("message = %v", body["message"])
	}
	if body["success"] != false {
		t.Errorf("success = %v", body["success"])
	}
}

func TestRenderAcceptsAnyPath(t *testing.T) {
	cfg := writeConfig(t, "telemetry:\n  enabled: false\n")
	tests := []struct {
		arg, want string
	}{
		{"/100%", "/100%"},
		{"/a%zz", "/a%zz"},
		{"/a\nb", "/ab"},
		{"/a\x7fb", "/ab"},
		{"", ""},
		{"http://bad host/x", "http://bad host/x"},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			out, err := run(t, "--config", cfg, "render", tt.arg)
			if err != nil {
				t.Fatalf("render %q: %v", tt.arg, err)
			}
			if !strings.Contains(out, `class="code-block" title="Requested URL">`+tt.want+`</code>`) {
				t.Errorf("code block for %q missing, output:\n%s", tt.arg, out)
			}
		})
	}
}

func TestPageFromArg(t *testing.T) {
	if got := pageFromArg("https://api.example.com/garden/42?x=1").RequestedPath; got != "/garden/42" {
		t.Errorf("absolute URL: RequestedPath = %q, want /garden/42", got)
	}
	if got := pageFromArg("/x?y=1").RequestedPath; got != "/x?y=1" {
		t.Errorf("bare path: RequestedPath = %q, want verbatim", got)
	}
}

func TestRenderInvalidConfig(t *testing.T) {
	cfg := writeConfig(t, "copy:\n  revert_after_ms: -5\n")
	if _, err := run(t, "--config", cfg, "render", "/x"); err == nil {
		t.Error("expected error for invalid config")
	}
}

func TestCopyDryRunDoubleClick(t *testing.T) {
	t.Setenv("CI", "true")
	cfg := writeConfig(t, "copy:\n  revert_after_ms: 100\ntelemetry:\n  enabled: false\n")

	out, err := run(t, "--config", cfg, "copy", "--dry-run", "--clicks", "2", "/some/broken/path")
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	for _, want := range []string{
		"click 1:   copied -> ✅ Copied! [URL Copied]",
		"click 2:   ignored -> ✅ Copied! [URL Copied]",
		"clipboard: /some/broken/path",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "button:    Copy URL [Copy URL]\n") {
		t.Errorf("label should revert to the original, output:\n%s", out)
	}
}

func TestCopyRejectsZeroClicks(t *testing.T) {
	if _, err := run(t, "copy", "--clicks", "0", "/x"); err == nil {
		t.Error("expected error for --clicks 0")
	}
}

func seedFailures(t *testing.T, path string, events ...telemetry.Event) {
	t.Helper()
	database, err := db.Open(path)
	if err != nil {
		t.Fatalf("db.Open: %v", err)
	}
	defer database.Close()
	store := telemetry.NewStore(database)
	for _, ev := range events {
		if err := store.Log(context.Background(), ev); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}
}

func TestFailuresListAndPrune(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "telemetry.db")
	seedFailures(t, dbPath,
		telemetry.Event{Kind: copybutton.KindWriteFailed, Text: "/recent", Error: "denied"},
		telemetry.Event{Kind: copybutton.KindUnavailable, Text: "/ancient", OccurredAt: time.Now().Add(-90 * 24 * time.Hour)},
	)
	cfg := writeConfig(t, "telemetry:\n  enabled: true\n  db_path: "+dbPath+"\n")

	out, err := run(t, "--config", cfg, "failures")
	if err != nil {
		t.Fatalf("failures: %v", err)
	}
	if !strings.Contains(out, "/recent") || !strings.Contains(out, "/ancient") {
		t.Errorf("listing missing events:\n%s", out)
	}
	if !strings.Contains(out, "Showing 2 of 2") {
		t.Errorf("listing missing totals:\n%s", out)
	}

	out, err = run(t, "--config", cfg, "failures", "prune")
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if out != "Deleted 1 copy failures.\n" {
		t.Errorf("prune output = %q", out)
	}

	out, err = run(t, "--config", cfg, "failures", "--kind", copybutton.KindUnavailable)
	if err != nil {
		t.Fatalf("failures: %v", err)
	}
	if !strings.Contains(out, "No copy failures recorded.") {
		t.Errorf("expected empty listing, got:\n%s", out)
	}
}

func TestFailuresTelemetryDisabled(t *testing.T) {
	cfg := writeConfig(t, "telemetry:\n  enabled: false\n")
	if _, err := run(t, "--config", cfg, "failures"); err == nil {
		t.Error("expected error when telemetry is disabled")
	}
}
