package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/homegarden/gardenpages/internal/copybutton"
	"github.com/homegarden/gardenpages/internal/db"
	"github.com/homegarden/gardenpages/internal/telemetry"
)

func newStore(t *testing.T) *telemetry.Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return telemetry.NewStore(database)
}

func TestHealthCheck(t *testing.T) {
	srv := New(Config{Port: 0}, nil, nil)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := New(Config{Port: 0, AllowAll: true}, nil, nil)

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestServesCopyFailures(t *testing.T) {
	store := newStore(t)
	if err := store.Log(context.Background(), telemetry.Event{ID: "f1", Kind: copybutton.KindWriteFailed, Text: "/some/broken/path"}); err != nil {
		t.Fatalf("Log: %v", err)
	}
	srv := New(Config{}, store, nil)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/api/copy-failures/f1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var ev telemetry.Event
	if err := json.Unmarshal(w.Body.Bytes(), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Text != "/some/broken/path" {
		t.Errorf("event = %+v", ev)
	}
}

func TestWithoutStoreHasNoAPI(t *testing.T) {
	srv := New(Config{}, nil, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/api/copy-failures/", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestShutdownBeforeStart(t *testing.T) {
	if err := New(Config{}, nil, nil).Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}
