package log

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saltwedge.log")

	if err := InitWithFile(false, path); err != nil {
		t.Fatalf("InitWithFile() error = %v", err)
	}
	Infow("comparison complete", "id", "abc123")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"id":"abc123"`) {
		t.Errorf("log file missing structured field: %s", data)
	}
}

func TestHTTPLogger(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  string
	}{
		{"ok", http.StatusOK, "info"},
		{"client error", http.StatusUnprocessableEntity, "warn"},
		{"server error", http.StatusInternalServerError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.DebugLevel)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("body"))
			})

			req := httptest.NewRequest(http.MethodPost, "/api/compare", nil)
			req.Header.Set("X-Forwarded-For", "10.0.0.7")
			HTTPLogger(zap.New(core).Sugar())(next).ServeHTTP(httptest.NewRecorder(), req)

			entries := logs.All()
			if len(entries) != 1 {
				t.Fatalf("got %d log entries, expected 1", len(entries))
			}
			e := entries[0]
			if e.Level.String() != tt.level {
				t.Errorf("level = %s, expected %s", e.Level, tt.level)
			}
			fields := e.ContextMap()
			if fields["status"] != int64(tt.status) {
				t.Errorf("status field = %v, expected %d", fields["status"], tt.status)
			}
			if fields["remote_addr"] != "10.0.0.7" {
				t.Errorf("remote_addr = %v", fields["remote_addr"])
			}
		})
	}
}
