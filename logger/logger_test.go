package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vcdesk/config"
)

// go test -v --run TestNewInvalidLevel
func TestNewInvalidLevel(t *testing.T) {
	if _, err := New(config.LogConfig{Level: "loud"}); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

// go test -v --run TestNewWritesJSONFile
func TestNewWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "vcdesk.log")

	log, err := New(config.LogConfig{
		Level:       "info",
		Format:      "json",
		OutputFile:  path,
		Environment: "prod",
	})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	Named(log, "api").Info("request served")
	log.Debug("dropped below level")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %s", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "request served" || entry["logger"] != "api" || entry["env"] != "prod" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

// go test -v --run TestNamedNil
func TestNamedNil(t *testing.T) {
	Named(nil, "x").Info("no panic")
}
