package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_Stdout(t *testing.T) {
	logger, closer, err := New(Config{Level: "info", File: "-"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger == nil {
		t.Fatal("nil logger")
	}
	if closer != nil {
		t.Error("stdout logger returned a closer")
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.log")

	logger, closer, err := New(Config{Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if closer == nil {
		t.Fatal("file logger returned no closer")
	}

	logger.Info("hello", "workers", 4)
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing record: %q", data)
	}
}

func TestNew_BadPath(t *testing.T) {
	if _, _, err := New(Config{File: filepath.Join(t.TempDir(), "no", "such", "dir.log")}); err == nil {
		t.Error("New succeeded with unwritable path")
	}
}
