package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWithoutPathIsNop(t *testing.T) {
	logger, err := New("debug", "")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if logger.Core().Enabled(-1) {
		t.Fatalf("expected a no-op logger")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mwu.log")
	logger, err := New("warn", path)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("dropped")
	logger.Warn("kept")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(data), "dropped") || !strings.Contains(string(data), "kept") {
		t.Fatalf("unexpected log contents: %s", data)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("loud", filepath.Join(t.TempDir(), "x.log")); err == nil {
		t.Fatalf("expected error")
	}
}
