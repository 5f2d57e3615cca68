package logging

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
)

func TestOpenRunLog(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()
	defer xdg.Reload()

	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	rl, err := OpenRunLog(now)
	if err != nil {
		t.Fatalf("OpenRunLog() error: %v", err)
	}
	defer rl.Close()

	if !strings.HasSuffix(rl.Path, "kick-20260314-150926.log") {
		t.Errorf("Path = %q, want timestamped name", rl.Path)
	}

	logger := slog.New(rl.Handler())
	logger.Debug("probe", "tool", "bun")

	if err := rl.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(rl.Path)
	if err != nil {
		t.Fatalf("reading run log: %v", err)
	}
	if !strings.Contains(string(data), `"tool":"bun"`) {
		t.Errorf("debug record missing from run log: %s", data)
	}
}

func TestRunLogCloseIdempotent(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()
	defer xdg.Reload()

	rl, err := OpenRunLog(time.Now())
	if err != nil {
		t.Fatalf("OpenRunLog() error: %v", err)
	}

	if err := rl.Close(); err != nil {
		t.Fatalf("first Close() error: %v", err)
	}
	if err := rl.Close(); err != nil {
		t.Errorf("second Close() should be a no-op, got %v", err)
	}

	var nilLog *RunLog
	if err := nilLog.Close(); err != nil {
		t.Errorf("nil Close() should be a no-op, got %v", err)
	}
}
