package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// runLogTimeFormat names run log files so they sort chronologically.
const runLogTimeFormat = "20060102-150405"

// RunLog is the per-run JSON log file written alongside terminal output.
type RunLog struct {
	file    *os.File
	handler slog.Handler

	// Path is the absolute path of the log file.
	Path string
}

// OpenRunLog creates a timestamped log file for the current run under
// the per-user state directory (e.g. ~/.local/state/kick/logs on Linux).
// All records down to Debug are kept in the file regardless of terminal
// verbosity.
func OpenRunLog(now time.Time) (*RunLog, error) {
	dir := filepath.Join(xdg.StateHome, "kick", "logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating log directory")
	}

	path := filepath.Join(dir, fmt.Sprintf("kick-%s.log", now.Format(runLogTimeFormat)))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, errors.Wrap(err, "opening run log")
	}

	return &RunLog{
		file:    f,
		handler: slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}),
		Path:    path,
	}, nil
}

// Handler returns the slog handler writing to the run log file.
func (l *RunLog) Handler() slog.Handler {
	return l.handler
}

// Close flushes and closes the log file. Safe to call on every exit path,
// including interruption; subsequent calls are no-ops.
func (l *RunLog) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
