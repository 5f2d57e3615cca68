// Package logging provides structured logging for the kick CLI using slog.
//
// The package supports text and JSON output formats, configurable log levels,
// a per-run JSON log file under the user's state directory, and helpers for
// testing. All loggers are based on the standard library's [log/slog] package.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("installing", "tool", "nvm")
//
// # Run Logs
//
// Each CLI invocation writes a timestamped JSON log file via [OpenRunLog];
// fan-out to both the terminal and the file goes through [MultiHandler].
// Close the run log on every exit path, including interruption.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework,
// or [NewDiscard] when output should be suppressed entirely.
package logging
