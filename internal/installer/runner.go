package installer

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"time"
)

const (
	// DefaultTimeout is the wall-clock limit applied to install commands
	// that do not specify their own.
	DefaultTimeout = 5 * time.Minute

	// RetryDelay is the wait before the first retry. Each further retry
	// doubles the wait, keeping the attempt schedule deterministic.
	RetryDelay = time.Second
)

// Command describes one external command invocation.
type Command struct {
	// Line is a shell command line, executed through "bash -c". Install
	// mechanisms are published as shell one-liners (pipes, &&, source),
	// so the shell form is the primitive.
	Line string

	// Timeout is the hard wall-clock limit per attempt. Zero means
	// DefaultTimeout.
	Timeout time.Duration

	// MaxRetries is the number of additional attempts after a non-zero
	// exit or timeout. Zero means a single attempt.
	MaxRetries int
}

// CommandResult is the outcome of the final attempt.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
}

// Ok reports whether the command exited zero.
func (r CommandResult) Ok() bool {
	return r.ExitCode == 0
}

// Runner executes external commands. Installers receive a Runner rather
// than calling exec directly so tests and dry-run can substitute fakes.
type Runner interface {
	Run(ctx context.Context, cmd Command) CommandResult
}

// ExecRunner runs commands on the host through bash.
type ExecRunner struct {
	Log *slog.Logger
}

var _ Runner = ExecRunner{}

// Run executes cmd, retrying on non-zero exit or timeout up to
// cmd.MaxRetries additional times, and returns the final attempt's result.
// Cancellation of ctx stops the retry loop immediately.
func (r ExecRunner) Run(ctx context.Context, cmd Command) CommandResult {
	timeout := cmd.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	attempts := cmd.MaxRetries + 1
	delay := RetryDelay

	var result CommandResult
	for attempt := 1; attempt <= attempts; attempt++ {
		result = r.runOnce(ctx, cmd.Line, timeout)
		if result.Ok() || ctx.Err() != nil {
			return result
		}

		if r.Log != nil {
			r.Log.Debug("command attempt failed",
				"attempt", attempt,
				"of", attempts,
				"exit_code", result.ExitCode,
				"timed_out", result.TimedOut)
		}

		if attempt < attempts {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return result
			}
			delay *= 2
		}
	}

	return result
}

func (r ExecRunner) runOnce(ctx context.Context, line string, timeout time.Duration) CommandResult {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(attemptCtx, "bash", "-c", line)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.Is(attemptCtx.Err(), context.DeadlineExceeded):
		result.ExitCode = -1
		result.TimedOut = true
		if result.Stderr == "" {
			result.Stderr = "command timed out after " + timeout.String()
		}
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
			if result.Stderr == "" {
				result.Stderr = err.Error()
			}
		}
	}

	return result
}

// CommandAvailable reports whether an executable resolves on PATH.
func CommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
