package installer

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/thoreinstein/kick/internal/logging"
)

func TestExecRunnerSuccess(t *testing.T) {
	r := ExecRunner{Log: logging.ForTest(t)}
	res := r.Run(context.Background(), Command{Line: "echo hello"})

	if !res.Ok() {
		t.Fatalf("expected success, got exit code %d (stderr %q)", res.ExitCode, res.Stderr)
	}
	if res.Stdout != "hello\n" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "hello\n")
	}
}

func TestExecRunnerExitCode(t *testing.T) {
	r := ExecRunner{Log: logging.ForTest(t)}
	res := r.Run(context.Background(), Command{Line: "echo oops >&2; exit 3"})

	if res.Ok() {
		t.Fatal("expected failure")
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if res.Stderr != "oops\n" {
		t.Errorf("Stderr = %q, want %q", res.Stderr, "oops\n")
	}
}

func TestExecRunnerTimeout(t *testing.T) {
	r := ExecRunner{Log: logging.ForTest(t)}
	res := r.Run(context.Background(), Command{Line: "sleep 10", Timeout: 100 * time.Millisecond})

	if !res.TimedOut {
		t.Fatal("expected TimedOut")
	}
	if res.Ok() {
		t.Error("a timed-out command must not report success")
	}
	if res.Stderr == "" {
		t.Error("timeout should fill Stderr with an explanation")
	}
}

func TestExecRunnerRetriesUntilSuccess(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "attempted")
	line := fmt.Sprintf("if [ -f %q ]; then exit 0; else touch %q; exit 1; fi", marker, marker)

	r := ExecRunner{Log: logging.ForTest(t)}
	res := r.Run(context.Background(), Command{Line: line, MaxRetries: 2})

	if !res.Ok() {
		t.Errorf("second attempt should have succeeded, got exit code %d", res.ExitCode)
	}
}

func TestExecRunnerRetriesExhausted(t *testing.T) {
	r := ExecRunner{Log: logging.ForTest(t)}
	res := r.Run(context.Background(), Command{Line: "exit 7", MaxRetries: 1})

	if res.ExitCode != 7 {
		t.Errorf("ExitCode = %d, want the final attempt's code 7", res.ExitCode)
	}
}

func TestExecRunnerCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := ExecRunner{}
	start := time.Now()
	res := r.Run(ctx, Command{Line: "exit 1", MaxRetries: 5})

	if res.Ok() {
		t.Error("cancelled run must not report success")
	}
	// Cancellation must short-circuit the retry schedule.
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("cancelled run still took %v", elapsed)
	}
}

func TestCommandAvailable(t *testing.T) {
	if !CommandAvailable("bash") {
		t.Error("bash should resolve on PATH in the test environment")
	}
	if CommandAvailable("definitely-not-a-binary-kick-tests-expect") {
		t.Error("nonexistent binary reported available")
	}
}
