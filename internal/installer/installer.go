// Package installer implements the per-tool install/upgrade/verify contract.
//
// One installer exists per catalog tool. Installers are the only components
// permitted to mutate the host: they run external commands, touch the
// filesystem, and issue network requests. Failures are captured into
// Reports, never raised across the orchestrator boundary.
package installer

import (
	"context"
	"log/slog"
	"strings"

	"github.com/thoreinstein/kick/internal/config"
	"github.com/thoreinstein/kick/internal/platform"
)

// Result classifies the terminal outcome of one install or upgrade task.
type Result string

const (
	// ResultSuccess means the tool was installed or upgraded and verified.
	ResultSuccess Result = "success"
	// ResultSkipped means no work was needed (already installed, or
	// disabled in config).
	ResultSkipped Result = "skipped"
	// ResultFailed means the mechanism ran but the tool is not usable.
	ResultFailed Result = "failed"
)

// Report is the immutable record of one tool's outcome in a run.
type Report struct {
	Tool    string `json:"tool"`
	Result  Result `json:"result"`
	Message string `json:"message"`
	Version string `json:"version,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Installer is the capability contract each supported tool implements.
type Installer interface {
	// Name returns the catalog tool name.
	Name() string

	// Method returns the install mechanism resolved at construction
	// (config install_via override, else probe result).
	Method() string

	// Verify reports whether the tool is currently usable. It never
	// fails for "not installed"; that is a false return.
	Verify(ctx context.Context) bool

	// Install installs the tool, skipping when Verify already passes.
	Install(ctx context.Context) Report

	// Upgrade upgrades an installed tool; not-installed is a failure,
	// no install-then-upgrade is attempted.
	Upgrade(ctx context.Context) Report
}

// Env carries the read-only run context every installer is built with.
type Env struct {
	Platform platform.Info
	Tool     config.ToolConfig
	Registry config.RegistryConfig
	Runner   Runner
	Log      *slog.Logger

	// Lookup overrides executable resolution, for tests. Nil means PATH.
	Lookup func(name string) bool
}

func (e Env) logger() *slog.Logger {
	if e.Log != nil {
		return e.Log
	}
	return slog.Default()
}

// available reports whether an executable resolves on this run's PATH.
func (e Env) available(name string) bool {
	if e.Lookup != nil {
		return e.Lookup(name)
	}
	return CommandAvailable(name)
}

// resolveMethod picks between bun and npm for package-installed CLIs:
// the config override wins, then bun when present, then npm.
func (e Env) resolveMethod(via string) string {
	if via != "" {
		return strings.ToLower(via)
	}
	if e.available("bun") {
		return "bun"
	}
	return "npm"
}

func skipped(tool, message, version string) Report {
	return Report{Tool: tool, Result: ResultSkipped, Message: message, Version: version}
}

func succeeded(tool, message, version string) Report {
	return Report{Tool: tool, Result: ResultSuccess, Message: message, Version: version}
}

func failed(tool, message, errMsg string) Report {
	return Report{Tool: tool, Result: ResultFailed, Message: message, Error: errMsg}
}

// failureDetail prefers stderr, falling back to a generic exit-code note.
func failureDetail(res CommandResult) string {
	if detail := strings.TrimSpace(res.Stderr); detail != "" {
		return detail
	}
	if res.TimedOut {
		return "command timed out"
	}
	return "command returned a non-zero exit code"
}
