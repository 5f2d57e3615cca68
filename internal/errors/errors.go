package errors

import (
	"errors"
	"fmt"
)

// Exit codes returned by the kick CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneral indicates an unclassified error.
	ExitGeneral = 1

	// ExitConfig indicates a malformed or invalid configuration file.
	ExitConfig = 2

	// ExitAllTasksFailed indicates every attempted install/upgrade task failed.
	ExitAllTasksFailed = 3

	// ExitPermission indicates filesystem access was denied.
	ExitPermission = 4

	// ExitDependency indicates a required external prerequisite is missing.
	ExitDependency = 5

	// ExitInterrupt indicates the user interrupted the run (SIGINT).
	ExitInterrupt = 130
)

// Sentinel errors for common failure conditions.
var (
	// ErrUnknownTool indicates the tool is not in the supported catalog.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrNotInstalled indicates an operation requires the tool to be installed.
	ErrNotInstalled = errors.New("tool is not installed")

	// ErrInterrupted indicates the run was cancelled by the user.
	ErrInterrupted = errors.New("interrupted by user")
)

// ExitError wraps an error with an exit code and recovery suggestions.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestions are actionable next steps for the user, printed after the
	// error message. May be empty.
	Suggestions []string
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int, suggestions ...string) *ExitError {
	return &ExitError{
		Err:         err,
		Code:        code,
		Suggestions: suggestions,
	}
}

// NewPlatformError reports an unsupported OS/architecture combination.
func NewPlatformError(os, arch string) *ExitError {
	return &ExitError{
		Err:  fmt.Errorf("unsupported platform: %s/%s", os, arch),
		Code: ExitGeneral,
		Suggestions: []string{
			"Supported platforms: macOS arm64, macOS x86_64, Linux x86_64.",
			"Run kick on a supported platform.",
		},
	}
}

// NewRuntimeVersionError reports a host prerequisite that is present but too old.
func NewRuntimeVersionError(name, current, required string) *ExitError {
	return &ExitError{
		Err:  fmt.Errorf("%s version %s does not satisfy required %s+", name, current, required),
		Code: ExitGeneral,
		Suggestions: []string{
			fmt.Sprintf("Upgrade %s to %s or newer and re-run kick.", name, required),
		},
	}
}

// NewConfigError reports a malformed or invalid configuration file.
// file may be empty when the failing path is unknown.
func NewConfigError(err error, file string) *ExitError {
	wrapped := fmt.Errorf("config error: %w", err)
	if file != "" {
		wrapped = fmt.Errorf("config error in %s: %w", file, err)
	}
	return &ExitError{
		Err:  wrapped,
		Code: ExitConfig,
		Suggestions: []string{
			"Check that the file is valid YAML.",
			"Run 'kick show' to inspect the effective configuration.",
		},
	}
}

// NewToolInstallError reports an installer that could not complete.
// guide, when non-empty, is surfaced as a manual installation hint.
func NewToolInstallError(tool, reason, guide string) *ExitError {
	suggestions := []string{
		"Re-run with --dry-run to preview the plan.",
	}
	if guide != "" {
		suggestions = append(suggestions, fmt.Sprintf("Install %s manually: %s", tool, guide))
	}
	return &ExitError{
		Err:         fmt.Errorf("failed to install %s: %s", tool, reason),
		Code:        ExitGeneral,
		Suggestions: suggestions,
	}
}

// NewNetworkError reports a download or connectivity failure.
func NewNetworkError(err error, url string) *ExitError {
	wrapped := fmt.Errorf("network error: %w", err)
	if url != "" {
		wrapped = fmt.Errorf("network error fetching %s: %w", url, err)
	}
	return &ExitError{
		Err:  wrapped,
		Code: ExitGeneral,
		Suggestions: []string{
			"Check your network connection and retry.",
			"Configure a registry mirror in .kickrc if downloads are blocked.",
		},
	}
}

// NewPermissionError reports a filesystem access denial.
func NewPermissionError(err error, path string) *ExitError {
	return &ExitError{
		Err:  fmt.Errorf("permission denied for %s: %w", path, err),
		Code: ExitPermission,
		Suggestions: []string{
			fmt.Sprintf("Check ownership and permissions of %s.", path),
		},
	}
}

// NewDependencyError reports a missing external prerequisite.
func NewDependencyError(dep, guide string) *ExitError {
	var suggestions []string
	if guide != "" {
		suggestions = append(suggestions, fmt.Sprintf("Install %s: %s", dep, guide))
	}
	return &ExitError{
		Err:         fmt.Errorf("required dependency %q is not installed", dep),
		Code:        ExitDependency,
		Suggestions: suggestions,
	}
}

// NewAllTasksFailedError reports a run in which every attempted task failed.
func NewAllTasksFailedError(attempted int) *ExitError {
	return &ExitError{
		Err:  fmt.Errorf("all %d attempted tasks failed", attempted),
		Code: ExitAllTasksFailed,
		Suggestions: []string{
			"Inspect the per-tool errors above.",
			"Check the run log under the kick state directory for details.",
		},
	}
}

// NewInterruptError reports a user-initiated interruption.
func NewInterruptError() *ExitError {
	return &ExitError{
		Err:  ErrInterrupted,
		Code: ExitInterrupt,
	}
}

// CodeFor returns the process exit code for err.
// nil maps to ExitSuccess; errors without an ExitError in their chain map to
// ExitGeneral.
func CodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitGeneral
}

// SuggestionsFor returns the recovery suggestions attached to err, if any.
func SuggestionsFor(err error) []string {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Suggestions
	}
	return nil
}
