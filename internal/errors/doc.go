// Package errors provides error handling conventions for the kick CLI.
//
// This package defines sentinel errors for common failure conditions,
// an ExitError type carrying an exit code and recovery suggestions, and
// the exit code constants kick reports to the shell.
//
// # Exit Codes
//
//   - ExitSuccess (0): Command completed successfully
//   - ExitGeneral (1): Unclassified error (platform, network, install failure)
//   - ExitConfig (2): Malformed or invalid configuration file
//   - ExitAllTasksFailed (3): Every attempted install/upgrade task failed
//   - ExitPermission (4): Filesystem access denied
//   - ExitDependency (5): Required external prerequisite missing
//   - ExitInterrupt (130): Interrupted by the user
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and zero or more
// recovery suggestions. It supports unwrapping via [errors.Unwrap] and
// [errors.As]:
//
//	err := kickerrors.NewDependencyError("git", "https://git-scm.com/downloads")
//	var exitErr *kickerrors.ExitError
//	if errors.As(err, &exitErr) {
//	    for _, s := range exitErr.Suggestions {
//	        fmt.Println("  " + s)
//	    }
//	    os.Exit(exitErr.Code)
//	}
//
// The CLI boundary uses [CodeFor] to map any error chain to an exit code.
package errors
