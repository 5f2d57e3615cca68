package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitGeneral},
		{"config", NewConfigError(errors.New("bad yaml"), ".kickrc"), ExitConfig},
		{"platform", NewPlatformError("linux", "riscv64"), ExitGeneral},
		{"all failed", NewAllTasksFailedError(3), ExitAllTasksFailed},
		{"permission", NewPermissionError(errors.New("denied"), "/etc/hosts"), ExitPermission},
		{"dependency", NewDependencyError("git", "install git"), ExitDependency},
		{"interrupt", NewInterruptError(), ExitInterrupt},
		{"wrapped", fmt.Errorf("context: %w", NewDependencyError("uv", "install uv")), ExitDependency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeFor(tt.err); got != tt.want {
				t.Errorf("CodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := NewExitError(inner, ExitGeneral)

	if !errors.Is(err, inner) {
		t.Error("errors.Is should see through ExitError")
	}
}

func TestSuggestionsFor(t *testing.T) {
	err := NewDependencyError("git", "install git and retry")
	got := SuggestionsFor(err)
	if len(got) == 0 {
		t.Fatal("expected at least one suggestion")
	}

	if got := SuggestionsFor(errors.New("plain")); got != nil {
		t.Errorf("plain error should carry no suggestions, got %v", got)
	}
}

func TestInterruptedSentinel(t *testing.T) {
	if !errors.Is(NewInterruptError(), ErrInterrupted) {
		t.Error("interrupt errors should match ErrInterrupted")
	}
}
