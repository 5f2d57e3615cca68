package commands

import (
	"errors"
	"testing"

	kickerrors "github.com/thoreinstein/kick/internal/errors"
	"github.com/thoreinstein/kick/internal/installer"
)

func TestReportsError(t *testing.T) {
	fail := installer.Report{Result: installer.ResultFailed}
	ok := installer.Report{Result: installer.ResultSuccess}
	skip := installer.Report{Result: installer.ResultSkipped}

	tests := []struct {
		name     string
		reports  []installer.Report
		wantCode int
	}{
		{"all succeeded", []installer.Report{ok, ok}, kickerrors.ExitSuccess},
		{"all skipped", []installer.Report{skip, skip}, kickerrors.ExitSuccess},
		{"empty run", nil, kickerrors.ExitSuccess},
		{"partial failure", []installer.Report{ok, fail}, kickerrors.ExitGeneral},
		{"all failed", []installer.Report{fail, fail}, kickerrors.ExitAllTasksFailed},
		{"skip does not count as failure", []installer.Report{skip, fail}, kickerrors.ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := reportsError(tt.reports)
			if got := kickerrors.CodeFor(err); got != tt.wantCode {
				t.Errorf("exit code = %d, want %d (err %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestReportsErrorCarriesSuggestion(t *testing.T) {
	err := reportsError([]installer.Report{{Result: installer.ResultFailed}})

	var exitErr *kickerrors.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("want *ExitError, got %T", err)
	}
	if len(exitErr.Suggestions) == 0 {
		t.Error("failed run should carry a recovery suggestion")
	}
}
