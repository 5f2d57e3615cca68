package orchestrator

import (
	"strings"
	"testing"

	"github.com/thoreinstein/kick/internal/installer"
)

func TestPrintSummary(t *testing.T) {
	reports := []installer.Report{
		{Tool: "bun", Result: installer.ResultSuccess, Message: "bun installed", Version: "1.1.42"},
		{Tool: "conda", Result: installer.ResultSkipped, Message: "conda is already installed"},
		{Tool: "gh", Result: installer.ResultFailed, Message: "failed to install gh", Error: "no package manager"},
	}

	var buf strings.Builder
	PrintSummary(&buf, reports)
	out := buf.String()

	for _, want := range []string{"bun", "1.1.42", "conda", "gh", "no package manager"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "1 succeeded, 1 skipped, 1 failed") {
		t.Errorf("totals line wrong:\n%s", out)
	}
}

func TestPrintSummaryEmpty(t *testing.T) {
	var buf strings.Builder
	PrintSummary(&buf, nil)

	if !strings.Contains(buf.String(), "nothing to do") {
		t.Errorf("empty summary = %q", buf.String())
	}
}
