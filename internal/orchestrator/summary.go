package orchestrator

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/thoreinstein/kick/internal/installer"
)

var (
	successMark = color.New(color.FgGreen).Sprint("✓")
	skippedMark = color.New(color.FgYellow).Sprint("-")
	failedMark  = color.New(color.FgRed).Sprint("✗")
)

// PrintSummary writes a human-readable run summary in report order.
func PrintSummary(w io.Writer, reports []installer.Report) {
	if len(reports) == 0 {
		fmt.Fprintln(w, "nothing to do")
		return
	}

	var success, skip, fail int
	fmt.Fprintln(w)
	for _, r := range reports {
		switch r.Result {
		case installer.ResultSuccess:
			success++
			fmt.Fprintf(w, "  %s %s", successMark, r.Tool)
			if r.Version != "" {
				fmt.Fprintf(w, " (%s)", r.Version)
			}
			if r.Message != "" {
				fmt.Fprintf(w, " %s", color.New(color.Faint).Sprint(r.Message))
			}
			fmt.Fprintln(w)
		case installer.ResultSkipped:
			skip++
			fmt.Fprintf(w, "  %s %s", skippedMark, r.Tool)
			if r.Message != "" {
				fmt.Fprintf(w, " %s", color.New(color.Faint).Sprint(r.Message))
			}
			fmt.Fprintln(w)
		case installer.ResultFailed:
			fail++
			fmt.Fprintf(w, "  %s %s", failedMark, r.Tool)
			if r.Message != "" {
				fmt.Fprintf(w, " %s", r.Message)
			}
			fmt.Fprintln(w)
			if r.Error != "" {
				fmt.Fprintf(w, "      %s\n", color.New(color.FgRed).Sprint(r.Error))
			}
		}
	}

	fmt.Fprintf(w, "\n%d succeeded, %d skipped, %d failed\n", success, skip, fail)
}
