package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/kick/internal/detect"
)

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which tools are installed",
	Long: `Probe every tool in the catalog and report whether it is installed,
its version, and where the binary resolves.

Examples:
  # Human-readable table
  kick status

  # Machine-readable output for scripting
  kick status --json`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	statuses := detect.DetectAll(cmd.Context(), detect.ExecProbe{})

	if statusJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	installedMark := color.New(color.FgGreen).Sprint("installed")
	missingMark := color.New(color.FgYellow).Sprint("missing")

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOOL\tSTATUS\tVERSION\tPATH")
	installed := 0
	for _, st := range statuses {
		mark := missingMark
		if st.Installed {
			mark = installedMark
			installed++
		}
		version := st.Version
		if version == "" {
			version = "-"
		}
		path := st.Path
		if path == "" {
			path = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", st.Name, mark, version, path)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d tools installed\n", installed, len(statuses))
	return nil
}
