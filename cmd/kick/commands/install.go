package commands

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/kick/internal/catalog"
	kickerrors "github.com/thoreinstein/kick/internal/errors"
	"github.com/thoreinstein/kick/internal/installer"
	"github.com/thoreinstein/kick/internal/logging"
	"github.com/thoreinstein/kick/internal/orchestrator"
)

var (
	installAll    bool
	installDryRun bool
)

func init() {
	installCmd.Flags().BoolVar(&installAll, "all", false,
		"install every enabled tool")
	installCmd.Flags().BoolVar(&installDryRun, "dry-run", false,
		"report what would happen without executing anything")
	rootCmd.AddCommand(installCmd)
}

var installCmd = &cobra.Command{
	Use:   "install [tool...]",
	Short: "Install specific tools",
	Long: `Install the named tools, or every enabled tool with --all.

Available tools: ` + strings.Join(catalog.InstallOrder, ", ") + `

Examples:
  # Install a single tool
  kick install bun

  # Install several at once
  kick install nvm node gh

  # Install everything the config enables
  kick install --all`,
	RunE: runInstall,
}

func runInstall(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !installAll {
		return errors.New("name at least one tool or pass --all")
	}

	p, err := requirePlatform()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	orch := orchestrator.New(cfg, p, logging.FromContext(cmd.Context()))
	orch.DryRun = installDryRun

	var reports []installer.Report
	if installAll {
		for _, tool := range catalog.InstallOrder {
			if cmd.Context().Err() != nil {
				break
			}
			if !cfg.Tool(tool).IsEnabled() {
				continue
			}
			reports = append(reports, orch.InstallTool(cmd.Context(), tool))
		}
	} else {
		for _, tool := range args {
			if cmd.Context().Err() != nil {
				break
			}
			reports = append(reports, orch.InstallTool(cmd.Context(), tool))
		}
	}

	orchestrator.PrintSummary(cmd.OutOrStdout(), reports)

	if cmd.Context().Err() != nil {
		return kickerrors.NewInterruptError()
	}
	return reportsError(reports)
}
