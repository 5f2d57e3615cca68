package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/kick/internal/config"
	kickerrors "github.com/thoreinstein/kick/internal/errors"
	"github.com/thoreinstein/kick/internal/installer"
	"github.com/thoreinstein/kick/internal/logging"
	"github.com/thoreinstein/kick/internal/orchestrator"
	"github.com/thoreinstein/kick/internal/wizard"
)

var (
	initInteractive bool
	initSaveConfig  bool
	initForce       bool
	initDryRun      bool
)

func init() {
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false,
		"pick tools and settings through an interactive wizard")
	initCmd.Flags().BoolVar(&initSaveConfig, "save-config", false,
		"write the effective configuration to ~/"+config.FileName)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"scaffold the project even if the directory is not empty")
	initCmd.Flags().BoolVar(&initDryRun, "dry-run", false,
		"report what would happen without executing anything")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Install every enabled tool and set up the workspace",
	Long: `Install every enabled tool in dependency order, configure registry
mirrors for the package managers that came up, and scaffold the
configured project directory.

Each tool is probed first: already-installed tools are skipped, and a
failing install is recorded without stopping the tools behind it. The
final summary lists every step with its outcome.

Examples:
  # Install with the default configuration
  kick init

  # Choose tools interactively and persist the answers
  kick init --interactive --save-config

  # Preview the plan
  kick init --dry-run`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	p, err := requirePlatform()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if initInteractive {
		if err := wizard.Run(cfg); err != nil {
			return err
		}
	}

	if initSaveConfig {
		userPath, err := config.UserConfigPath()
		if err != nil {
			return kickerrors.NewConfigError(err, "")
		}
		if err := config.SaveToFile(cfg, userPath); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "configuration saved to %s\n", userPath)
	}

	orch := orchestrator.New(cfg, p, logging.FromContext(cmd.Context()))
	orch.DryRun = initDryRun
	orch.Force = initForce

	reports := orch.RunInit(cmd.Context())
	orchestrator.PrintSummary(cmd.OutOrStdout(), reports)

	if cmd.Context().Err() != nil {
		return kickerrors.NewInterruptError()
	}
	return reportsError(reports)
}

// reportsError maps a finished run to the process exit status: every
// step failed is its own condition, a partial failure is a general one.
func reportsError(reports []installer.Report) error {
	if orchestrator.AllFailed(reports) {
		return kickerrors.NewAllTasksFailedError(len(reports))
	}
	if n := orchestrator.Failures(reports); n > 0 {
		return kickerrors.NewExitError(
			fmt.Errorf("%d of %d steps failed", n, len(reports)),
			kickerrors.ExitGeneral,
			"see the summary above and the run log for details")
	}
	return nil
}
