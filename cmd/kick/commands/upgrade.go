package commands

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/kick/internal/catalog"
	kickerrors "github.com/thoreinstein/kick/internal/errors"
	"github.com/thoreinstein/kick/internal/logging"
	"github.com/thoreinstein/kick/internal/orchestrator"
)

var (
	upgradeAll    bool
	upgradeDryRun bool
)

func init() {
	upgradeCmd.Flags().BoolVar(&upgradeAll, "all", false,
		"upgrade every enabled, installed tool")
	upgradeCmd.Flags().BoolVar(&upgradeDryRun, "dry-run", false,
		"report what would happen without executing anything")
	rootCmd.AddCommand(upgradeCmd)
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade [tool...]",
	Short: "Upgrade installed tools",
	Long: `Upgrade the named tools, or every enabled, installed tool when none
are named (--all makes that explicit). Tools that are not installed are
reported as failures rather than installed implicitly.

Available tools: ` + strings.Join(catalog.InstallOrder, ", ") + `

Examples:
  # Upgrade everything that is installed
  kick upgrade --all

  # Upgrade one tool
  kick upgrade bun`,
	RunE: runUpgrade,
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	if upgradeAll && len(args) > 0 {
		return errors.New("--all cannot be combined with tool names")
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
	orch.DryRun = upgradeDryRun

	reports := orch.RunUpgrade(cmd.Context(), args)
	orchestrator.PrintSummary(cmd.OutOrStdout(), reports)

	if cmd.Context().Err() != nil {
		return kickerrors.NewInterruptError()
	}
	return reportsError(reports)
}
