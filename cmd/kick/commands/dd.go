package commands

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/kick/internal/platform"
	"github.com/thoreinstein/kick/internal/shellcomp"
)

func init() {
	rootCmd.AddCommand(ddCmd)
}

var ddCmd = &cobra.Command{
	Use:       "dd [bash|zsh|fish]",
	Short:     "Print a shell completion script",
	ValidArgs: []string{"bash", "zsh", "fish"},
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	Long: `Print a completion script for the given shell, defaulting to the shell
detected from $SHELL.

Examples:
  # Load completions for the current session
  source <(kick dd)

  # Install bash completions permanently
  kick dd bash > /etc/bash_completion.d/kick`,
	RunE: runDD,
}

func runDD(cmd *cobra.Command, args []string) error {
	shell := platform.Detect().Shell
	if len(args) == 1 {
		shell = platform.Shell(args[0])
	}

	if !shellcomp.Supported(shell) {
		return errors.Newf("no completion script for shell %q (supported: bash, zsh, fish)", shell)
	}

	script, err := shellcomp.Script(shell)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), script)
	return nil
}
