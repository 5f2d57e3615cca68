package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	kickerrors "github.com/thoreinstein/kick/internal/errors"
	"github.com/thoreinstein/kick/internal/platform"
)

// pathExport puts ~/.local/bin ahead of the system path, where uv and
// several installers place their binaries.
const pathExport = `export PATH="$HOME/.local/bin:$PATH"`

func init() {
	rootCmd.AddCommand(setupShellCmd)
}

var setupShellCmd = &cobra.Command{
	Use:   "setup-shell",
	Short: "Add ~/.local/bin to PATH in the shell config",
	Long: `Append the PATH export for ~/.local/bin to the detected shell's config
file. Running it again is a no-op once the line is present.`,
	RunE: runSetupShell,
}

func runSetupShell(cmd *cobra.Command, _ []string) error {
	p := platform.Detect()
	rc := p.ShellConfigFile
	if rc == "" {
		return errors.Newf("could not determine a shell config file for shell %q", p.Shell)
	}

	existing, err := os.ReadFile(rc)
	if err != nil && !os.IsNotExist(err) {
		if os.IsPermission(err) {
			return kickerrors.NewPermissionError(err, rc)
		}
		return err
	}

	if strings.Contains(string(existing), pathExport) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already configures PATH, nothing to do\n", rc)
		return nil
	}

	f, err := os.OpenFile(rc, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsPermission(err) {
			return kickerrors.NewPermissionError(err, rc)
		}
		return err
	}
	defer f.Close()

	var b strings.Builder
	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		b.WriteString("\n")
	}
	b.WriteString("\n# kick\n")
	b.WriteString(pathExport)
	b.WriteString("\n")

	if _, err := f.WriteString(b.String()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "PATH export added to %s; open a new shell to pick it up\n", rc)
	return nil
}
