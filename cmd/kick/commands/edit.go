package commands

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/kick/internal/config"
	"github.com/thoreinstein/kick/internal/editor"
)

func init() {
	rootCmd.AddCommand(editCmd)
}

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the user config file in your editor",
	Long: `Open ~/.kickrc in $EDITOR. The file is seeded with the default
configuration when it does not exist yet.`,
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, _ []string) error {
	path, err := config.UserConfigPath()
	if err != nil {
		return errors.Wrap(err, "locating user config")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := config.SaveToFile(config.Default(), path); err != nil {
			return errors.Wrap(err, "seeding user config")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s with defaults\n", path)
	}

	return editor.Open(path)
}
