package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/kick/internal/catalog"
)

var showJSON bool

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Print the configuration after merging built-in defaults, the user
config, the project config, and the --config file, in that priority
order. What this prints is exactly what init and install act on.`,
	RunE: runShow,
}

// effectiveConfig is the fully resolved view printed by show: every
// catalog tool appears with its final enabled flag and version, and
// every registry URL is concrete.
type effectiveConfig struct {
	Sources  []string          `json:"sources" yaml:"sources"`
	Project  string            `json:"project,omitempty" yaml:"project,omitempty"`
	Tools    []effectiveTool   `json:"tools" yaml:"tools"`
	Registry map[string]string `json:"registry" yaml:"registry"`
}

type effectiveTool struct {
	Name    string `json:"name" yaml:"name"`
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
	Via     string `json:"install_via,omitempty" yaml:"install_via,omitempty"`
}

// configSources lists the file layers that contributed to the merge,
// lowest priority first. Built-in defaults always apply.
func configSources() []string {
	sources := []string{"defaults"}
	cliPath, projectPath, userPath, err := configLayerPaths()
	if err != nil {
		return sources
	}
	for _, path := range []string{userPath, projectPath, cliPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			sources = append(sources, path)
		}
	}
	return sources
}

func runShow(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	view := effectiveConfig{
		Sources: configSources(),
		Project: cfg.Project.Name,
		Registry: map[string]string{
			"npm":            cfg.Registry.NPMRegistry(),
			"bun":            cfg.Registry.BunRegistry(),
			"pypi":           cfg.Registry.PyPIIndex(),
			"python_install": cfg.Registry.PythonInstallMirror(),
		},
	}
	for _, tool := range catalog.InstallOrder {
		tc := cfg.Tool(tool)
		view.Tools = append(view.Tools, effectiveTool{
			Name:    tool,
			Enabled: tc.IsEnabled(),
			Version: tc.PinnedVersion(),
			Via:     tc.Via(),
		})
	}

	if showJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	data, err := yaml.Marshal(view)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
