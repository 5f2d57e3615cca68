// Package wizard collects setup choices through an interactive form.
package wizard

import (
	"errors"

	"github.com/charmbracelet/huh"

	"github.com/thoreinstein/kick/internal/catalog"
	"github.com/thoreinstein/kick/internal/config"
	kickerrors "github.com/thoreinstein/kick/internal/errors"
)

// Run walks the user through project name, tool selection, and registry
// choices, writing the answers back into cfg. Aborting the form returns
// an interrupt error so the CLI exits with the interrupt code.
func Run(cfg *config.Config) error {
	name := cfg.Project.Name
	selected := enabledTools(cfg)
	nodeVersion := cfg.Tool(catalog.Node).PinnedVersion()
	installVia := cfg.Tool(catalog.ClaudeCode).Via()
	npmRegistry := cfg.Registry.NPMRegistry()

	options := make([]huh.Option[string], 0, len(catalog.InstallOrder))
	for _, tool := range catalog.InstallOrder {
		options = append(options, huh.NewOption(tool, tool))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Description("Leave empty to skip project scaffolding.").
				Value(&name),
			huh.NewMultiSelect[string]().
				Title("Tools to install").
				Options(options...).
				Value(&selected),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Node version").
				Description("An nvm version expression, e.g. lts/* or 22.").
				Placeholder("lts/*").
				Value(&nodeVersion),
			huh.NewSelect[string]().
				Title("Install CLI packages via").
				Description("Package manager for the npm-distributed CLIs.").
				Options(
					huh.NewOption("auto (prefer bun)", ""),
					huh.NewOption("bun", "bun"),
					huh.NewOption("npm", "npm"),
				).
				Value(&installVia),
			huh.NewInput().
				Title("npm registry").
				Description("Registry mirror applied after Node is installed.").
				Value(&npmRegistry),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return kickerrors.NewInterruptError()
		}
		return err
	}

	apply(cfg, name, selected, nodeVersion, installVia, npmRegistry)
	return nil
}

func enabledTools(cfg *config.Config) []string {
	var tools []string
	for _, tool := range catalog.InstallOrder {
		if cfg.Tool(tool).IsEnabled() {
			tools = append(tools, tool)
		}
	}
	return tools
}

// packageCLIs are the tools whose install mechanism the wizard's
// install-via choice applies to. copilot stays npm-only.
var packageCLIs = []string{catalog.ClaudeCode, catalog.Codex, catalog.OpenCode, catalog.UIPro}

func apply(cfg *config.Config, name string, selected []string, nodeVersion, installVia, npmRegistry string) {
	cfg.Project.Name = name

	chosen := make(map[string]bool, len(selected))
	for _, tool := range selected {
		chosen[tool] = true
	}
	if cfg.Tools == nil {
		cfg.Tools = map[string]config.ToolConfig{}
	}
	for _, tool := range catalog.InstallOrder {
		tc := cfg.Tools[tool]
		enabled := chosen[tool]
		tc.Enabled = &enabled
		cfg.Tools[tool] = tc
	}

	if nodeVersion != "" {
		tc := cfg.Tools[catalog.Node]
		v := nodeVersion
		tc.Version = &v
		cfg.Tools[catalog.Node] = tc
	}

	if installVia != "" {
		for _, tool := range packageCLIs {
			tc := cfg.Tools[tool]
			via := installVia
			tc.InstallVia = &via
			cfg.Tools[tool] = tc
		}
	}

	if npmRegistry != "" {
		r := npmRegistry
		cfg.Registry.NPM = &r
	}
}
