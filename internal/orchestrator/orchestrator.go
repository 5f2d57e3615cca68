// Package orchestrator drives tool installation and upgrades in
// dependency order.
//
// Each tool is processed independently: one failure is recorded and the
// run moves on, so a broken installer never blocks the tools behind it.
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thoreinstein/kick/internal/catalog"
	"github.com/thoreinstein/kick/internal/config"
	"github.com/thoreinstein/kick/internal/detect"
	"github.com/thoreinstein/kick/internal/installer"
	"github.com/thoreinstein/kick/internal/logging"
	"github.com/thoreinstein/kick/internal/mirror"
	"github.com/thoreinstein/kick/internal/platform"
	"github.com/thoreinstein/kick/internal/project"
)

// Mirrors configures package-manager registry mirrors after installs.
type Mirrors interface {
	ConfigureNPM(ctx context.Context, registry string) error
	ConfigureBun(registry string) error
	ConfigureUV(index, pythonMirror string) error
}

// Projects scaffolds new project directories.
type Projects interface {
	Create(ctx context.Context, name string, force bool) error
}

// Orchestrator runs install and upgrade plans against the tool catalog.
type Orchestrator struct {
	Config   *config.Config
	Platform platform.Info
	Runner   installer.Runner
	Factory  installer.Factory
	Probe    detect.Probe
	Mirrors  Mirrors
	Projects Projects
	Log      *slog.Logger

	// DryRun reports what would happen without executing anything.
	DryRun bool

	// Force lets project scaffolding reuse a non-empty directory.
	Force bool
}

// New builds an orchestrator wired to the real runner, probe, and
// installer registry.
func New(cfg *config.Config, p platform.Info, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = logging.NewDiscard()
	}
	runner := installer.ExecRunner{Log: log}
	return &Orchestrator{
		Config:   cfg,
		Platform: p,
		Runner:   runner,
		Factory:  installer.New,
		Probe:    detect.ExecProbe{},
		Mirrors:  &mirror.Configurator{Runner: runner, Log: log},
		Projects: &project.Creator{Runner: runner, Log: log},
		Log:      log,
	}
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Log != nil {
		return o.Log
	}
	return logging.NewDiscard()
}

func (o *Orchestrator) env(tool string) installer.Env {
	return installer.Env{
		Platform: o.Platform,
		Tool:     o.Config.Tool(tool),
		Registry: o.Config.Registry,
		Runner:   o.Runner,
		Log:      o.logger(),
	}
}

func unknownTool(tool string) installer.Report {
	return installer.Report{
		Tool:   tool,
		Result: installer.ResultFailed,
		Error:  fmt.Sprintf("unknown tool: %s", tool),
	}
}

// InstallTool installs a single tool, honoring dry-run mode.
func (o *Orchestrator) InstallTool(ctx context.Context, tool string) installer.Report {
	if !catalog.Known(tool) {
		return unknownTool(tool)
	}
	if o.DryRun {
		return installer.Report{
			Tool:    tool,
			Result:  installer.ResultSkipped,
			Message: fmt.Sprintf("[dry run] would install %s", tool),
		}
	}

	inst, ok := o.Factory(tool, o.env(tool))
	if !ok {
		return unknownTool(tool)
	}
	return inst.Install(ctx)
}

// UpgradeTool upgrades a single tool, honoring dry-run mode.
func (o *Orchestrator) UpgradeTool(ctx context.Context, tool string) installer.Report {
	if !catalog.Known(tool) {
		return unknownTool(tool)
	}
	if o.DryRun {
		return installer.Report{
			Tool:    tool,
			Result:  installer.ResultSkipped,
			Message: fmt.Sprintf("[dry run] would upgrade %s", tool),
		}
	}

	inst, ok := o.Factory(tool, o.env(tool))
	if !ok {
		return unknownTool(tool)
	}
	return inst.Upgrade(ctx)
}

// RunInit installs every enabled tool in dependency order, then applies
// registry mirrors and scaffolds the configured project. The returned
// reports preserve that order.
func (o *Orchestrator) RunInit(ctx context.Context) []installer.Report {
	var reports []installer.Report

	for _, tool := range catalog.InstallOrder {
		if err := ctx.Err(); err != nil {
			break
		}
		if !o.Config.Tool(tool).IsEnabled() {
			reports = append(reports, installer.Report{
				Tool:    tool,
				Result:  installer.ResultSkipped,
				Message: "disabled in config",
			})
			continue
		}
		reports = append(reports, o.InstallTool(ctx, tool))
	}

	reports = append(reports, o.configureMirrors(ctx, reports)...)

	if name := o.Config.Project.Name; name != "" {
		reports = append(reports, o.createProject(ctx, name))
	}

	return reports
}

// configureMirrors emits one report per package manager whose tool came
// out of the install phase usable.
func (o *Orchestrator) configureMirrors(ctx context.Context, installed []installer.Report) []installer.Report {
	usable := map[string]bool{}
	for _, r := range installed {
		if !o.Config.Tool(r.Tool).IsEnabled() {
			continue
		}
		// Skipped covers "already installed" and dry-run previews.
		if r.Result == installer.ResultSuccess || r.Result == installer.ResultSkipped {
			usable[r.Tool] = true
		}
	}

	var reports []installer.Report

	if usable[catalog.Node] {
		reports = append(reports, o.mirrorReport(ctx, "npm-mirror", func() error {
			return o.Mirrors.ConfigureNPM(ctx, o.Config.Registry.NPMRegistry())
		}, fmt.Sprintf("npm registry set to %s", o.Config.Registry.NPMRegistry())))
	}
	if usable[catalog.Bun] {
		reports = append(reports, o.mirrorReport(ctx, "bun-mirror", func() error {
			return o.Mirrors.ConfigureBun(o.Config.Registry.BunRegistry())
		}, fmt.Sprintf("bun registry set to %s", o.Config.Registry.BunRegistry())))
	}
	if usable[catalog.UV] {
		reports = append(reports, o.mirrorReport(ctx, "uv-mirror", func() error {
			return o.Mirrors.ConfigureUV(o.Config.Registry.PyPIIndex(), o.Config.Registry.PythonInstallMirror())
		}, fmt.Sprintf("uv index set to %s", o.Config.Registry.PyPIIndex())))
	}

	return reports
}

func (o *Orchestrator) mirrorReport(ctx context.Context, name string, apply func() error, message string) installer.Report {
	if o.DryRun {
		return installer.Report{
			Tool:    name,
			Result:  installer.ResultSkipped,
			Message: fmt.Sprintf("[dry run] would configure %s", name),
		}
	}
	if err := apply(); err != nil {
		o.logger().Warn("mirror configuration failed", "step", name, "error", err)
		return installer.Report{Tool: name, Result: installer.ResultFailed, Error: err.Error()}
	}
	return installer.Report{Tool: name, Result: installer.ResultSuccess, Message: message}
}

func (o *Orchestrator) createProject(ctx context.Context, name string) installer.Report {
	if o.DryRun {
		return installer.Report{
			Tool:    "project",
			Result:  installer.ResultSkipped,
			Message: fmt.Sprintf("[dry run] would create project %s", name),
		}
	}
	if err := o.Projects.Create(ctx, name, o.Force); err != nil {
		return installer.Report{Tool: "project", Result: installer.ResultFailed, Error: err.Error()}
	}
	return installer.Report{
		Tool:    "project",
		Result:  installer.ResultSuccess,
		Message: fmt.Sprintf("project %s created", name),
	}
}

// RunUpgrade upgrades the named tools, or every currently installed
// tool when none are named.
func (o *Orchestrator) RunUpgrade(ctx context.Context, tools []string) []installer.Report {
	var reports []installer.Report

	if len(tools) == 0 {
		statuses := detect.DetectAll(ctx, o.Probe)
		for _, st := range statuses {
			if err := ctx.Err(); err != nil {
				break
			}
			if !st.Installed {
				continue
			}
			if !o.Config.Tool(st.Name).IsEnabled() {
				reports = append(reports, installer.Report{
					Tool:    st.Name,
					Result:  installer.ResultSkipped,
					Message: "disabled in config",
				})
				continue
			}
			reports = append(reports, o.UpgradeTool(ctx, st.Name))
		}
		return reports
	}

	for _, tool := range tools {
		if err := ctx.Err(); err != nil {
			break
		}
		reports = append(reports, o.UpgradeTool(ctx, tool))
	}
	return reports
}

// AllFailed reports whether every report in the run failed. An empty
// run is not a failure.
func AllFailed(reports []installer.Report) bool {
	if len(reports) == 0 {
		return false
	}
	for _, r := range reports {
		if r.Result != installer.ResultFailed {
			return false
		}
	}
	return true
}

// Failures counts the failed reports.
func Failures(reports []installer.Report) int {
	n := 0
	for _, r := range reports {
		if r.Result == installer.ResultFailed {
			n++
		}
	}
	return n
}
