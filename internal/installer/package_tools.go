package installer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/thoreinstein/kick/internal/catalog"
	"github.com/thoreinstein/kick/internal/detect"
)

// packageSpec describes a CLI distributed as a global bun/npm package.
type packageSpec struct {
	tool    string
	binary  string
	pkg     string
	npmOnly bool

	// versionArgs is the argument to the binary's version query.
	versionArgs string

	// selfUpgrade, when non-empty, replaces the package-manager upgrade
	// with the tool's own update command.
	selfUpgrade string
}

var (
	claudeCodeSpec = packageSpec{
		tool:        catalog.ClaudeCode,
		binary:      "claude",
		pkg:         "@anthropic-ai/claude-code",
		versionArgs: "--version",
	}
	codexSpec = packageSpec{
		tool:        catalog.Codex,
		binary:      "codex",
		pkg:         "@openai/codex",
		versionArgs: "--version",
	}
	copilotSpec = packageSpec{
		tool:        catalog.Copilot,
		binary:      "copilot",
		pkg:         "@github/copilot",
		npmOnly:     true,
		versionArgs: "--version",
	}
	openCodeSpec = packageSpec{
		tool:        catalog.OpenCode,
		binary:      "opencode",
		pkg:         "opencode-ai",
		versionArgs: "--version",
	}
	uiProSpec = packageSpec{
		tool:        catalog.UIPro,
		binary:      "uipro",
		pkg:         "uipro-cli",
		versionArgs: "versions",
		selfUpgrade: "uipro update",
	}
)

// packageTool installs a global package through bun or npm.
type packageTool struct {
	spec   packageSpec
	env    Env
	method string
}

func newPackageTool(spec packageSpec, env Env) *packageTool {
	method := "npm"
	if !spec.npmOnly {
		method = env.resolveMethod(env.Tool.Via())
	}
	return &packageTool{spec: spec, env: env, method: method}
}

func (p *packageTool) Name() string   { return p.spec.tool }
func (p *packageTool) Method() string { return p.method }

func (p *packageTool) Verify(ctx context.Context) bool {
	if !p.env.available(p.spec.binary) {
		return false
	}
	res := p.env.Runner.Run(ctx, Command{
		Line:    fmt.Sprintf("%s %s", p.spec.binary, p.spec.versionArgs),
		Timeout: 10 * time.Second,
	})
	return res.Ok()
}

func (p *packageTool) installedVersion(ctx context.Context) string {
	if !p.env.available(p.spec.binary) {
		return ""
	}
	res := p.env.Runner.Run(ctx, Command{
		Line:    fmt.Sprintf("%s %s", p.spec.binary, p.spec.versionArgs),
		Timeout: 10 * time.Second,
	})
	if !res.Ok() {
		return ""
	}
	return detect.NormalizeVersion(res.Stdout)
}

// managerMissing reports a missing package manager as a failure with a
// pointer at the prerequisite.
func (p *packageTool) managerMissing() *Report {
	switch {
	case p.method == "bun" && !p.env.available("bun"):
		r := failed(p.spec.tool, "bun is not installed", "install bun first or set install_via: npm")
		return &r
	case p.method == "npm" && !p.env.available("npm"):
		r := failed(p.spec.tool, "npm is not installed", "install Node.js and npm first")
		return &r
	}
	return nil
}

func (p *packageTool) Install(ctx context.Context) Report {
	if p.Verify(ctx) {
		return skipped(p.spec.tool,
			fmt.Sprintf("%s is already installed", p.spec.tool),
			p.installedVersion(ctx))
	}

	if r := p.managerMissing(); r != nil {
		return *r
	}

	var line string
	if p.method == "bun" {
		line = fmt.Sprintf("bun install -g %s", p.spec.pkg)
	} else {
		line = fmt.Sprintf("npm install -g %s", p.spec.pkg)
	}

	p.env.logger().Info("installing", "tool", p.spec.tool, "via", p.method)
	res := p.env.Runner.Run(ctx, Command{Line: line, Timeout: DefaultTimeout, MaxRetries: 2})
	if !res.Ok() {
		return failed(p.spec.tool,
			fmt.Sprintf("failed to install %s via %s", p.spec.tool, p.method),
			failureDetail(res))
	}

	if !p.Verify(ctx) {
		return failed(p.spec.tool,
			fmt.Sprintf("%s installed but verification failed", p.spec.tool),
			"the install command succeeded but the binary is not usable")
	}

	return succeeded(p.spec.tool,
		fmt.Sprintf("%s installed via %s", p.spec.tool, p.method),
		p.installedVersion(ctx))
}

func (p *packageTool) Upgrade(ctx context.Context) Report {
	if !p.Verify(ctx) {
		return failed(p.spec.tool,
			fmt.Sprintf("%s is not installed", p.spec.tool),
			"install it before upgrading")
	}

	if r := p.managerMissing(); r != nil && p.spec.selfUpgrade == "" {
		return *r
	}

	before := p.installedVersion(ctx)

	var line string
	switch {
	case p.spec.selfUpgrade != "":
		line = p.spec.selfUpgrade
	case p.method == "bun":
		line = fmt.Sprintf("bun add -g %s@latest", p.spec.pkg)
	default:
		line = fmt.Sprintf("npm update -g %s", p.spec.pkg)
	}

	p.env.logger().Info("upgrading", "tool", p.spec.tool, "via", p.method)
	res := p.env.Runner.Run(ctx, Command{Line: line, Timeout: DefaultTimeout, MaxRetries: 2})
	if !res.Ok() {
		return failed(p.spec.tool,
			fmt.Sprintf("failed to upgrade %s", p.spec.tool),
			failureDetail(res))
	}

	after := p.installedVersion(ctx)
	return succeeded(p.spec.tool, upgradeMessage(p.spec.tool, before, after), after)
}

// upgradeMessage reports the before/after versions when both are known.
func upgradeMessage(tool, before, after string) string {
	if before != "" && after != "" {
		if sameVersion(before, after) {
			return fmt.Sprintf("%s already up to date (%s)", tool, after)
		}
		return fmt.Sprintf("%s upgraded from %s to %s", tool, before, after)
	}
	if after != "" {
		return fmt.Sprintf("%s upgraded (now %s)", tool, after)
	}
	return fmt.Sprintf("%s upgraded", tool)
}

// sameVersion compares as semver when both sides parse, falling back
// to string equality for values like "lts/*".
func sameVersion(a, b string) bool {
	va, errA := semver.NewVersion(strings.TrimPrefix(a, "v"))
	vb, errB := semver.NewVersion(strings.TrimPrefix(b, "v"))
	if errA == nil && errB == nil {
		return va.Equal(vb)
	}
	return a == b
}
