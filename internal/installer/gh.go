package installer

import (
	"context"
	"time"

	"github.com/thoreinstein/kick/internal/catalog"
	"github.com/thoreinstein/kick/internal/detect"
	"github.com/thoreinstein/kick/internal/platform"
)

const ghTimeout = 10 * time.Minute

// aptKeyringInstall provisions the GitHub CLI apt repository before
// installing, matching the upstream Debian/Ubuntu instructions.
const aptKeyringInstall = `(type -p wget >/dev/null || (sudo apt update && sudo apt-get install wget -y)) ` +
	`&& sudo mkdir -p -m 755 /etc/apt/keyrings ` +
	`&& out=$(mktemp) && wget -nv -O$out https://cli.github.com/packages/githubcli-archive-keyring.gpg ` +
	`&& cat $out | sudo tee /etc/apt/keyrings/githubcli-archive-keyring.gpg > /dev/null ` +
	`&& sudo chmod go+r /etc/apt/keyrings/githubcli-archive-keyring.gpg ` +
	`&& echo "deb [arch=$(dpkg --print-architecture) signed-by=/etc/apt/keyrings/githubcli-archive-keyring.gpg] https://cli.github.com/packages stable main" | sudo tee /etc/apt/sources.list.d/github-cli.list > /dev/null ` +
	`&& sudo apt update && sudo apt install gh -y`

// gh installs the GitHub CLI through the system package manager. On
// macOS that is Homebrew; on Linux it prefers brew, then apt, then dnf.
type gh struct {
	env Env
}

func newGH(env Env) Installer { return &gh{env: env} }

func (g *gh) Name() string { return catalog.GH }

func (g *gh) Method() string {
	if mgr, ok := g.packageManager(); ok {
		return mgr
	}
	return "unavailable"
}

// packageManager picks the manager to drive gh installs with.
func (g *gh) packageManager() (string, bool) {
	if g.env.available("brew") {
		return "brew", true
	}
	if g.env.Platform.OS == platform.Linux {
		if g.env.available("apt-get") {
			return "apt", true
		}
		if g.env.available("dnf") {
			return "dnf", true
		}
	}
	return "", false
}

func (g *gh) Verify(ctx context.Context) bool {
	if !g.env.available("gh") {
		return false
	}
	res := g.env.Runner.Run(ctx, Command{Line: "gh --version", Timeout: 10 * time.Second})
	return res.Ok()
}

func (g *gh) version(ctx context.Context) string {
	res := g.env.Runner.Run(ctx, Command{Line: "gh --version", Timeout: 10 * time.Second})
	if !res.Ok() {
		return ""
	}
	return detect.NormalizeVersion(res.Stdout)
}

func (g *gh) Install(ctx context.Context) Report {
	if g.Verify(ctx) {
		return skipped(catalog.GH, "gh is already installed", g.version(ctx))
	}

	mgr, ok := g.packageManager()
	if !ok {
		if g.env.Platform.OS == platform.MacOS {
			return failed(catalog.GH, "Homebrew is required to install gh on macOS",
				"install Homebrew from https://brew.sh and retry")
		}
		return failed(catalog.GH, "no supported package manager found",
			"install gh manually from https://cli.github.com")
	}

	var line string
	switch mgr {
	case "brew":
		line = "brew install gh"
	case "apt":
		line = aptKeyringInstall
	case "dnf":
		line = "sudo dnf config-manager --add-repo https://cli.github.com/packages/rpm/gh-cli.repo && sudo dnf install gh -y"
	}

	g.env.logger().Info("installing", "tool", catalog.GH, "via", mgr)
	res := g.env.Runner.Run(ctx, Command{Line: line, Timeout: ghTimeout, MaxRetries: 2})
	if !res.Ok() {
		return failed(catalog.GH, "failed to install gh via "+mgr, failureDetail(res))
	}

	if !g.Verify(ctx) {
		return failed(catalog.GH, "gh installed but verification failed",
			"the package manager reported success but gh is not usable")
	}

	return succeeded(catalog.GH, "gh installed via "+mgr, g.version(ctx))
}

func (g *gh) Upgrade(ctx context.Context) Report {
	if !g.Verify(ctx) {
		return failed(catalog.GH, "gh is not installed", "install it before upgrading")
	}

	mgr, ok := g.packageManager()
	if !ok {
		return failed(catalog.GH, "no supported package manager found",
			"upgrade gh manually from https://cli.github.com")
	}

	var line string
	switch mgr {
	case "brew":
		line = "brew upgrade gh"
	case "apt":
		line = "sudo apt update && sudo apt install --only-upgrade gh -y"
	case "dnf":
		line = "sudo dnf upgrade gh -y"
	}

	before := g.version(ctx)
	g.env.logger().Info("upgrading", "tool", catalog.GH, "via", mgr)
	res := g.env.Runner.Run(ctx, Command{Line: line, Timeout: ghTimeout, MaxRetries: 2})
	if !res.Ok() {
		return failed(catalog.GH, "failed to upgrade gh via "+mgr, failureDetail(res))
	}

	after := g.version(ctx)
	return succeeded(catalog.GH, upgradeMessage(catalog.GH, before, after), after)
}
