package installer

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/thoreinstein/kick/internal/catalog"
	"github.com/thoreinstein/kick/internal/detect"
)

const defaultNodeVersion = "lts/*"

// node installs Node.js through nvm, so nvm must already be present.
type node struct {
	env Env
}

func newNode(env Env) Installer { return &node{env: env} }

func (n *node) Name() string   { return catalog.Node }
func (n *node) Method() string { return "nvm" }

func (n *node) Verify(ctx context.Context) bool {
	if !n.env.available("node") {
		return false
	}
	res := n.env.Runner.Run(ctx, Command{Line: "node --version", Timeout: 10 * time.Second})
	return res.Ok()
}

func (n *node) version(ctx context.Context) string {
	res := n.env.Runner.Run(ctx, Command{Line: "node --version", Timeout: 10 * time.Second})
	if !res.Ok() {
		return ""
	}
	return detect.NormalizeVersion(res.Stdout)
}

func (n *node) Install(ctx context.Context) Report {
	if n.Verify(ctx) {
		return skipped(catalog.Node, "node is already installed", n.version(ctx))
	}

	script, err := nvmScriptPath()
	if err != nil {
		return failed(catalog.Node, "cannot locate nvm", err.Error())
	}
	if _, err := os.Stat(script); err != nil {
		return failed(catalog.Node, "nvm is not installed",
			"node is installed through nvm; enable nvm or install it first")
	}

	version := defaultNodeVersion
	if pinned := n.env.Tool.PinnedVersion(); pinned != "" {
		version = pinned
	}

	n.env.logger().Info("installing", "tool", catalog.Node, "version", version)
	res := n.env.Runner.Run(ctx, Command{
		Line:       fmt.Sprintf("source %q && nvm install %q && nvm alias default %q", script, version, version),
		Timeout:    DefaultTimeout,
		MaxRetries: 2,
	})
	if !res.Ok() {
		return failed(catalog.Node,
			fmt.Sprintf("failed to install node %s", version), failureDetail(res))
	}

	if !n.Verify(ctx) {
		return failed(catalog.Node, "node installed but verification failed",
			"nvm install succeeded but node is not on PATH; open a new shell and retry")
	}

	return succeeded(catalog.Node,
		fmt.Sprintf("node %s installed via nvm", version), n.version(ctx))
}

func (n *node) Upgrade(ctx context.Context) Report {
	if !n.Verify(ctx) {
		return failed(catalog.Node, "node is not installed", "install it before upgrading")
	}

	script, err := nvmScriptPath()
	if err != nil {
		return failed(catalog.Node, "cannot locate nvm", err.Error())
	}
	if _, err := os.Stat(script); err != nil {
		return failed(catalog.Node, "nvm is not installed",
			"node is upgraded through nvm; install nvm first")
	}

	before := n.version(ctx)
	version := defaultNodeVersion
	if pinned := n.env.Tool.PinnedVersion(); pinned != "" {
		version = pinned
	}

	n.env.logger().Info("upgrading", "tool", catalog.Node, "version", version)
	res := n.env.Runner.Run(ctx, Command{
		Line:       fmt.Sprintf("source %q && nvm install %q && nvm alias default %q", script, version, version),
		Timeout:    DefaultTimeout,
		MaxRetries: 2,
	})
	if !res.Ok() {
		return failed(catalog.Node, "failed to upgrade node", failureDetail(res))
	}

	after := n.version(ctx)
	return succeeded(catalog.Node, upgradeMessage(catalog.Node, before, after), after)
}
