package installer

import (
	"context"
	"time"

	"github.com/thoreinstein/kick/internal/catalog"
	"github.com/thoreinstein/kick/internal/detect"
)

// uv installs the uv Python package manager from its upstream script.
type uv struct {
	env Env
}

func newUV(env Env) Installer { return &uv{env: env} }

func (u *uv) Name() string   { return catalog.UV }
func (u *uv) Method() string { return "script" }

func (u *uv) Verify(ctx context.Context) bool {
	if !u.env.available("uv") {
		return false
	}
	res := u.env.Runner.Run(ctx, Command{Line: "uv --version", Timeout: 10 * time.Second})
	return res.Ok()
}

func (u *uv) version(ctx context.Context) string {
	res := u.env.Runner.Run(ctx, Command{Line: "uv --version", Timeout: 10 * time.Second})
	if !res.Ok() {
		return ""
	}
	return detect.NormalizeVersion(res.Stdout)
}

func (u *uv) Install(ctx context.Context) Report {
	if u.Verify(ctx) {
		return skipped(catalog.UV, "uv is already installed", u.version(ctx))
	}

	u.env.logger().Info("installing", "tool", catalog.UV)
	res := u.env.Runner.Run(ctx, Command{
		Line:       "curl -LsSf https://astral.sh/uv/install.sh | sh",
		Timeout:    DefaultTimeout,
		MaxRetries: 2,
	})
	if !res.Ok() {
		return failed(catalog.UV, "failed to install uv", failureDetail(res))
	}

	if !u.Verify(ctx) {
		return failed(catalog.UV, "uv installed but verification failed",
			"the install script ran but uv is not on PATH; ensure ~/.local/bin is on PATH")
	}

	return succeeded(catalog.UV, "uv installed", u.version(ctx))
}

func (u *uv) Upgrade(ctx context.Context) Report {
	if !u.Verify(ctx) {
		return failed(catalog.UV, "uv is not installed", "install it before upgrading")
	}

	before := u.version(ctx)
	u.env.logger().Info("upgrading", "tool", catalog.UV)
	res := u.env.Runner.Run(ctx, Command{
		Line:       "uv self update",
		Timeout:    DefaultTimeout,
		MaxRetries: 2,
	})
	if !res.Ok() {
		return failed(catalog.UV, "failed to upgrade uv", failureDetail(res))
	}

	after := u.version(ctx)
	return succeeded(catalog.UV, upgradeMessage(catalog.UV, before, after), after)
}
