package installer

import (
	"context"
	"time"

	"github.com/thoreinstein/kick/internal/catalog"
	"github.com/thoreinstein/kick/internal/detect"
)

// bun installs the Bun runtime from its upstream install script.
type bun struct {
	env Env
}

func newBun(env Env) Installer { return &bun{env: env} }

func (b *bun) Name() string   { return catalog.Bun }
func (b *bun) Method() string { return "script" }

func (b *bun) Verify(ctx context.Context) bool {
	if !b.env.available("bun") {
		return false
	}
	res := b.env.Runner.Run(ctx, Command{Line: "bun --version", Timeout: 10 * time.Second})
	return res.Ok()
}

func (b *bun) version(ctx context.Context) string {
	res := b.env.Runner.Run(ctx, Command{Line: "bun --version", Timeout: 10 * time.Second})
	if !res.Ok() {
		return ""
	}
	return detect.NormalizeVersion(res.Stdout)
}

func (b *bun) Install(ctx context.Context) Report {
	if b.Verify(ctx) {
		return skipped(catalog.Bun, "bun is already installed", b.version(ctx))
	}

	b.env.logger().Info("installing", "tool", catalog.Bun)
	res := b.env.Runner.Run(ctx, Command{
		Line:       "curl -fsSL https://bun.sh/install | bash",
		Timeout:    DefaultTimeout,
		MaxRetries: 2,
	})
	if !res.Ok() {
		return failed(catalog.Bun, "failed to install bun", failureDetail(res))
	}

	if !b.Verify(ctx) {
		return failed(catalog.Bun, "bun installed but verification failed",
			"the install script ran but bun is not on PATH; open a new shell and retry")
	}

	return succeeded(catalog.Bun, "bun installed", b.version(ctx))
}

func (b *bun) Upgrade(ctx context.Context) Report {
	if !b.Verify(ctx) {
		return failed(catalog.Bun, "bun is not installed", "install it before upgrading")
	}

	before := b.version(ctx)
	b.env.logger().Info("upgrading", "tool", catalog.Bun)
	res := b.env.Runner.Run(ctx, Command{
		Line:       "bun upgrade",
		Timeout:    DefaultTimeout,
		MaxRetries: 2,
	})
	if !res.Ok() {
		return failed(catalog.Bun, "failed to upgrade bun", failureDetail(res))
	}

	after := b.version(ctx)
	return succeeded(catalog.Bun, upgradeMessage(catalog.Bun, before, after), after)
}
