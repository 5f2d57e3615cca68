package installer

import (
	"context"
	"time"

	"github.com/thoreinstein/kick/internal/catalog"
	"github.com/thoreinstein/kick/internal/detect"
)

// bmad sets up the BMad Method toolkit through bunx or npx.
type bmad struct {
	env    Env
	method string
}

func newBMad(env Env) Installer {
	return &bmad{env: env, method: env.resolveMethod(env.Tool.Via())}
}

func (b *bmad) Name() string   { return catalog.BMadMethod }
func (b *bmad) Method() string { return b.method }

func (b *bmad) Verify(ctx context.Context) bool {
	if !b.env.available("bmad") {
		return false
	}
	res := b.env.Runner.Run(ctx, Command{Line: "bmad --version", Timeout: 10 * time.Second})
	return res.Ok()
}

func (b *bmad) version(ctx context.Context) string {
	res := b.env.Runner.Run(ctx, Command{Line: "bmad --version", Timeout: 10 * time.Second})
	if !res.Ok() {
		return ""
	}
	return detect.NormalizeVersion(res.Stdout)
}

func (b *bmad) runnerCommand() (string, *Report) {
	switch b.method {
	case "bun":
		if !b.env.available("bunx") && !b.env.available("bun") {
			r := failed(catalog.BMadMethod, "bun is not installed",
				"install bun first or set install_via: npm")
			return "", &r
		}
		return "bunx", nil
	default:
		if !b.env.available("npx") {
			r := failed(catalog.BMadMethod, "npx is not installed",
				"install Node.js and npm first")
			return "", &r
		}
		return "npx", nil
	}
}

func (b *bmad) Install(ctx context.Context) Report {
	if b.Verify(ctx) {
		return skipped(catalog.BMadMethod, "bmad-method is already installed", b.version(ctx))
	}

	runner, errReport := b.runnerCommand()
	if errReport != nil {
		return *errReport
	}

	b.env.logger().Info("installing", "tool", catalog.BMadMethod, "via", b.method)
	res := b.env.Runner.Run(ctx, Command{
		Line:       runner + " bmad-method init",
		Timeout:    DefaultTimeout,
		MaxRetries: 2,
	})
	if !res.Ok() {
		return failed(catalog.BMadMethod, "failed to install bmad-method", failureDetail(res))
	}

	if !b.Verify(ctx) {
		return failed(catalog.BMadMethod, "bmad-method installed but verification failed",
			"init ran but the bmad binary is not usable")
	}

	return succeeded(catalog.BMadMethod, "bmad-method installed via "+b.method, b.version(ctx))
}

func (b *bmad) Upgrade(ctx context.Context) Report {
	if !b.Verify(ctx) {
		return failed(catalog.BMadMethod, "bmad-method is not installed",
			"install it before upgrading")
	}

	runner, errReport := b.runnerCommand()
	if errReport != nil {
		return *errReport
	}

	before := b.version(ctx)
	b.env.logger().Info("upgrading", "tool", catalog.BMadMethod, "via", b.method)
	res := b.env.Runner.Run(ctx, Command{
		Line:       runner + " bmad-method@latest init",
		Timeout:    DefaultTimeout,
		MaxRetries: 2,
	})
	if !res.Ok() {
		return failed(catalog.BMadMethod, "failed to upgrade bmad-method", failureDetail(res))
	}

	after := b.version(ctx)
	return succeeded(catalog.BMadMethod, upgradeMessage(catalog.BMadMethod, before, after), after)
}
