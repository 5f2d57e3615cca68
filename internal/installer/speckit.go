package installer

import (
	"context"
	"time"

	"github.com/thoreinstein/kick/internal/catalog"
	"github.com/thoreinstein/kick/internal/detect"
)

const specKitSource = "git+https://github.com/github/spec-kit.git"

// specKit installs the specify CLI as a uv tool, so uv must be present.
type specKit struct {
	env Env
}

func newSpecKit(env Env) Installer { return &specKit{env: env} }

func (s *specKit) Name() string   { return catalog.SpecKit }
func (s *specKit) Method() string { return "uv" }

func (s *specKit) Verify(ctx context.Context) bool {
	if !s.env.available("specify") {
		return false
	}
	res := s.env.Runner.Run(ctx, Command{Line: "specify version", Timeout: 10 * time.Second})
	return res.Ok()
}

func (s *specKit) version(ctx context.Context) string {
	res := s.env.Runner.Run(ctx, Command{Line: "specify version", Timeout: 10 * time.Second})
	if !res.Ok() {
		return ""
	}
	return detect.NormalizeVersion(res.Stdout)
}

func (s *specKit) Install(ctx context.Context) Report {
	if s.Verify(ctx) {
		return skipped(catalog.SpecKit, "spec-kit is already installed", s.version(ctx))
	}

	if !s.env.available("uv") {
		return failed(catalog.SpecKit, "uv is not installed",
			"spec-kit is installed as a uv tool; enable uv or install it first")
	}

	s.env.logger().Info("installing", "tool", catalog.SpecKit)
	res := s.env.Runner.Run(ctx, Command{
		Line:       "uv tool install specify-cli --from " + specKitSource,
		Timeout:    DefaultTimeout,
		MaxRetries: 2,
	})
	if !res.Ok() {
		return failed(catalog.SpecKit, "failed to install spec-kit", failureDetail(res))
	}

	if !s.Verify(ctx) {
		return failed(catalog.SpecKit, "spec-kit installed but verification failed",
			"uv reported success but the specify binary is not usable")
	}

	return succeeded(catalog.SpecKit, "spec-kit installed via uv", s.version(ctx))
}

func (s *specKit) Upgrade(ctx context.Context) Report {
	if !s.Verify(ctx) {
		return failed(catalog.SpecKit, "spec-kit is not installed", "install it before upgrading")
	}

	if !s.env.available("uv") {
		return failed(catalog.SpecKit, "uv is not installed",
			"spec-kit is upgraded as a uv tool; install uv first")
	}

	before := s.version(ctx)
	s.env.logger().Info("upgrading", "tool", catalog.SpecKit)
	res := s.env.Runner.Run(ctx, Command{
		Line:       "uv tool install specify-cli --force --from " + specKitSource,
		Timeout:    DefaultTimeout,
		MaxRetries: 2,
	})
	if !res.Ok() {
		return failed(catalog.SpecKit, "failed to upgrade spec-kit", failureDetail(res))
	}

	after := s.version(ctx)
	return succeeded(catalog.SpecKit, upgradeMessage(catalog.SpecKit, before, after), after)
}
