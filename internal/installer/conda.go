package installer

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/kick/internal/catalog"
	"github.com/thoreinstein/kick/internal/detect"
	"github.com/thoreinstein/kick/internal/platform"
)

const condaMirrorBase = "https://mirrors.sustech.edu.cn/anaconda/miniconda"

// conda installs Miniconda from a platform-specific installer script.
type conda struct {
	env Env
}

func newConda(env Env) Installer { return &conda{env: env} }

func (c *conda) Name() string   { return catalog.Conda }
func (c *conda) Method() string { return "script" }

func (c *conda) Verify(ctx context.Context) bool {
	if !c.env.available("conda") {
		return false
	}
	res := c.env.Runner.Run(ctx, Command{Line: "conda --version", Timeout: 10 * time.Second})
	return res.Ok()
}

func (c *conda) version(ctx context.Context) string {
	res := c.env.Runner.Run(ctx, Command{Line: "conda --version", Timeout: 10 * time.Second})
	if !res.Ok() {
		return ""
	}
	return detect.NormalizeVersion(res.Stdout)
}

// installerName picks the Miniconda installer matching the platform.
func condaInstallerName(p platform.Info) (string, bool) {
	switch {
	case p.OS == platform.Linux && p.Arch == platform.X8664:
		return "Miniconda3-latest-Linux-x86_64.sh", true
	case p.OS == platform.MacOS && p.Arch == platform.ARM64:
		return "Miniconda3-latest-MacOSX-arm64.sh", true
	case p.OS == platform.MacOS && p.Arch == platform.X8664:
		return "Miniconda3-latest-MacOSX-x86_64.sh", true
	}
	return "", false
}

func (c *conda) Install(ctx context.Context) Report {
	if c.Verify(ctx) {
		return skipped(catalog.Conda, "conda is already installed", c.version(ctx))
	}

	name, ok := condaInstallerName(c.env.Platform)
	if !ok {
		return failed(catalog.Conda,
			fmt.Sprintf("no Miniconda installer for %s/%s", c.env.Platform.OS, c.env.Platform.Arch),
			"install conda manually from https://docs.conda.io")
	}

	if err := c.runInstaller(ctx, name); err != nil {
		return failed(catalog.Conda, "failed to install conda", err.Error())
	}

	if !c.Verify(ctx) {
		return failed(catalog.Conda, "conda installed but verification failed",
			"the installer ran but conda is not on PATH; run 'conda init' and open a new shell")
	}

	return succeeded(catalog.Conda, "conda installed", c.version(ctx))
}

func (c *conda) Upgrade(ctx context.Context) Report {
	if !c.Verify(ctx) {
		return failed(catalog.Conda, "conda is not installed", "install it before upgrading")
	}

	name, ok := condaInstallerName(c.env.Platform)
	if !ok {
		return failed(catalog.Conda,
			fmt.Sprintf("no Miniconda installer for %s/%s", c.env.Platform.OS, c.env.Platform.Arch),
			"upgrade conda manually")
	}

	before := c.version(ctx)
	if err := c.runInstaller(ctx, name); err != nil {
		return failed(catalog.Conda, "failed to upgrade conda", err.Error())
	}

	after := c.version(ctx)
	return succeeded(catalog.Conda, upgradeMessage(catalog.Conda, before, after), after)
}

// runInstaller downloads the installer and runs it in batch mode so an
// existing installation is updated in place.
func (c *conda) runInstaller(ctx context.Context, name string) error {
	tmp, err := os.CreateTemp("", "miniconda-*.sh")
	if err != nil {
		return errors.Wrap(err, "creating temp script")
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	url := fmt.Sprintf("%s/%s", condaMirrorBase, name)
	c.env.logger().Info("installing", "tool", catalog.Conda, "installer", name)

	fetch := c.env.Runner.Run(ctx, Command{
		Line:       fmt.Sprintf("curl -fsSL -o %q %s", tmp.Name(), url),
		Timeout:    DefaultTimeout,
		MaxRetries: 2,
	})
	if !fetch.Ok() {
		return errors.Newf("download installer: %s", failureDetail(fetch))
	}

	run := c.env.Runner.Run(ctx, Command{
		Line:    fmt.Sprintf("bash %q -b -f", tmp.Name()),
		Timeout: 10 * time.Minute,
	})
	if !run.Ok() {
		return errors.Newf("run installer: %s", failureDetail(run))
	}
	return nil
}
