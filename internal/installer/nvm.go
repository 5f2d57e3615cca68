package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	homedir "github.com/mitchellh/go-homedir"

	"github.com/thoreinstein/kick/internal/catalog"
	"github.com/thoreinstein/kick/internal/detect"
)

const defaultNVMVersion = "v0.40.4"

// shellInitLines are appended to the user's shell config so nvm is
// available in new sessions.
var shellInitLines = []string{
	`export NVM_DIR="$HOME/.nvm"`,
	`[ -s "$NVM_DIR/nvm.sh" ] && \. "$NVM_DIR/nvm.sh"`,
	`[ -s "$NVM_DIR/bash_completion" ] && \. "$NVM_DIR/bash_completion"`,
}

// nvm installs the Node version manager from its upstream install
// script. Because nvm is a shell function rather than a binary, every
// interaction sources ~/.nvm/nvm.sh inside a bash subshell.
type nvm struct {
	env Env
}

func newNVM(env Env) Installer { return &nvm{env: env} }

func (n *nvm) Name() string   { return catalog.NVM }
func (n *nvm) Method() string { return "script" }

func nvmScriptPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".nvm", "nvm.sh"), nil
}

func (n *nvm) Verify(ctx context.Context) bool {
	script, err := nvmScriptPath()
	if err != nil {
		return false
	}
	if _, err := os.Stat(script); err != nil {
		return false
	}
	res := n.env.Runner.Run(ctx, Command{
		Line:    fmt.Sprintf("source %q && nvm --version", script),
		Timeout: 10 * time.Second,
	})
	return res.Ok()
}

func (n *nvm) version(ctx context.Context) string {
	script, err := nvmScriptPath()
	if err != nil {
		return ""
	}
	res := n.env.Runner.Run(ctx, Command{
		Line:    fmt.Sprintf("source %q && nvm --version", script),
		Timeout: 10 * time.Second,
	})
	if !res.Ok() {
		return ""
	}
	return detect.NormalizeVersion(res.Stdout)
}

func (n *nvm) Install(ctx context.Context) Report {
	if n.Verify(ctx) {
		return skipped(catalog.NVM, "nvm is already installed", n.version(ctx))
	}

	if err := n.runInstallScript(ctx); err != nil {
		return failed(catalog.NVM, "failed to install nvm", err.Error())
	}

	if err := n.ensureShellInit(); err != nil {
		n.env.logger().Warn("could not update shell config", "error", err)
	}

	if !n.Verify(ctx) {
		return failed(catalog.NVM, "nvm installed but verification failed",
			"the install script ran but ~/.nvm/nvm.sh is not usable")
	}

	return succeeded(catalog.NVM, "nvm installed", n.version(ctx))
}

func (n *nvm) Upgrade(ctx context.Context) Report {
	if !n.Verify(ctx) {
		return failed(catalog.NVM, "nvm is not installed", "install it before upgrading")
	}
	before := n.version(ctx)

	// Upstream upgrades nvm by rerunning the install script in place.
	if err := n.runInstallScript(ctx); err != nil {
		return failed(catalog.NVM, "failed to upgrade nvm", err.Error())
	}

	after := n.version(ctx)
	return succeeded(catalog.NVM, upgradeMessage(catalog.NVM, before, after), after)
}

func (n *nvm) runInstallScript(ctx context.Context) error {
	version := defaultNVMVersion
	if pinned := n.env.Tool.PinnedVersion(); pinned != "" {
		version = pinned
		if !strings.HasPrefix(version, "v") {
			version = "v" + version
		}
	}
	url := fmt.Sprintf("https://raw.githubusercontent.com/nvm-sh/nvm/%s/install.sh", version)

	tmp, err := os.CreateTemp("", "nvm-install-*.sh")
	if err != nil {
		return errors.Wrap(err, "creating temp script")
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	n.env.logger().Info("installing", "tool", catalog.NVM, "version", version)
	fetch := n.env.Runner.Run(ctx, Command{
		Line:       fmt.Sprintf("curl -fsSL -o %q %s", tmp.Name(), url),
		Timeout:    DefaultTimeout,
		MaxRetries: 2,
	})
	if !fetch.Ok() {
		return errors.Newf("download install script: %s", failureDetail(fetch))
	}

	run := n.env.Runner.Run(ctx, Command{
		Line:    fmt.Sprintf("bash %q", tmp.Name()),
		Timeout: DefaultTimeout,
	})
	if !run.Ok() {
		return errors.Newf("run install script: %s", failureDetail(run))
	}
	return nil
}

// ensureShellInit appends the nvm init lines to the detected shell
// config file, skipping lines already present.
func (n *nvm) ensureShellInit() error {
	rc := n.env.Platform.ShellConfigFile
	if rc == "" {
		return nil
	}

	existing, err := os.ReadFile(rc)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	content := string(existing)

	var missing []string
	for _, line := range shellInitLines {
		if !strings.Contains(content, line) {
			missing = append(missing, line)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	f, err := os.OpenFile(rc, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	var b strings.Builder
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n# nvm\n")
	for _, line := range missing {
		b.WriteString(line)
		b.WriteString("\n")
	}
	_, err = f.WriteString(b.String())
	return err
}
