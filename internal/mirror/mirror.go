// Package mirror points installed package managers at the configured
// registry mirrors.
//
// npm keeps its registry in its own config store, so that one goes
// through the npm CLI. bun and uv read TOML files, which are merged in
// place so unrelated settings survive.
package mirror

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	homedir "github.com/mitchellh/go-homedir"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/kick/internal/installer"
	"github.com/thoreinstein/kick/internal/logging"
)

// Configurator writes mirror settings for npm, bun, and uv.
type Configurator struct {
	Runner installer.Runner
	Log    *slog.Logger

	// Home overrides the user home directory, for tests.
	Home string
}

func (c *Configurator) home() (string, error) {
	if c.Home != "" {
		return c.Home, nil
	}
	return homedir.Dir()
}

func (c *Configurator) logger() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return logging.NewDiscard()
}

// ConfigureNPM sets the global npm registry.
func (c *Configurator) ConfigureNPM(ctx context.Context, registry string) error {
	res := c.Runner.Run(ctx, installer.Command{
		Line:    fmt.Sprintf("npm config set registry %q", registry),
		Timeout: 30 * time.Second,
	})
	if !res.Ok() {
		if res.Stderr != "" {
			return errors.Newf("npm config set registry: %s", res.Stderr)
		}
		return errors.Newf("npm config set registry exited with code %d", res.ExitCode)
	}
	c.logger().Info("npm registry configured", "registry", registry)
	return nil
}

// ConfigureBun sets [install].registry in ~/.bunfig.toml, preserving
// any other sections already in the file.
func (c *Configurator) ConfigureBun(registry string) error {
	home, err := c.home()
	if err != nil {
		return err
	}
	path := filepath.Join(home, ".bunfig.toml")

	doc, err := readTOML(path)
	if err != nil {
		return err
	}

	install, _ := doc["install"].(map[string]any)
	if install == nil {
		install = map[string]any{}
	}
	install["registry"] = registry
	doc["install"] = install

	if err := writeTOML(path, doc); err != nil {
		return err
	}
	c.logger().Info("bun registry configured", "registry", registry, "file", path)
	return nil
}

// ConfigureUV sets the PyPI index and the python-build-standalone
// mirror in ~/.config/uv/uv.toml.
func (c *Configurator) ConfigureUV(index, pythonMirror string) error {
	home, err := c.home()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".config", "uv")
	path := filepath.Join(dir, "uv.toml")

	doc, err := readTOML(path)
	if err != nil {
		return err
	}

	doc["python-install-mirror"] = pythonMirror
	doc["index"] = mergeUVIndex(doc["index"], index)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeTOML(path, doc); err != nil {
		return err
	}
	c.logger().Info("uv mirrors configured", "index", index, "file", path)
	return nil
}

// mergeUVIndex replaces the default index entry with ours, keeping any
// extra non-default indexes the user added.
func mergeUVIndex(existing any, url string) []map[string]any {
	ours := map[string]any{"url": url, "default": true}
	merged := []map[string]any{ours}

	entries, _ := existing.([]any)
	for _, e := range entries {
		entry, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if isDefault, _ := entry["default"].(bool); isDefault {
			continue
		}
		merged = append(merged, entry)
	}
	return merged
}

func readTOML(path string) (map[string]any, error) {
	doc := map[string]any{}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return doc, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return doc, nil
}

func writeTOML(path string, doc map[string]any) error {
	data, err := toml.Marshal(doc)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", path)
	}
	return os.WriteFile(path, data, 0o644)
}
