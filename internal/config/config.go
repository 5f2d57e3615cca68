package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	kickerrors "github.com/thoreinstein/kick/internal/errors"
)

// FileName is the dotfile consulted in the project and user layers.
const FileName = ".kickrc"

// Registry mirror defaults. Installers fall back to these when no layer
// overrides them.
const (
	DefaultNPMRegistry   = "https://registry.npmmirror.com/"
	DefaultBunRegistry   = "https://registry.npmmirror.com/"
	DefaultPyPIIndex     = "https://mirrors.sustech.edu.cn/pypi/web/simple"
	DefaultPythonInstall = "https://ghfast.top/https://github.com/astral-sh/python-build-standalone/releases/download"
)

// ToolConfig configures a single tool. Fields are pointers so the merge can
// distinguish "explicitly set" from "inherit the lower layer".
type ToolConfig struct {
	Enabled    *bool   `yaml:"enabled,omitempty"`
	Version    *string `yaml:"version,omitempty"`
	InstallVia *string `yaml:"install_via,omitempty"`
}

// IsEnabled reports the effective enabled flag; tools default to enabled.
func (t ToolConfig) IsEnabled() bool {
	return t.Enabled == nil || *t.Enabled
}

// PinnedVersion returns the configured version, or "" for the tool default.
func (t ToolConfig) PinnedVersion() string {
	if t.Version == nil {
		return ""
	}
	return *t.Version
}

// Via returns the configured install mechanism, or "" when the installer
// should probe for one.
func (t ToolConfig) Via() string {
	if t.InstallVia == nil {
		return ""
	}
	return *t.InstallVia
}

// ProjectConfig holds project-level settings.
type ProjectConfig struct {
	Name string `yaml:"name,omitempty"`
}

// RegistryConfig holds mirror/source URLs used by installers. Fields are
// pointers for the same explicit-set merge semantics as ToolConfig.
type RegistryConfig struct {
	NPM           *string `yaml:"npm,omitempty"`
	Bun           *string `yaml:"bun,omitempty"`
	PyPI          *string `yaml:"pypi,omitempty"`
	PythonInstall *string `yaml:"python_install,omitempty"`
}

// NPMRegistry returns the effective npm registry URL.
func (r RegistryConfig) NPMRegistry() string {
	return stringOr(r.NPM, DefaultNPMRegistry)
}

// BunRegistry returns the effective Bun registry URL.
func (r RegistryConfig) BunRegistry() string {
	return stringOr(r.Bun, DefaultBunRegistry)
}

// PyPIIndex returns the effective PyPI index URL.
func (r RegistryConfig) PyPIIndex() string {
	return stringOr(r.PyPI, DefaultPyPIIndex)
}

// PythonInstallMirror returns the effective python-build-standalone mirror.
func (r RegistryConfig) PythonInstallMirror() string {
	return stringOr(r.PythonInstall, DefaultPythonInstall)
}

func stringOr(p *string, fallback string) string {
	if p == nil || *p == "" {
		return fallback
	}
	return *p
}

// Config is the effective configuration for one CLI invocation. It is
// constructed once by the merge and treated as immutable afterwards.
type Config struct {
	Project  ProjectConfig         `yaml:"project,omitempty"`
	Tools    map[string]ToolConfig `yaml:"tools,omitempty"`
	Registry RegistryConfig        `yaml:"registry,omitempty"`
}

// Default returns the built-in configuration: no project name, no per-tool
// overrides (every catalog tool is implicitly enabled), default registries.
func Default() *Config {
	return &Config{Tools: map[string]ToolConfig{}}
}

// Tool returns the effective ToolConfig for name. Tools without an entry
// get the zero ToolConfig, which is enabled with no pinned version.
func (c *Config) Tool(name string) ToolConfig {
	if c.Tools == nil {
		return ToolConfig{}
	}
	return c.Tools[name]
}

// LoadFromFile parses a YAML config file. Fields absent from the file keep
// their zero (unset) value; unknown top-level sections are ignored. A file
// that cannot be read or parsed is a config error carrying the path.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, kickerrors.NewConfigError(err, path)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, kickerrors.NewConfigError(err, path)
	}
	if cfg.Tools == nil {
		cfg.Tools = map[string]ToolConfig{}
	}
	return cfg, nil
}

// SaveToFile serializes cfg losslessly to path, creating parent directories
// as needed. Loading the written file reproduces every field that was set.
func SaveToFile(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return kickerrors.NewConfigError(err, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return kickerrors.NewConfigError(err, path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return kickerrors.NewConfigError(err, path)
	}
	return nil
}

// UserConfigPath returns the per-user config file (~/.kickrc).
func UserConfigPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, FileName), nil
}

// LoadWithPriority builds the effective config from the four layers:
// built-in defaults, then user config, then project config, then the
// CLI-specified file, each later layer's explicit values winning.
//
// A missing file is silently skipped; a present-but-malformed file aborts
// with a config error. Empty paths skip their layer.
func LoadWithPriority(cliPath, projectPath, userPath string) (*Config, error) {
	cfg := Default()

	for _, path := range []string{userPath, projectPath, cliPath} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, kickerrors.NewConfigError(err, path)
		}
		layer, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = Merge(cfg, layer)
	}

	return cfg, nil
}
