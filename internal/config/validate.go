package config

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/thoreinstein/kick/internal/catalog"
)

// ValidInstallMethods are the mechanisms accepted in install_via.
var ValidInstallMethods = []string{"bun", "npm", "brew"}

// Validate checks cfg for problems and returns human-readable descriptions.
// An empty slice means the config is acceptable for use. Problems are
// reported, not raised; callers decide whether to proceed.
func Validate(cfg *Config) []string {
	if cfg == nil {
		return []string{"config is nil"}
	}

	var problems []string

	// Deterministic order for stable output.
	names := make([]string, 0, len(cfg.Tools))
	for name := range cfg.Tools {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		tool := cfg.Tools[name]

		if !catalog.Known(name) {
			problems = append(problems, fmt.Sprintf("unknown tool name: %s", name))
		}

		if v := tool.PinnedVersion(); v != "" && !validVersion(v) {
			problems = append(problems, fmt.Sprintf("tool %s has malformed version %q", name, v))
		}

		if via := tool.Via(); via != "" && !validInstallMethod(via) {
			problems = append(problems, fmt.Sprintf(
				"tool %s has invalid install_via %q (valid: %s)",
				name, via, strings.Join(ValidInstallMethods, ", ")))
		}
	}

	for field, value := range map[string]string{
		"npm":            cfg.Registry.NPMRegistry(),
		"bun":            cfg.Registry.BunRegistry(),
		"pypi":           cfg.Registry.PyPIIndex(),
		"python_install": cfg.Registry.PythonInstallMirror(),
	} {
		if !validRegistryURL(value) {
			problems = append(problems, fmt.Sprintf("registry %s has invalid URL %q", field, value))
		}
	}

	sort.Strings(problems)
	return problems
}

// validVersion accepts semver-ish versions ("1.2.3", "v22", "22.11") and
// nvm-style LTS aliases ("lts/jod", "lts/*").
func validVersion(v string) bool {
	if strings.HasPrefix(v, "lts/") {
		return len(v) > len("lts/")
	}
	_, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	return err == nil
}

func validInstallMethod(via string) bool {
	lower := strings.ToLower(via)
	for _, m := range ValidInstallMethods {
		if lower == m {
			return true
		}
	}
	return false
}

func validRegistryURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
