// Package detect probes the host for installed development tools.
//
// The probe is the orchestrator's authority on whether a tool is present;
// results are produced fresh per query and never cached beyond a single
// skip-vs-install decision.
package detect

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/thoreinstein/kick/internal/catalog"
)

// probeTimeout bounds each version query; a hung binary must not stall a run.
const probeTimeout = 5 * time.Second

// ToolStatus describes one tool's installation state at probe time.
type ToolStatus struct {
	Name      string `json:"name"`
	Installed bool   `json:"installed"`
	Version   string `json:"version,omitempty"`
	Path      string `json:"path,omitempty"`
}

// Probe reports whether tools are installed and at which version.
type Probe interface {
	// Detect probes one catalog tool by name. Unknown names report
	// Installed=false.
	Detect(ctx context.Context, tool string) ToolStatus
}

// binarySpec maps a catalog tool to the executable it is probed through.
type binarySpec struct {
	executable  string
	versionArgs []string
}

// binaries covers every catalog tool that resolves through PATH lookup.
// nvm is absent: it is a shell function, probed specially.
var binaries = map[string]binarySpec{
	catalog.Node:       {executable: "node", versionArgs: []string{"--version"}},
	catalog.Conda:      {executable: "conda", versionArgs: []string{"--version"}},
	catalog.Bun:        {executable: "bun", versionArgs: []string{"--version"}},
	catalog.UV:         {executable: "uv", versionArgs: []string{"--version"}},
	catalog.GH:         {executable: "gh", versionArgs: []string{"--version"}},
	catalog.ClaudeCode: {executable: "claude", versionArgs: []string{"--version"}},
	catalog.Codex:      {executable: "codex", versionArgs: []string{"--version"}},
	catalog.Copilot:    {executable: "copilot", versionArgs: []string{"--version"}},
	catalog.OpenCode:   {executable: "opencode", versionArgs: []string{"--version"}},
	catalog.SpecKit:    {executable: "specify", versionArgs: []string{"version"}},
	catalog.BMadMethod: {executable: "bmad", versionArgs: []string{"--version"}},
	catalog.UIPro:      {executable: "uipro", versionArgs: []string{"versions"}},
}

var versionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`v?(\d+\.\d+\.\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?i)version\s+v?(\d+\.\d+\.\d+)`),
	regexp.MustCompile(`(\d+\.\d+)`),
}

// ExecProbe detects tools by resolving executables on PATH and running their
// version queries.
type ExecProbe struct{}

var _ Probe = ExecProbe{}

// Detect probes one tool.
func (ExecProbe) Detect(ctx context.Context, tool string) ToolStatus {
	if tool == catalog.NVM {
		return detectNVM(ctx)
	}

	spec, ok := binaries[tool]
	if !ok {
		return ToolStatus{Name: tool}
	}

	path, err := exec.LookPath(spec.executable)
	if err != nil {
		return ToolStatus{Name: tool}
	}

	return ToolStatus{
		Name:      tool,
		Installed: true,
		Version:   readVersion(ctx, path, spec.versionArgs),
		Path:      path,
	}
}

// DetectAll probes every catalog tool and returns the results in
// dependency order.
func DetectAll(ctx context.Context, p Probe) []ToolStatus {
	out := make([]ToolStatus, 0, len(catalog.InstallOrder))
	for _, tool := range catalog.InstallOrder {
		out = append(out, p.Detect(ctx, tool))
	}
	return out
}

// detectNVM handles nvm's shell-function installation: the marker is
// ~/.nvm/nvm.sh, and the version query has to source it first.
func detectNVM(ctx context.Context) ToolStatus {
	home, err := homedir.Dir()
	if err != nil {
		return ToolStatus{Name: catalog.NVM}
	}
	nvmSh := filepath.Join(home, ".nvm", "nvm.sh")
	if !fileExists(nvmSh) {
		return ToolStatus{Name: catalog.NVM}
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "bash", "-c", "source "+nvmSh+" && nvm --version")
	output, err := cmd.Output()
	if err != nil {
		// The script exists even though the version lookup failed.
		return ToolStatus{Name: catalog.NVM, Installed: true, Path: nvmSh}
	}

	return ToolStatus{
		Name:      catalog.NVM,
		Installed: true,
		Version:   NormalizeVersion(string(output)),
		Path:      nvmSh,
	}
}

func readVersion(ctx context.Context, path string, args []string) string {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return ""
	}
	return NormalizeVersion(string(output))
}

// NormalizeVersion extracts a bare version number from tool output, which
// ranges from "v22.11.0" to "gh version 2.62.0 (2024-11-14)". Falls back to
// the trimmed first line when nothing version-shaped appears.
func NormalizeVersion(output string) string {
	trimmed := strings.TrimSpace(output)
	for _, pattern := range versionPatterns {
		if m := pattern.FindStringSubmatch(trimmed); m != nil {
			return m[1]
		}
	}
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		return trimmed[:idx]
	}
	return trimmed
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
