package wizard

import (
	"testing"

	"github.com/thoreinstein/kick/internal/catalog"
	"github.com/thoreinstein/kick/internal/config"
)

func TestApply(t *testing.T) {
	cfg := config.Default()

	apply(cfg, "demo", []string{catalog.NVM, catalog.Node, catalog.Bun}, "22", "bun", "https://mirror.example/npm/")

	if cfg.Project.Name != "demo" {
		t.Errorf("Project.Name = %q", cfg.Project.Name)
	}

	for _, tool := range []string{catalog.NVM, catalog.Node, catalog.Bun} {
		if !cfg.Tool(tool).IsEnabled() {
			t.Errorf("selected tool %s should be enabled", tool)
		}
	}
	for _, tool := range []string{catalog.Conda, catalog.UV, catalog.GH} {
		if cfg.Tool(tool).IsEnabled() {
			t.Errorf("unselected tool %s should be disabled", tool)
		}
		if cfg.Tool(tool).Enabled == nil {
			t.Errorf("unselected tool %s should be explicitly disabled, not unset", tool)
		}
	}

	if got := cfg.Tool(catalog.Node).PinnedVersion(); got != "22" {
		t.Errorf("node version = %q, want %q", got, "22")
	}
	if got := cfg.Registry.NPMRegistry(); got != "https://mirror.example/npm/" {
		t.Errorf("NPMRegistry() = %q", got)
	}
	if got := cfg.Tool(catalog.ClaudeCode).Via(); got != "bun" {
		t.Errorf("claude-code install_via = %q, want bun", got)
	}
	if got := cfg.Tool(catalog.Copilot).Via(); got != "" {
		t.Errorf("copilot install_via = %q, want unset", got)
	}
}

func TestApplyEmptyAnswersKeepDefaults(t *testing.T) {
	cfg := config.Default()

	apply(cfg, "", catalog.Tools(), "", "", "")

	if cfg.Project.Name != "" {
		t.Errorf("Project.Name = %q, want empty", cfg.Project.Name)
	}
	if cfg.Tool(catalog.Node).Version != nil {
		t.Error("empty version answer should leave the version unset")
	}
	if got := cfg.Registry.NPMRegistry(); got != config.DefaultNPMRegistry {
		t.Errorf("NPMRegistry() = %q, want default", got)
	}
	if cfg.Tool(catalog.ClaudeCode).InstallVia != nil {
		t.Error("auto answer should leave install_via unset")
	}
}

func TestEnabledTools(t *testing.T) {
	cfg := config.Default()
	disabled := false
	cfg.Tools[catalog.Conda] = config.ToolConfig{Enabled: &disabled}

	tools := enabledTools(cfg)

	if len(tools) != len(catalog.InstallOrder)-1 {
		t.Fatalf("got %d tools, want %d", len(tools), len(catalog.InstallOrder)-1)
	}
	for _, tool := range tools {
		if tool == catalog.Conda {
			t.Error("disabled tool listed as enabled")
		}
	}
}
