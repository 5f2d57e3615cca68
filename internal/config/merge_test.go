package config

import (
	"testing"

	"github.com/thoreinstein/kick/internal/catalog"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestMergeExplicitSetWins(t *testing.T) {
	base := &Config{
		Tools: map[string]ToolConfig{
			catalog.Node: {Enabled: boolPtr(true), Version: strPtr("lts/*")},
		},
	}
	override := &Config{
		Tools: map[string]ToolConfig{
			catalog.Node: {Enabled: boolPtr(false)},
		},
	}

	merged := Merge(base, override)

	node := merged.Tools[catalog.Node]
	if node.IsEnabled() {
		t.Error("override explicitly disabled node; merge kept it enabled")
	}
	if got := node.PinnedVersion(); got != "lts/*" {
		t.Errorf("unset version in override should keep base value, got %q", got)
	}
}

func TestMergeUnsetFieldsDoNotOverride(t *testing.T) {
	base := &Config{
		Tools: map[string]ToolConfig{
			catalog.Bun: {Enabled: boolPtr(false), InstallVia: strPtr("npm")},
		},
	}
	override := &Config{
		Tools: map[string]ToolConfig{
			catalog.Bun: {},
		},
	}

	merged := Merge(base, override)

	bun := merged.Tools[catalog.Bun]
	if bun.IsEnabled() {
		t.Error("empty override tool entry should not re-enable the tool")
	}
	if got := bun.Via(); got != "npm" {
		t.Errorf("Via() = %q, want %q", got, "npm")
	}
}

func TestMergeToolKeyUnion(t *testing.T) {
	base := &Config{
		Tools: map[string]ToolConfig{catalog.NVM: {Version: strPtr("v0.40.4")}},
	}
	override := &Config{
		Tools: map[string]ToolConfig{catalog.UV: {Enabled: boolPtr(false)}},
	}

	merged := Merge(base, override)

	if _, ok := merged.Tools[catalog.NVM]; !ok {
		t.Error("base-only tool missing from merge result")
	}
	if _, ok := merged.Tools[catalog.UV]; !ok {
		t.Error("override-only tool missing from merge result")
	}
}

func TestMergeProjectName(t *testing.T) {
	base := &Config{Project: ProjectConfig{Name: "alpha"}}

	merged := Merge(base, &Config{})
	if merged.Project.Name != "alpha" {
		t.Errorf("empty override name should keep base, got %q", merged.Project.Name)
	}

	merged = Merge(base, &Config{Project: ProjectConfig{Name: "beta"}})
	if merged.Project.Name != "beta" {
		t.Errorf("override name should win, got %q", merged.Project.Name)
	}
}

func TestMergeRegistry(t *testing.T) {
	base := &Config{Registry: RegistryConfig{NPM: strPtr("https://a.example/")}}
	override := &Config{Registry: RegistryConfig{Bun: strPtr("https://b.example/")}}

	merged := Merge(base, override)

	if got := merged.Registry.NPMRegistry(); got != "https://a.example/" {
		t.Errorf("NPMRegistry() = %q, want base value", got)
	}
	if got := merged.Registry.BunRegistry(); got != "https://b.example/" {
		t.Errorf("BunRegistry() = %q, want override value", got)
	}
	if got := merged.Registry.PyPIIndex(); got != DefaultPyPIIndex {
		t.Errorf("PyPIIndex() = %q, want default", got)
	}
}

func TestMergeNilInputs(t *testing.T) {
	merged := Merge(nil, nil)
	if merged == nil {
		t.Fatal("Merge(nil, nil) returned nil")
	}
	if merged.Tools == nil {
		t.Error("merged Tools map should be initialized")
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := &Config{
		Tools: map[string]ToolConfig{catalog.Node: {Enabled: boolPtr(true)}},
	}
	override := &Config{
		Tools: map[string]ToolConfig{catalog.Node: {Enabled: boolPtr(false)}},
	}

	_ = Merge(base, override)

	if !*base.Tools[catalog.Node].Enabled {
		t.Error("Merge mutated base")
	}
	if *override.Tools[catalog.Node].Enabled {
		t.Error("Merge mutated override")
	}
}
