package shellcomp

import (
	"strings"
	"testing"

	"github.com/thoreinstein/kick/internal/catalog"
	"github.com/thoreinstein/kick/internal/platform"
)

func TestSupported(t *testing.T) {
	tests := []struct {
		shell platform.Shell
		want  bool
	}{
		{platform.Bash, true},
		{platform.Zsh, true},
		{platform.Fish, true},
		{platform.UnknownShell, false},
	}

	for _, tt := range tests {
		if got := Supported(tt.shell); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.shell, got, tt.want)
		}
	}
}

func TestScriptListsEveryTool(t *testing.T) {
	for _, shell := range []platform.Shell{platform.Bash, platform.Zsh, platform.Fish} {
		t.Run(string(shell), func(t *testing.T) {
			script, err := Script(shell)
			if err != nil {
				t.Fatalf("Script(%q) error: %v", shell, err)
			}
			for _, tool := range catalog.InstallOrder {
				if !strings.Contains(script, tool) {
					t.Errorf("%s script missing tool %q", shell, tool)
				}
			}
			for _, cmd := range []string{"init", "install", "upgrade"} {
				if !strings.Contains(script, cmd) {
					t.Errorf("%s script missing command %q", shell, cmd)
				}
			}
		})
	}
}

func TestScriptUnknownShell(t *testing.T) {
	if _, err := Script(platform.UnknownShell); err == nil {
		t.Error("expected error for unknown shell")
	}
}
