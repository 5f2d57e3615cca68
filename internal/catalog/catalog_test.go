package catalog

import "testing"

func TestKnown(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{NVM, true},
		{Node, true},
		{Bun, true},
		{UIPro, true},
		{"", false},
		{"python", false},
		{"Node", false},
	}

	for _, tt := range tests {
		if got := Known(tt.name); got != tt.want {
			t.Errorf("Known(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestInstallOrderDependencies(t *testing.T) {
	index := make(map[string]int, len(InstallOrder))
	for i, tool := range InstallOrder {
		index[tool] = i
	}

	// Tools must come after the tool that installs them.
	deps := map[string]string{
		Node:    NVM,
		SpecKit: UV,
	}
	for tool, dep := range deps {
		if index[tool] < index[dep] {
			t.Errorf("%s ordered before its dependency %s", tool, dep)
		}
	}
}

func TestToolsReturnsCopy(t *testing.T) {
	tools := Tools()
	if len(tools) != len(InstallOrder) {
		t.Fatalf("Tools() returned %d entries, want %d", len(tools), len(InstallOrder))
	}

	tools[0] = "mutated"
	if InstallOrder[0] == "mutated" {
		t.Error("mutating Tools() result changed InstallOrder")
	}
}
