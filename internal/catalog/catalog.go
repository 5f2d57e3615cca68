// Package catalog is the single source of truth for the tools kick manages.
//
// Peripheral surfaces (completion scripts, status tables, validation) enumerate
// the catalog from here instead of keeping their own copies.
package catalog

// Tool name identifiers. These are the keys used in the tools section of
// .kickrc and in orchestrator report maps.
const (
	NVM        = "nvm"
	Node       = "node"
	Conda      = "conda"
	Bun        = "bun"
	UV         = "uv"
	GH         = "gh"
	ClaudeCode = "claude-code"
	Codex      = "codex"
	Copilot    = "copilot"
	OpenCode   = "opencode"
	SpecKit    = "spec-kit"
	BMadMethod = "bmad-method"
	UIPro      = "uipro"
)

// InstallOrder lists every supported tool in dependency order. Version
// managers come before the runtimes they manage, and runtimes before the
// package-manager-installed CLIs that need them.
var InstallOrder = []string{
	NVM,        // installs Node versions
	Node,       // via nvm
	Conda,      // standalone Python environment manager
	Bun,        // fast package manager, prefers Node as fallback
	UV,         // Python package manager
	GH,         // GitHub CLI
	ClaudeCode, // via bun/npm
	Codex,      // via bun/npm
	Copilot,    // via npm
	OpenCode,   // via bun/npm
	SpecKit,    // via uv tool install
	BMadMethod, // via bunx/npx
	UIPro,      // via bun/npm
}

// Known reports whether name is a supported tool.
func Known(name string) bool {
	for _, tool := range InstallOrder {
		if tool == name {
			return true
		}
	}
	return false
}

// Tools returns a copy of the catalog in dependency order.
func Tools() []string {
	out := make([]string, len(InstallOrder))
	copy(out, InstallOrder)
	return out
}
