package installer

import (
	"github.com/thoreinstein/kick/internal/catalog"
)

// Factory builds an installer for one catalog tool. The orchestrator takes
// a Factory so tests can substitute fakes through ordinary polymorphism.
type Factory func(tool string, env Env) (Installer, bool)

// constructors is the closed registry mapping tool names to installer
// constructors. Dispatch is static lookup; there is no runtime type
// inspection anywhere in the install path.
var constructors = map[string]func(env Env) Installer{
	catalog.NVM:        newNVM,
	catalog.Node:       newNode,
	catalog.Conda:      newConda,
	catalog.Bun:        newBun,
	catalog.UV:         newUV,
	catalog.GH:         newGH,
	catalog.ClaudeCode: func(env Env) Installer { return newPackageTool(claudeCodeSpec, env) },
	catalog.Codex:      func(env Env) Installer { return newPackageTool(codexSpec, env) },
	catalog.Copilot:    func(env Env) Installer { return newPackageTool(copilotSpec, env) },
	catalog.OpenCode:   func(env Env) Installer { return newPackageTool(openCodeSpec, env) },
	catalog.UIPro:      func(env Env) Installer { return newPackageTool(uiProSpec, env) },
	catalog.SpecKit:    newSpecKit,
	catalog.BMadMethod: newBMad,
}

// New is the default Factory backed by the real installers.
func New(tool string, env Env) (Installer, bool) {
	ctor, ok := constructors[tool]
	if !ok {
		return nil, false
	}
	return ctor(env), true
}
