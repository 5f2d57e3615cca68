package config

// Merge combines two configs field-by-field, override winning wherever it
// explicitly set a value. Neither input is modified.
//
// Tool maps merge key-wise: the result's key set is the union of both
// inputs', and for keys present in both, each of enabled/version/install_via
// takes override's value only when override set it. Unknown tool names pass
// through untouched.
func Merge(base, override *Config) *Config {
	if base == nil {
		base = Default()
	}
	if override == nil {
		override = Default()
	}

	merged := &Config{
		Project: base.Project,
		Tools:   make(map[string]ToolConfig, len(base.Tools)+len(override.Tools)),
	}

	if override.Project.Name != "" {
		merged.Project.Name = override.Project.Name
	}

	for name, tool := range base.Tools {
		merged.Tools[name] = tool
	}
	for name, tool := range override.Tools {
		if existing, ok := merged.Tools[name]; ok {
			merged.Tools[name] = mergeTool(existing, tool)
		} else {
			merged.Tools[name] = tool
		}
	}

	merged.Registry = mergeRegistry(base.Registry, override.Registry)

	return merged
}

func mergeTool(base, override ToolConfig) ToolConfig {
	out := base
	if override.Enabled != nil {
		out.Enabled = override.Enabled
	}
	if override.Version != nil {
		out.Version = override.Version
	}
	if override.InstallVia != nil {
		out.InstallVia = override.InstallVia
	}
	return out
}

func mergeRegistry(base, override RegistryConfig) RegistryConfig {
	out := base
	if override.NPM != nil {
		out.NPM = override.NPM
	}
	if override.Bun != nil {
		out.Bun = override.Bun
	}
	if override.PyPI != nil {
		out.PyPI = override.PyPI
	}
	if override.PythonInstall != nil {
		out.PythonInstall = override.PythonInstall
	}
	return out
}
