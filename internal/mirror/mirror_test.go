package mirror

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/kick/internal/installer"
	"github.com/thoreinstein/kick/internal/logging"
)

type recordingRunner struct {
	lines  []string
	result installer.CommandResult
}

func (r *recordingRunner) Run(_ context.Context, cmd installer.Command) installer.CommandResult {
	r.lines = append(r.lines, cmd.Line)
	return r.result
}

func TestConfigureNPM(t *testing.T) {
	runner := &recordingRunner{}
	c := &Configurator{Runner: runner, Log: logging.ForTest(t)}

	err := c.ConfigureNPM(context.Background(), "https://mirror.example/npm/")
	require.NoError(t, err)

	require.Len(t, runner.lines, 1)
	require.Equal(t, `npm config set registry "https://mirror.example/npm/"`, runner.lines[0])
}

func TestConfigureNPMFailure(t *testing.T) {
	runner := &recordingRunner{result: installer.CommandResult{ExitCode: 1, Stderr: "EACCES"}}
	c := &Configurator{Runner: runner}

	err := c.ConfigureNPM(context.Background(), "https://mirror.example/")
	require.ErrorContains(t, err, "EACCES")
}

func TestConfigureBunCreatesFile(t *testing.T) {
	home := t.TempDir()
	c := &Configurator{Home: home, Log: logging.ForTest(t)}

	require.NoError(t, c.ConfigureBun("https://mirror.example/bun/"))

	doc := readTOMLFile(t, filepath.Join(home, ".bunfig.toml"))
	install, ok := doc["install"].(map[string]any)
	require.True(t, ok, "no [install] section: %v", doc)
	require.Equal(t, "https://mirror.example/bun/", install["registry"])
}

func TestConfigureBunPreservesOtherSections(t *testing.T) {
	home := t.TempDir()
	existing := `
[test]
coverage = true

[install]
registry = "https://old.example/"
frozenLockfile = true
`
	require.NoError(t, os.WriteFile(filepath.Join(home, ".bunfig.toml"), []byte(existing), 0o644))

	c := &Configurator{Home: home}
	require.NoError(t, c.ConfigureBun("https://new.example/"))

	doc := readTOMLFile(t, filepath.Join(home, ".bunfig.toml"))

	testSection, ok := doc["test"].(map[string]any)
	require.True(t, ok, "[test] section lost: %v", doc)
	require.Equal(t, true, testSection["coverage"])

	install := doc["install"].(map[string]any)
	require.Equal(t, "https://new.example/", install["registry"])
	require.Equal(t, true, install["frozenLockfile"], "sibling install key lost")
}

func TestConfigureUV(t *testing.T) {
	home := t.TempDir()
	c := &Configurator{Home: home, Log: logging.ForTest(t)}

	err := c.ConfigureUV("https://mirror.example/pypi/simple", "https://mirror.example/python")
	require.NoError(t, err)

	doc := readTOMLFile(t, filepath.Join(home, ".config", "uv", "uv.toml"))
	require.Equal(t, "https://mirror.example/python", doc["python-install-mirror"])

	indexes, ok := doc["index"].([]any)
	require.True(t, ok, "index = %v", doc["index"])
	require.Len(t, indexes, 1)

	entry := indexes[0].(map[string]any)
	require.Equal(t, "https://mirror.example/pypi/simple", entry["url"])
	require.Equal(t, true, entry["default"])
}

func TestMergeUVIndexKeepsExtraIndexes(t *testing.T) {
	existing := []any{
		map[string]any{"url": "https://old-default.example/", "default": true},
		map[string]any{"url": "https://private.example/", "name": "private"},
	}

	merged := mergeUVIndex(existing, "https://new.example/")

	require.Len(t, merged, 2, "want the new default plus the private index")
	require.Equal(t, "https://new.example/", merged[0]["url"])
	require.Equal(t, "https://private.example/", merged[1]["url"], "non-default index dropped")
}

func readTOMLFile(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc := map[string]any{}
	require.NoError(t, toml.Unmarshal(data, &doc))
	return doc
}
