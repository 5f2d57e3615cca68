package project

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/kick/internal/installer"
	"github.com/thoreinstein/kick/internal/logging"
)

type recordingRunner struct {
	lines []string
}

func (r *recordingRunner) Run(_ context.Context, cmd installer.Command) installer.CommandResult {
	r.lines = append(r.lines, cmd.Line)
	return installer.CommandResult{ExitCode: 0}
}

func requireGit(t *testing.T) {
	t.Helper()
	if !installer.CommandAvailable("git") {
		t.Skip("git not on PATH")
	}
}

func TestCreate(t *testing.T) {
	requireGit(t)

	root := t.TempDir()
	runner := &recordingRunner{}
	c := &Creator{Runner: runner, Log: logging.ForTest(t), Root: root}

	if err := c.Create(context.Background(), "demo", false); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	dir := filepath.Join(root, "demo")
	for _, sub := range []string{"apps", "packages", "shared"} {
		keep := filepath.Join(dir, sub, ".gitkeep")
		if _, err := os.Stat(keep); err != nil {
			t.Errorf("missing %s: %v", keep, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		t.Fatalf("reading package.json: %v", err)
	}
	var manifest map[string]any
	if err := json.Unmarshal(data, &manifest); err != nil {
		t.Fatalf("package.json is not valid JSON: %v", err)
	}
	if manifest["name"] != "demo" {
		t.Errorf("manifest name = %v", manifest["name"])
	}
	if manifest["private"] != true {
		t.Error("workspace manifest should be private")
	}

	for _, name := range []string{".gitignore", "README.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	if len(runner.lines) != 1 || !strings.Contains(runner.lines[0], "git") {
		t.Errorf("expected a git init invocation, got %v", runner.lines)
	}
}

func TestCreateRefusesNonEmptyDir(t *testing.T) {
	requireGit(t)

	root := t.TempDir()
	dir := filepath.Join(root, "demo")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := &Creator{Runner: &recordingRunner{}, Root: root}

	err := c.Create(context.Background(), "demo", false)
	if err == nil {
		t.Fatal("expected error for non-empty directory without force")
	}

	if err := c.Create(context.Background(), "demo", true); err != nil {
		t.Fatalf("Create() with force should proceed: %v", err)
	}
}

func TestCreateEmptyName(t *testing.T) {
	c := &Creator{Runner: &recordingRunner{}, Root: t.TempDir()}
	if err := c.Create(context.Background(), "", false); err == nil {
		t.Fatal("expected error for empty project name")
	}
}
