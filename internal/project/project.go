// Package project scaffolds a monorepo workspace skeleton.
package project

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	kickerrors "github.com/thoreinstein/kick/internal/errors"
	"github.com/thoreinstein/kick/internal/installer"
	"github.com/thoreinstein/kick/internal/logging"
)

// workspaceDirs are created inside every new project, each seeded with
// a .gitkeep so git tracks them while empty.
var workspaceDirs = []string{"apps", "packages", "shared"}

const gitignore = `node_modules/
dist/
build/
.env
.env.local
*.log
.DS_Store
`

// Creator scaffolds new project directories.
type Creator struct {
	Runner installer.Runner
	Log    *slog.Logger

	// Root is the directory projects are created under. Empty means
	// the current working directory.
	Root string
}

func (c *Creator) logger() *slog.Logger {
	if c.Log != nil {
		return c.Log
	}
	return logging.NewDiscard()
}

// Create builds <name>/ with the workspace layout and initializes a git
// repository inside it. An existing non-empty directory is refused
// unless force is set.
func (c *Creator) Create(ctx context.Context, name string, force bool) error {
	if name == "" {
		return errors.New("project name is empty")
	}

	dir := filepath.Join(c.Root, name)

	entries, err := os.ReadDir(dir)
	if err == nil && len(entries) > 0 && !force {
		return errors.Newf("directory %s already exists and is not empty (use --force to scaffold anyway)", dir)
	}
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	c.logger().Info("creating project", "name", name, "dir", dir)

	for _, sub := range workspaceDirs {
		keep := filepath.Join(dir, sub, ".gitkeep")
		if err := os.MkdirAll(filepath.Dir(keep), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(keep, nil, 0o644); err != nil {
			return err
		}
	}

	if err := writeWorkspaceManifest(dir, name); err != nil {
		return errors.Wrap(err, "writing workspace manifest")
	}
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return err
	}
	if err := writeReadme(dir, name); err != nil {
		return err
	}

	return c.initGit(ctx, dir)
}

func writeWorkspaceManifest(dir, name string) error {
	manifest := map[string]any{
		"name":       name,
		"private":    true,
		"workspaces": []string{"apps/*", "packages/*", "shared/*"},
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "package.json"), append(data, '\n'), 0o644)
}

func writeReadme(dir, name string) error {
	readme := fmt.Sprintf("# %s\n\nMonorepo workspace.\n\n- `apps/` applications\n- `packages/` shared packages\n- `shared/` shared assets\n", name)
	return os.WriteFile(filepath.Join(dir, "README.md"), []byte(readme), 0o644)
}

func (c *Creator) initGit(ctx context.Context, dir string) error {
	if !installer.CommandAvailable("git") {
		return kickerrors.NewDependencyError("git", "install git and rerun, or initialize the repository manually")
	}

	res := c.Runner.Run(ctx, installer.Command{
		Line:    fmt.Sprintf("git -C %q init", dir),
		Timeout: 30 * time.Second,
	})
	if !res.Ok() {
		if res.Stderr != "" {
			return errors.Newf("git init: %s", res.Stderr)
		}
		return errors.Newf("git init exited with code %d", res.ExitCode)
	}
	return nil
}
