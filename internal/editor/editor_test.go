package editor

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestCommandPrefersEditorEnv(t *testing.T) {
	t.Setenv("EDITOR", "nvim")
	t.Setenv("VISUAL", "code")

	if got := Command(); got != "nvim" {
		t.Errorf("Command() = %q, want nvim", got)
	}
}

func TestCommandFallsBackToVisual(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "code")

	if got := Command(); got != "code" {
		t.Errorf("Command() = %q, want code", got)
	}
}

func TestCommandFallback(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")

	got := Command()
	want := "vi"
	if _, err := exec.LookPath("nano"); err == nil {
		want = "nano"
	}
	if got != want {
		t.Errorf("Command() = %q, want %q", got, want)
	}
}

func TestOpenRunsEditorOnPath(t *testing.T) {
	dir := t.TempDir()
	recorded := filepath.Join(dir, "args.txt")

	fake := filepath.Join(dir, "fake-editor.sh")
	script := "#!/bin/sh\necho \"$@\" > " + recorded + "\n"
	if err := os.WriteFile(fake, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EDITOR", fake)

	target := filepath.Join(dir, ".kickrc")
	if err := Open(target); err != nil {
		t.Fatalf("Open() error: %v", err)
	}

	got, err := os.ReadFile(recorded)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), target) {
		t.Errorf("editor invoked with %q, want %q", strings.TrimSpace(string(got)), target)
	}
}

func TestOpenMissingEditor(t *testing.T) {
	t.Setenv("EDITOR", "definitely-not-an-editor-binary")
	t.Setenv("VISUAL", "")

	if err := Open("whatever.txt"); err == nil {
		t.Error("expected error for a missing editor binary")
	}
}
