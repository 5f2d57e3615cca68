// Package editor launches the user's preferred text editor.
package editor

import (
	"os"
	"os/exec"

	"github.com/cockroachdb/errors"
)

// Command returns the editor to launch. $EDITOR wins over $VISUAL.
// Without either, nano is used when present, vi otherwise.
func Command() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	if _, err := exec.LookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}

// Open runs the editor on path, attached to the current terminal so
// interactive editors work.
func Open(path string) error {
	cmd := exec.Command(Command(), path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return errors.Wrap(cmd.Run(), "running editor")
}
