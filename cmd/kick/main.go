// Package main is the entry point for the kick CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/kick/cmd/kick/commands"
	kickerrors "github.com/thoreinstein/kick/internal/errors"
)

func main() {
	err := commands.Execute()
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	for _, s := range kickerrors.SuggestionsFor(err) {
		fmt.Fprintf(os.Stderr, "  hint: %s\n", s)
	}
	os.Exit(kickerrors.CodeFor(err))
}
