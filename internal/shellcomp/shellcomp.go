// Package shellcomp renders static completion scripts for the kick CLI.
//
// The scripts are generated from the tool catalog at call time, so new
// catalog entries show up without touching the templates.
package shellcomp

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/kick/internal/catalog"
	"github.com/thoreinstein/kick/internal/platform"
)

var subcommands = []string{"init", "install", "upgrade", "status", "show", "setup-shell", "dd"}

// Supported reports whether a completion script exists for the shell.
func Supported(shell platform.Shell) bool {
	switch shell {
	case platform.Bash, platform.Zsh, platform.Fish:
		return true
	}
	return false
}

// Script returns the completion script for the given shell.
func Script(shell platform.Shell) (string, error) {
	tools := strings.Join(catalog.InstallOrder, " ")
	cmds := strings.Join(subcommands, " ")

	switch shell {
	case platform.Bash:
		return fmt.Sprintf(bashTemplate, cmds, tools), nil
	case platform.Zsh:
		return fmt.Sprintf(zshTemplate, cmds, tools), nil
	case platform.Fish:
		return fmt.Sprintf(fishTemplate, cmds, tools), nil
	}
	return "", fmt.Errorf("no completion script for shell %q", shell)
}

const bashTemplate = `# bash completion for kick
_kick_completions() {
    local cur prev commands tools
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    commands="%s"
    tools="%s"

    if [ "$COMP_CWORD" -eq 1 ]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    case "$prev" in
        install|upgrade)
            COMPREPLY=($(compgen -W "$tools --all --dry-run" -- "$cur"))
            ;;
        init)
            COMPREPLY=($(compgen -W "--config --save-config --interactive --force --dry-run" -- "$cur"))
            ;;
        *)
            COMPREPLY=()
            ;;
    esac
}
complete -F _kick_completions kick
`

const zshTemplate = `#compdef kick
# zsh completion for kick
_kick() {
    local -a commands tools
    commands=(%s)
    tools=(%s)

    if (( CURRENT == 2 )); then
        _describe 'command' commands
        return
    fi

    case "$words[2]" in
        install|upgrade)
            _describe 'tool' tools
            _arguments '--all[process every tool]' '--dry-run[report without executing]'
            ;;
        init)
            _arguments '--config[config file path]:file:_files' \
                '--save-config[write the merged config]' \
                '--interactive[run the setup wizard]' \
                '--force[overwrite existing project directory]' \
                '--dry-run[report without executing]'
            ;;
    esac
}
_kick
`

const fishTemplate = `# fish completion for kick
set -l kick_commands %s
set -l kick_tools %s

complete -c kick -f
complete -c kick -n "not __fish_seen_subcommand_from $kick_commands" -a "$kick_commands"
complete -c kick -n "__fish_seen_subcommand_from install upgrade" -a "$kick_tools"
complete -c kick -n "__fish_seen_subcommand_from install upgrade" -l all -d "process every tool"
complete -c kick -n "__fish_seen_subcommand_from install upgrade" -l dry-run -d "report without executing"
complete -c kick -n "__fish_seen_subcommand_from init" -l config -d "config file path"
complete -c kick -n "__fish_seen_subcommand_from init" -l save-config -d "write the merged config"
complete -c kick -n "__fish_seen_subcommand_from init" -l interactive -d "run the setup wizard"
`
