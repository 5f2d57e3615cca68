// Package platform classifies the host machine for installer decisions.
//
// Detection runs once per CLI invocation; the resulting Info snapshot is
// passed read-only to every installer so they can pick binaries and URLs.
package platform

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/mitchellh/go-homedir"
)

// OS identifies the host operating system family.
type OS string

// Supported operating systems.
const (
	MacOS         OS = "macos"
	Linux         OS = "linux"
	UnsupportedOS OS = "unsupported"
)

// Arch identifies the host CPU architecture.
type Arch string

// Supported architectures.
const (
	ARM64           Arch = "arm64"
	X8664           Arch = "x86_64"
	UnsupportedArch Arch = "unsupported"
)

// Shell identifies the user's login shell family.
type Shell string

// Recognized shells.
const (
	Bash         Shell = "bash"
	Zsh          Shell = "zsh"
	Fish         Shell = "fish"
	UnknownShell Shell = "unknown"
)

// Info is an immutable snapshot of the host platform, created once per run.
type Info struct {
	OS              OS
	Arch            Arch
	Shell           Shell
	ShellConfigFile string
}

// Supported reports whether kick supports this OS/architecture combination.
// Supported combinations: macOS arm64, macOS x86_64, Linux x86_64.
func (i Info) Supported() bool {
	switch {
	case i.OS == MacOS && (i.Arch == ARM64 || i.Arch == X8664):
		return true
	case i.OS == Linux && i.Arch == X8664:
		return true
	default:
		return false
	}
}

// Detect classifies the current host.
func Detect() Info {
	osName := detectOS(runtime.GOOS)
	arch := detectArch(runtime.GOARCH)
	shell := detectShell(os.Getenv("SHELL"))

	return Info{
		OS:              osName,
		Arch:            arch,
		Shell:           shell,
		ShellConfigFile: shellConfigFile(shell),
	}
}

func detectOS(goos string) OS {
	switch goos {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	default:
		return UnsupportedOS
	}
}

func detectArch(goarch string) Arch {
	switch goarch {
	case "arm64":
		return ARM64
	case "amd64":
		return X8664
	default:
		return UnsupportedArch
	}
}

func detectShell(shellPath string) Shell {
	switch filepath.Base(shellPath) {
	case "bash":
		return Bash
	case "zsh":
		return Zsh
	case "fish":
		return Fish
	default:
		return UnknownShell
	}
}

// shellConfigFile returns the rc file installers append PATH exports to.
// Bash prefers ~/.bashrc when it exists, falling back to ~/.bash_profile;
// unknown shells get ~/.profile.
func shellConfigFile(shell Shell) string {
	home, err := homedir.Dir()
	if err != nil {
		home = os.Getenv("HOME")
	}

	switch shell {
	case Bash:
		bashrc := filepath.Join(home, ".bashrc")
		if _, err := os.Stat(bashrc); err == nil {
			return bashrc
		}
		return filepath.Join(home, ".bash_profile")
	case Zsh:
		return filepath.Join(home, ".zshrc")
	case Fish:
		return filepath.Join(home, ".config", "fish", "config.fish")
	default:
		return filepath.Join(home, ".profile")
	}
}
