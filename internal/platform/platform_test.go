package platform

import (
	"path/filepath"
	"testing"
)

func TestDetectOS(t *testing.T) {
	tests := []struct {
		goos string
		want OS
	}{
		{"darwin", MacOS},
		{"linux", Linux},
		{"windows", UnsupportedOS},
		{"freebsd", UnsupportedOS},
	}

	for _, tt := range tests {
		if got := detectOS(tt.goos); got != tt.want {
			t.Errorf("detectOS(%q) = %q, want %q", tt.goos, got, tt.want)
		}
	}
}

func TestDetectArch(t *testing.T) {
	tests := []struct {
		goarch string
		want   Arch
	}{
		{"arm64", ARM64},
		{"amd64", X8664},
		{"386", UnsupportedArch},
		{"riscv64", UnsupportedArch},
	}

	for _, tt := range tests {
		if got := detectArch(tt.goarch); got != tt.want {
			t.Errorf("detectArch(%q) = %q, want %q", tt.goarch, got, tt.want)
		}
	}
}

func TestDetectShell(t *testing.T) {
	tests := []struct {
		path string
		want Shell
	}{
		{"/bin/bash", Bash},
		{"/usr/bin/zsh", Zsh},
		{"/opt/homebrew/bin/fish", Fish},
		{"/bin/tcsh", UnknownShell},
		{"", UnknownShell},
	}

	for _, tt := range tests {
		if got := detectShell(tt.path); got != tt.want {
			t.Errorf("detectShell(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		os   OS
		arch Arch
		want bool
	}{
		{MacOS, ARM64, true},
		{MacOS, X8664, true},
		{Linux, X8664, true},
		{Linux, ARM64, false},
		{UnsupportedOS, X8664, false},
		{MacOS, UnsupportedArch, false},
	}

	for _, tt := range tests {
		info := Info{OS: tt.os, Arch: tt.arch}
		if got := info.Supported(); got != tt.want {
			t.Errorf("Supported() for %s/%s = %v, want %v", tt.os, tt.arch, got, tt.want)
		}
	}
}

func TestShellConfigFile(t *testing.T) {
	tests := []struct {
		shell Shell
		base  string
	}{
		{Zsh, ".zshrc"},
		{Fish, "config.fish"},
		{UnknownShell, ".profile"},
	}

	for _, tt := range tests {
		got := shellConfigFile(tt.shell)
		if filepath.Base(got) != tt.base {
			t.Errorf("shellConfigFile(%q) = %q, want base %q", tt.shell, got, tt.base)
		}
	}

	// Bash resolves to either ~/.bashrc or ~/.bash_profile depending on
	// what exists in the home directory.
	got := filepath.Base(shellConfigFile(Bash))
	if got != ".bashrc" && got != ".bash_profile" {
		t.Errorf("shellConfigFile(bash) = %q", got)
	}
}
