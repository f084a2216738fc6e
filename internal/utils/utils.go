// Package utils provides common utility functions for snapassist.
// It includes helpers for path expansion, XDG directories, command lookup
// and terminal detection.
package utils

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ============================================================================
// Command Utilities
// ============================================================================

// CommandExists checks if a command exists in PATH
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

// ============================================================================
// File System Utilities
// ============================================================================

// ExpandHomeDir expands a leading ~ or ~/ in path
func ExpandHomeDir(path string) string {
	if path == "~" {
		return GetHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(GetHomeDir(), path[2:])
	}
	return path
}

// ExpandPath expands ~ and environment variables in path
func ExpandPath(path string) string {
	return os.ExpandEnv(ExpandHomeDir(path))
}

// FileExists checks if file exists
func FileExists(path string) bool {
	_, err := os.Stat(ExpandHomeDir(path))
	return err == nil
}

// ============================================================================
// Environment Utilities
// ============================================================================

// GetHomeDir returns home directory
func GetHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}

// GetConfigDir returns XDG config directory
func GetConfigDir() string {
	if configDir := os.Getenv("XDG_CONFIG_HOME"); configDir != "" {
		return configDir
	}
	return filepath.Join(GetHomeDir(), ".config")
}

// ============================================================================
// Terminal Detection
// ============================================================================

// IsTerminal checks if program is running in a terminal
func IsTerminal() bool {
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	if stdinInfo.Mode()&os.ModeCharDevice == 0 {
		return false
	}

	tty, err := os.Open("/dev/tty")
	if err != nil {
		return false
	}
	tty.Close()

	return true
}
