// Package paths provides centralized path handling for dirsum.
// It implements XDG Base Directory specification compliance for the
// tool's own files and the relative-path rules manifests rely on.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for dirsum
	EnvConfigDir = "DIRSUM_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for dirsum
	EnvStateDir = "DIRSUM_STATE_DIR"
)

// AppDirName is the directory name dirsum uses under the XDG base
// directories.
const AppDirName = "dirsum"

// ConfigDir returns the directory dirsum reads its configuration from.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the directory for logs and other mutable state.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the path of the debug log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), "dirsum.log")
}

// ConfigFileCandidates returns the configuration files dirsum will try
// to load, least specific first. Later files override earlier ones; a
// dirsum.toml in the working directory wins over the XDG one.
func ConfigFileCandidates() []string {
	return []string{
		filepath.Join(ConfigDir(), "dirsum.toml"),
		filepath.Join(ConfigDir(), "dirsum.yaml"),
		"dirsum.toml",
	}
}
