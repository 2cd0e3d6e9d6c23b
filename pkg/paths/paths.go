// Package paths provides centralized path handling for towboat.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvTowboatDataDir overrides the XDG data directory for towboat
	EnvTowboatDataDir = "TOWBOAT_DATA_DIR"

	// EnvTowboatStateDir overrides the XDG state directory for towboat
	EnvTowboatStateDir = "TOWBOAT_STATE_DIR"
)

// Default directories and files
const (
	// TowboatDirName is the directory name for towboat-specific files
	TowboatDirName = "towboat"

	// ManifestFileName is the name of the per-package manifest file
	ManifestFileName = "boat.toml"

	// CacheFileName is the name of the deployment cache file
	CacheFileName = "cache.toml"

	// LogFileName is the name of the log file
	LogFileName = "towboat.log"
)

// DataDir returns towboat's data directory, respecting the
// TOWBOAT_DATA_DIR override.
func DataDir() string {
	if dataDir := os.Getenv(EnvTowboatDataDir); dataDir != "" {
		if expanded, err := ExpandHome(dataDir); err == nil {
			return expanded
		}
		return dataDir
	}
	return filepath.Join(xdg.DataHome, TowboatDirName)
}

// StateDir returns towboat's state directory, respecting the
// TOWBOAT_STATE_DIR override.
func StateDir() string {
	if stateDir := os.Getenv(EnvTowboatStateDir); stateDir != "" {
		if expanded, err := ExpandHome(stateDir); err == nil {
			return expanded
		}
		return stateDir
	}
	return filepath.Join(xdg.StateHome, TowboatDirName)
}

// CacheFilePath returns the path of the persisted deployment cache.
func CacheFilePath() string {
	return filepath.Join(DataDir(), CacheFileName)
}

// LogFilePath returns the path of the log file.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment
// variable. If both fail, it returns an error rather than using dangerous
// defaults.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv("HOME")
	if homeDir != "" {
		return homeDir, nil
	}

	return "", fmt.Errorf("unable to determine home directory: neither os.UserHomeDir() nor HOME environment variable are available")
}

// ExpandHome expands the ~ character to the user's home directory.
// Returns an error if home directory cannot be determined.
func ExpandHome(path string) (string, error) {
	if path == "~" {
		return GetHomeDirectory()
	}

	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		homeDir, err := GetHomeDirectory()
		if err != nil {
			return "", fmt.Errorf("cannot expand ~: %w", err)
		}
		return filepath.Join(homeDir, path[2:]), nil
	}

	return path, nil
}
