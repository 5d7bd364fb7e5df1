// Package xdg provides centralized path management following XDG Base Directory conventions.
// All global/user-level paths vocal touches on disk are defined here.
// Project-local paths (.vocal/config.toml, .claude/settings.json) are
// resolved relative to a project directory by their callers.
package xdg

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

const appName = "vocal"

// Environment variables that override individual paths.
const (
	EnvLogFile  = "VOCAL_LOG_FILE"
	EnvStateDir = "VOCAL_STATE_DIR"
)

func userHome() (string, error) {
	return os.UserHomeDir()
}

// ConfigHome returns $XDG_CONFIG_HOME or ~/.config.
func ConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}

	home, err := userHome()
	if err != nil {
		return filepath.Join("~", ".config")
	}

	return filepath.Join(home, ".config")
}

// StateHome returns $XDG_STATE_HOME or ~/.local/state.
func StateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}

	home, err := userHome()
	if err != nil {
		return filepath.Join("~", ".local", "state")
	}

	return filepath.Join(home, ".local", "state")
}

// ConfigDir returns ConfigHome()/vocal.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), appName)
}

// StateDir returns the directory holding the marker files and the session
// registry: $VOCAL_STATE_DIR, otherwise StateHome()/vocal.
func StateDir() string {
	if v := os.Getenv(EnvStateDir); v != "" {
		return v
	}

	return filepath.Join(StateHome(), appName)
}

// GlobalConfigFile returns ConfigDir()/config.toml.
func GlobalConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LogFile returns the log file path.
// Respects VOCAL_LOG_FILE, otherwise StateDir()/hooks.log.
func LogFile() string {
	if v := os.Getenv(EnvLogFile); v != "" {
		return v
	}

	return filepath.Join(StateDir(), "hooks.log")
}

// AuditFile returns StateDir()/audit.jsonl.
func AuditFile() string {
	return filepath.Join(StateDir(), "audit.jsonl")
}

// ClaudeUserSettingsFile returns ~/.claude/settings.json.
func ClaudeUserSettingsFile() string {
	home, err := userHome()
	if err != nil {
		return filepath.Join("~", ".claude", "settings.json")
	}

	return filepath.Join(home, ".claude", "settings.json")
}

// ClaudeProjectSettingsFile returns <projectDir>/.claude/settings.json.
func ClaudeProjectSettingsFile(projectDir string) string {
	return filepath.Join(projectDir, ".claude", "settings.json")
}

// ExpandPath resolves ~ prefix to the user's home directory.
// Returns the path unchanged if it doesn't start with ~.
// Returns error for invalid tilde usage like "~foo".
func ExpandPath(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	home, err := userHome()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}

	switch {
	case path == "~":
		return home, nil
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(home, path[2:]), nil
	default:
		return "", errors.Newf("paths starting with ~ must be either ~ or ~/subdir, got %q", path)
	}
}

// ExpandPathSilent resolves ~ prefix, returning the original path on error.
func ExpandPathSilent(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}

	return expanded
}

// EnsureDir creates a directory with 0700 permissions if it doesn't exist,
// and fixes permissions on existing directories if they're too open.
func EnsureDir(path string) error {
	const dirMode = 0o700

	if err := os.MkdirAll(path, dirMode); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "failed to stat directory %s", path)
	}

	if info.Mode().Perm() != dirMode {
		if err := os.Chmod(path, dirMode); err != nil {
			return errors.Wrapf(err, "failed to set permissions on %s", path)
		}
	}

	return nil
}
