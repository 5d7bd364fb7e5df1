package config

import (
	"path/filepath"
	"time"

	"github.com/vocal-dev/vocal/internal/xdg"
)

// Defaults.
const (
	// DefaultAuditMaxSize is the size at which the audit file is rotated.
	DefaultAuditMaxSize ByteSize = 5_000_000

	// DefaultTmuxBinary is the tmux executable used for injection.
	DefaultTmuxBinary = "tmux"

	// DefaultInjectTimeout bounds one tmux invocation.
	DefaultInjectTimeout = 5 * time.Second
)

// StateConfig configures the state directory.
type StateConfig struct {
	// Dir holds the marker files and the session registry.
	// Default: $XDG_STATE_HOME/vocal
	Dir string `json:"dir,omitempty" koanf:"dir" toml:"dir,omitempty"`
}

// GetDir returns the expanded state directory.
func (s *StateConfig) GetDir() string {
	if s == nil || s.Dir == "" {
		return xdg.StateDir()
	}

	return xdg.ExpandPathSilent(s.Dir)
}

// SessionRegistryFile returns the path of the single-slot session registry.
func (s *StateConfig) SessionRegistryFile() string {
	return filepath.Join(s.GetDir(), "session-registry.json")
}

// LogConfig configures logging.
type LogConfig struct {
	// File is the log file path.
	// Default: $VOCAL_LOG_FILE or $XDG_STATE_HOME/vocal/hooks.log
	File string `json:"file,omitempty" koanf:"file" toml:"file,omitempty"`

	// Debug enables info-level logging.
	// Default: true
	Debug *bool `json:"debug,omitempty" koanf:"debug" toml:"debug,omitempty"`

	// Trace enables debug-level logging.
	Trace bool `json:"trace,omitempty" koanf:"trace" toml:"trace,omitempty"`
}

// GetFile returns the expanded log file path.
func (l *LogConfig) GetFile() string {
	if l == nil || l.File == "" {
		return xdg.LogFile()
	}

	return xdg.ExpandPathSilent(l.File)
}

// IsDebug reports whether info-level logging is enabled.
func (l *LogConfig) IsDebug() bool {
	if l == nil || l.Debug == nil {
		return true
	}

	return *l.Debug
}

// IsTrace reports whether debug-level logging is enabled.
func (l *LogConfig) IsTrace() bool {
	return l != nil && l.Trace
}

// PolicyConfig adds caution to the built-in safety tables. It cannot
// loosen any built-in decision.
type PolicyConfig struct {
	// BlockedPaths are doublestar globs; file operations whose file_path
	// matches one are blocked.
	BlockedPaths []string `json:"blocked_paths,omitempty" koanf:"blocked_paths" toml:"blocked_paths,omitempty"`

	// DangerousPatterns are extra substrings that block a shell command.
	// Matching is case-insensitive.
	DangerousPatterns []string `json:"dangerous_patterns,omitempty" koanf:"dangerous_patterns" toml:"dangerous_patterns,omitempty"`
}

// AuditConfig configures the audit trail.
type AuditConfig struct {
	// Enabled controls whether hook decisions are recorded.
	// Default: true
	Enabled *bool `json:"enabled,omitempty" koanf:"enabled" toml:"enabled,omitempty"`

	// File is the JSONL audit file.
	// Default: $XDG_STATE_HOME/vocal/audit.jsonl
	File string `json:"file,omitempty" koanf:"file" toml:"file,omitempty"`

	// MaxSize is the size at which the file is rotated to <file>.1.
	// Default: "5MB"
	MaxSize ByteSize `json:"max_size,omitempty" koanf:"max_size" toml:"max_size,omitempty"`
}

// IsEnabled returns true if auditing is enabled.
func (a *AuditConfig) IsEnabled() bool {
	if a == nil || a.Enabled == nil {
		return true
	}

	return *a.Enabled
}

// GetFile returns the expanded audit file path.
func (a *AuditConfig) GetFile() string {
	if a == nil || a.File == "" {
		return xdg.AuditFile()
	}

	return xdg.ExpandPathSilent(a.File)
}

// GetMaxSize returns the rotation size.
func (a *AuditConfig) GetMaxSize() ByteSize {
	if a == nil || a.MaxSize == 0 {
		return DefaultAuditMaxSize
	}

	return a.MaxSize
}

// InjectConfig configures terminal injection.
type InjectConfig struct {
	// TmuxBinary is the tmux executable.
	// Default: "tmux"
	TmuxBinary string `json:"tmux_binary,omitempty" koanf:"tmux_binary" toml:"tmux_binary,omitempty"`

	// Timeout bounds each tmux invocation.
	// Default: "5s"
	Timeout Duration `json:"timeout,omitempty" koanf:"timeout" toml:"timeout,omitempty"`
}

// GetTmuxBinary returns the tmux executable.
func (i *InjectConfig) GetTmuxBinary() string {
	if i == nil || i.TmuxBinary == "" {
		return DefaultTmuxBinary
	}

	return i.TmuxBinary
}

// GetTimeout returns the per-invocation timeout.
func (i *InjectConfig) GetTimeout() time.Duration {
	if i == nil || i.Timeout == 0 {
		return DefaultInjectTimeout
	}

	return i.Timeout.ToDuration()
}
