package config

import (
	"github.com/vocal-dev/vocal/pkg/config"
)

// DefaultConfig returns a Config with all default values populated. Paths
// are left empty so they follow the XDG environment at run time.
func DefaultConfig() *config.Config {
	enabled := true

	return &config.Config{
		State: &config.StateConfig{},
		Log: &config.LogConfig{
			Debug: &enabled,
		},
		Policy: &config.PolicyConfig{
			BlockedPaths:      []string{},
			DangerousPatterns: []string{},
		},
		Audit: &config.AuditConfig{
			Enabled: &enabled,
			MaxSize: config.DefaultAuditMaxSize,
		},
		Inject: &config.InjectConfig{
			TmuxBinary: config.DefaultTmuxBinary,
			Timeout:    config.Duration(config.DefaultInjectTimeout),
		},
	}
}

// defaultsToMap returns the defaults as a koanf map.
func defaultsToMap() map[string]any {
	return map[string]any{
		"log.debug":          true,
		"log.trace":          false,
		"audit.enabled":      true,
		"audit.max_size":     config.DefaultAuditMaxSize.String(),
		"inject.tmux_binary": config.DefaultTmuxBinary,
		"inject.timeout":     config.DefaultInjectTimeout.String(),
	}
}
