// Package config provides configuration schema types for vocal.
package config

// Config represents the root configuration for vocal.
//
// Every section is optional; getters on nil sections return defaults.
type Config struct {
	// State configures where the activation markers and the session
	// registry live.
	State *StateConfig `json:"state,omitempty" koanf:"state" toml:"state,omitempty"`

	// Log configures the hook log file.
	Log *LogConfig `json:"log,omitempty" koanf:"log" toml:"log,omitempty"`

	// Policy adds Block rules on top of the built-in safety tables.
	Policy *PolicyConfig `json:"policy,omitempty" koanf:"policy" toml:"policy,omitempty"`

	// Audit configures the JSONL audit trail of hook decisions.
	Audit *AuditConfig `json:"audit,omitempty" koanf:"audit" toml:"audit,omitempty"`

	// Inject configures delivery of text into the terminal session.
	Inject *InjectConfig `json:"inject,omitempty" koanf:"inject" toml:"inject,omitempty"`
}

// GetState returns the state section, never nil.
func (c *Config) GetState() *StateConfig {
	if c == nil || c.State == nil {
		return &StateConfig{}
	}

	return c.State
}

// GetLog returns the log section, never nil.
func (c *Config) GetLog() *LogConfig {
	if c == nil || c.Log == nil {
		return &LogConfig{}
	}

	return c.Log
}

// GetPolicy returns the policy section, never nil.
func (c *Config) GetPolicy() *PolicyConfig {
	if c == nil || c.Policy == nil {
		return &PolicyConfig{}
	}

	return c.Policy
}

// GetAudit returns the audit section, never nil.
func (c *Config) GetAudit() *AuditConfig {
	if c == nil || c.Audit == nil {
		return &AuditConfig{}
	}

	return c.Audit
}

// GetInject returns the inject section, never nil.
func (c *Config) GetInject() *InjectConfig {
	if c == nil || c.Inject == nil {
		return &InjectConfig{}
	}

	return c.Inject
}
