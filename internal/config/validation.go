package config

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"

	"github.com/vocal-dev/vocal/pkg/config"
)

var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidGlob is returned for a blocked path that is not a valid glob.
	ErrInvalidGlob = errors.New("invalid glob pattern")

	// ErrEmptyValue is returned when a required value is empty.
	ErrEmptyValue = errors.New("empty value not allowed")
)

// Validator validates configuration semantics.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate validates the entire configuration.
// Returns an error describing all validation failures.
func (v *Validator) Validate(cfg *config.Config) error {
	if cfg == nil {
		return errors.WithMessage(ErrInvalidConfig, "config is nil")
	}

	var errs error

	errs = errors.CombineErrors(errs, v.validatePolicy(cfg.GetPolicy()))
	errs = errors.CombineErrors(errs, v.validateInject(cfg.GetInject()))

	if errs != nil {
		return errors.Wrap(ErrInvalidConfig, errs.Error())
	}

	return nil
}

func (*Validator) validatePolicy(policy *config.PolicyConfig) error {
	var errs error

	for i, glob := range policy.BlockedPaths {
		if strings.TrimSpace(glob) == "" {
			errs = errors.CombineErrors(errs,
				errors.Wrapf(ErrEmptyValue, "policy.blocked_paths[%d]", i))

			continue
		}

		if !doublestar.ValidatePattern(glob) {
			errs = errors.CombineErrors(errs,
				errors.Wrapf(ErrInvalidGlob, "policy.blocked_paths[%d] %q", i, glob))
		}
	}

	for i, pattern := range policy.DangerousPatterns {
		if strings.TrimSpace(pattern) == "" {
			errs = errors.CombineErrors(errs,
				errors.Wrapf(ErrEmptyValue, "policy.dangerous_patterns[%d]", i))
		}
	}

	return errs
}

func (*Validator) validateInject(inject *config.InjectConfig) error {
	if inject.TmuxBinary != "" && strings.TrimSpace(inject.TmuxBinary) == "" {
		return errors.Wrap(ErrEmptyValue, "inject.tmux_binary")
	}

	return nil
}
