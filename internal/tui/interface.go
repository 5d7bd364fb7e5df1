// Package tui provides the confirmation and selection prompts used by the
// mode control commands.
package tui

import "github.com/cockroachdb/errors"

// ErrInvalidChoice is returned when fallback input does not name an option.
var ErrInvalidChoice = errors.New("invalid choice")

// UI abstracts the prompt implementation so commands work both on a
// terminal (huh) and with piped input.
type UI interface {
	// Confirm asks a yes/no question.
	Confirm(title, description string, defaultValue bool) (bool, error)

	// Select asks the user to pick one option and returns its value.
	Select(title string, options []Option, defaultValue string) (string, error)

	// IsInteractive returns true if running in an interactive terminal.
	IsInteractive() bool
}

// Option is one entry of a Select prompt.
type Option struct {
	Label string
	Value string
}
