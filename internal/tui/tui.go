package tui

import (
	"os"

	"golang.org/x/term"
)

// New returns a HuhUI on a terminal and a FallbackUI otherwise.
func New() UI {
	if IsTerminal() {
		return NewHuhUI()
	}

	return NewFallbackUI(os.Stdin, os.Stdout)
}

// NewWithFallback forces the FallbackUI when noTUI is set.
func NewWithFallback(noTUI bool) UI {
	if noTUI {
		return NewFallbackUI(os.Stdin, os.Stdout)
	}

	return New()
}

// IsTerminal checks if stdin and stdout are connected to a terminal.
func IsTerminal() bool {
	//nolint:gosec // G115: file descriptors are small positive integers
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
