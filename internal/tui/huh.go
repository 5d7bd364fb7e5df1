package tui

import (
	"charm.land/huh/v2"
	"github.com/cockroachdb/errors"
)

// HuhUI implements UI using huh.
type HuhUI struct{}

// NewHuhUI creates a new HuhUI instance.
func NewHuhUI() *HuhUI {
	return &HuhUI{}
}

// IsInteractive returns true.
func (*HuhUI) IsInteractive() bool {
	return true
}

// Confirm runs a huh confirm field.
func (*HuhUI) Confirm(title, description string, defaultValue bool) (bool, error) {
	value := defaultValue

	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&value).
		Run()
	if err != nil {
		return false, errors.Wrap(err, "prompt failed")
	}

	return value, nil
}

// Select runs a huh select field.
func (*HuhUI) Select(title string, options []Option, defaultValue string) (string, error) {
	value := defaultValue

	huhOptions := make([]huh.Option[string], 0, len(options))
	for _, opt := range options {
		huhOptions = append(huhOptions, huh.NewOption(opt.Label, opt.Value))
	}

	err := huh.NewSelect[string]().
		Title(title).
		Options(huhOptions...).
		Value(&value).
		Run()
	if err != nil {
		return "", errors.Wrap(err, "prompt failed")
	}

	return value, nil
}
