// Package inject delivers prompt text into the terminal hosting the
// assistant.
package inject

//go:generate mockgen -source=injector.go -destination=injector_mock.go -package=inject

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/vocal-dev/vocal/internal/exec"
	"github.com/vocal-dev/vocal/internal/session"
)

// ErrNoTarget is returned when the session info does not identify a
// terminal the injector can reach.
var ErrNoTarget = errors.New("no injection target")

// Injector types text into a terminal session. info may be nil.
type Injector interface {
	Inject(ctx context.Context, text string, info *session.Info) error
	Name() string
}

// TmuxInjector types into a tmux pane with send-keys.
type TmuxInjector struct {
	runner exec.CommandRunner
	binary string
}

// NewTmuxInjector creates a TmuxInjector invoking binary through runner.
func NewTmuxInjector(runner exec.CommandRunner, binary string) *TmuxInjector {
	if binary == "" {
		binary = "tmux"
	}

	return &TmuxInjector{runner: runner, binary: binary}
}

// Name returns "tmux".
func (*TmuxInjector) Name() string {
	return "tmux"
}

// Inject sends text literally to the recorded pane and presses Enter. The
// TMUX variable names a server socket, so only TmuxPane is a usable target.
func (t *TmuxInjector) Inject(ctx context.Context, text string, info *session.Info) error {
	if info == nil || info.TmuxPane == "" {
		return ErrNoTarget
	}

	if _, err := t.runner.Run(ctx, t.binary, "send-keys", "-t", info.TmuxPane, "-l", text); err != nil {
		return errors.Wrapf(err, "sending text to pane %s", info.TmuxPane)
	}

	if _, err := t.runner.Run(ctx, t.binary, "send-keys", "-t", info.TmuxPane, "Enter"); err != nil {
		return errors.Wrapf(err, "submitting text in pane %s", info.TmuxPane)
	}

	return nil
}
