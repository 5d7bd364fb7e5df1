// Package exec runs external commands for the terminal injector.
package exec

//go:generate mockgen -source=command.go -destination=command_mock.go -package=exec

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"time"

	"github.com/cockroachdb/errors"
)

// CommandResult contains the result of a command execution.
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports a zero exit code.
func (r *CommandResult) Success() bool {
	return r != nil && r.ExitCode == 0
}

// CommandRunner executes external commands with timeout and output capture.
type CommandRunner interface {
	// Run executes a command and returns the result. A non-zero exit is
	// reported both in the result and as an error.
	Run(ctx context.Context, name string, args ...string) (*CommandResult, error)

	// RunWithStdin executes a command with stdin input.
	RunWithStdin(ctx context.Context, stdin io.Reader, name string, args ...string) (*CommandResult, error)
}

type commandRunner struct {
	timeout time.Duration
}

// NewCommandRunner creates a CommandRunner bounding every call by timeout.
// A zero timeout leaves calls bounded only by their context.
func NewCommandRunner(timeout time.Duration) CommandRunner {
	return &commandRunner{timeout: timeout}
}

func (r *commandRunner) Run(ctx context.Context, name string, args ...string) (*CommandResult, error) {
	return r.RunWithStdin(ctx, nil, name, args...)
}

func (r *commandRunner) RunWithStdin(
	ctx context.Context,
	stdin io.Reader,
	name string,
	args ...string,
) (*CommandResult, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := &CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()

		return result, errors.Wrapf(err, "%s exited with code %d", name, result.ExitCode)
	}

	if err != nil {
		return result, errors.Wrapf(err, "executing %s", name)
	}

	return result, nil
}
