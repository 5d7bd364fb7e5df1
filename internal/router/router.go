// Package router dispatches parsed hook events to their handlers. Every
// handler is gated on hands-free mode: while it is inactive each event is a
// silent no-op.
package router

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vocal-dev/vocal/internal/audit"
	"github.com/vocal-dev/vocal/internal/hookresponse"
	"github.com/vocal-dev/vocal/internal/safety"
	"github.com/vocal-dev/vocal/internal/session"
	"github.com/vocal-dev/vocal/pkg/hook"
	"github.com/vocal-dev/vocal/pkg/logger"
	"github.com/vocal-dev/vocal/pkg/parser"
)

// ActivationGate reports whether hands-free mode is in effect.
type ActivationGate interface {
	HandsFreeActive() (bool, error)
}

// CycleArmer arms the cycle trigger.
type CycleArmer interface {
	TriggerCycle() error
}

// SessionSaver persists session info.
type SessionSaver interface {
	Save(info *session.Info) error
}

// Auditor records routed events.
type Auditor interface {
	Log(entry *audit.Entry) error
}

// Result describes what a routed event did.
type Result struct {
	// Active is false when the event was dropped by the activation gate.
	Active bool

	// Decision is set for PreToolUse events.
	Decision *safety.Decision

	// Response is the record written to stdout, if any.
	Response *hookresponse.HookResponse

	// Reentrant is set for Stop events that carried stop_hook_active.
	Reentrant bool

	SessionSaved bool
	CycleArmed   bool
}

// Router routes hook events.
type Router struct {
	gate     ActivationGate
	cycle    CycleArmer
	sessions SessionSaver
	policy   *safety.Policy
	auditor  Auditor
	logger   logger.Logger
	stdout   io.Writer
	stderr   io.Writer
	getenv   func(string) string
	now      func() time.Time
	bash     *parser.BashParser
}

// Option configures the Router.
type Option func(*Router)

// WithPolicy sets the safety policy. Defaults to the built-in tables only.
func WithPolicy(policy *safety.Policy) Option {
	return func(r *Router) {
		if policy != nil {
			r.policy = policy
		}
	}
}

// WithAuditor sets the audit sink.
func WithAuditor(auditor Auditor) Option {
	return func(r *Router) {
		if auditor != nil {
			r.auditor = auditor
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(r *Router) {
		if log != nil {
			r.logger = log
		}
	}
}

// WithOutput sets the decision and diagnostic streams.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Router) {
		if stdout != nil {
			r.stdout = stdout
		}

		if stderr != nil {
			r.stderr = stderr
		}
	}
}

// WithGetenv sets the environment lookup used for session info.
func WithGetenv(fn func(string) string) Option {
	return func(r *Router) {
		if fn != nil {
			r.getenv = fn
		}
	}
}

// WithTimeFunc sets a custom time function for testing.
func WithTimeFunc(fn func() time.Time) Option {
	return func(r *Router) {
		if fn != nil {
			r.now = fn
		}
	}
}

// New creates a Router.
func New(gate ActivationGate, cycle CycleArmer, sessions SessionSaver, opts ...Option) *Router {
	r := &Router{
		gate:     gate,
		cycle:    cycle,
		sessions: sessions,
		policy:   safety.NewPolicy(),
		logger:   logger.NewNoOpLogger(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		getenv:   os.Getenv,
		now:      time.Now,
		bash:     parser.NewBashParser(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Route handles one event. The only error it returns is a failure to write
// the decision record; state I/O failures are logged and absorbed.
func (r *Router) Route(ctx *hook.Context) (*Result, error) {
	log := r.logger.With("event", ctx.EventType.String(), "session_id", ctx.SessionID)

	if !r.active(log) {
		log.Debug("hands-free mode inactive, passing through")

		return &Result{}, nil
	}

	var (
		result *Result
		err    error
	)

	switch ctx.EventType {
	case hook.EventTypePreToolUse:
		result, err = r.handlePreToolUse(ctx, log)
	case hook.EventTypePostToolUse:
		result = r.handlePostToolUse(ctx, log)
	case hook.EventTypeStop:
		result = r.handleStop(ctx, log)
	case hook.EventTypeUserPromptSubmit:
		result = r.handleUserPromptSubmit(ctx, log)
	default:
		log.Info("ignoring unknown hook event", "hook_event_name", ctx.HookEventName)

		result = &Result{Active: true}
	}

	r.record(ctx, result, log)

	return result, err
}

func (r *Router) active(log logger.Logger) bool {
	active, err := r.gate.HandsFreeActive()
	if err != nil {
		log.Error("failed to read hands-free state, treating as inactive", "error", err)

		return false
	}

	return active
}

func (r *Router) note(msg string) {
	//nolint:errcheck // diagnostics are best-effort
	fmt.Fprintln(r.stderr, msg)
}
