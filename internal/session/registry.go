// Package session keeps the single-slot registry describing the terminal
// session that last finished a turn. The injector uses it to find where to
// type the next prompt.
package session

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/vocal-dev/vocal/internal/fsutil"
	"github.com/vocal-dev/vocal/pkg/hook"
	"github.com/vocal-dev/vocal/pkg/logger"
)

// ErrNoSession is returned by Load when nothing has been saved yet.
var ErrNoSession = errors.New("no session info recorded")

// Info identifies the terminal session hosting the assistant.
type Info struct {
	SessionID    string `json:"session_id"`
	TerminalPID  string `json:"terminal_pid"`
	TermSession  string `json:"term_session"`
	ITermSession string `json:"iterm_session"`
	Tmux         string `json:"tmux"`
	TmuxPane     string `json:"tmux_pane"`
	CWD          string `json:"cwd"`
	Timestamp    int64  `json:"timestamp"`
}

// SavedAt returns the save time as a time.Time.
func (i *Info) SavedAt() time.Time {
	return time.Unix(i.Timestamp, 0)
}

// InTmux reports whether the session runs inside tmux.
func (i *Info) InTmux() bool {
	return i.Tmux != "" || i.TmuxPane != ""
}

// NewInfo builds an Info for ctx from the environment of the hook process.
// getenv is usually os.Getenv.
func NewInfo(ctx *hook.Context, getenv func(string) string, now time.Time) *Info {
	pid := getenv("PPID")
	if pid == "" {
		pid = strconv.Itoa(os.Getppid())
	}

	return &Info{
		SessionID:    ctx.SessionID,
		TerminalPID:  pid,
		TermSession:  getenv("TERM_SESSION_ID"),
		ITermSession: getenv("ITERM_SESSION_ID"),
		Tmux:         getenv("TMUX"),
		TmuxPane:     getenv("TMUX_PANE"),
		CWD:          ctx.CWD,
		Timestamp:    now.Unix(),
	}
}

// Registry persists one Info record at a fixed path. Each Save replaces the
// previous record whole.
type Registry struct {
	path   string
	logger logger.Logger
}

// Option configures the Registry.
type Option func(*Registry)

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(r *Registry) {
		if log != nil {
			r.logger = log
		}
	}
}

// NewRegistry creates a registry stored at path.
func NewRegistry(path string, opts ...Option) *Registry {
	r := &Registry{
		path:   path,
		logger: logger.NewNoOpLogger(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Path returns the registry file path.
func (r *Registry) Path() string {
	return r.path
}

// Save atomically overwrites the registry with info.
func (r *Registry) Save(info *Info) error {
	if info == nil {
		return errors.New("session info is nil")
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling session info")
	}

	if err := fsutil.AtomicWriteFile(r.path, data, false); err != nil {
		return errors.Wrap(err, "writing session registry")
	}

	r.logger.Debug("saved session info",
		"path", r.path,
		"session_id", info.SessionID,
	)

	return nil
}

// Load reads the registry. A missing file yields ErrNoSession; an
// unparseable one yields a wrapped decode error. Callers treat both as
// "no session info".
func (r *Registry) Load() (*Info, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}

		return nil, errors.Wrap(err, "reading session registry")
	}

	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, errors.Wrap(err, "parsing session registry")
	}

	return &info, nil
}

// LoadOrNil is Load with every failure mapped to nil. Unexpected failures
// are logged.
func (r *Registry) LoadOrNil() *Info {
	info, err := r.Load()
	if err != nil {
		if !errors.Is(err, ErrNoSession) {
			r.logger.Error("ignoring unreadable session registry",
				"path", r.path,
				"error", err,
			)
		}

		return nil
	}

	return info
}

// Clear removes the registry file.
func (r *Registry) Clear() error {
	if _, err := fsutil.RemoveIfExists(r.path); err != nil {
		return errors.Wrap(err, "removing session registry")
	}

	return nil
}
