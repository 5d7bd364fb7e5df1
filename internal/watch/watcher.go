// Package watch is the capture-loop side of the cycle trigger: it waits for
// Stop hooks to arm the trigger and announces each restart on a stream.
package watch

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/vocal-dev/vocal/internal/fsutil"
	"github.com/vocal-dev/vocal/internal/state"
	"github.com/vocal-dev/vocal/pkg/logger"
)

// EventRestartRecording is emitted once per consumed cycle trigger.
const EventRestartRecording = "restart-recording"

var (
	// ErrCycleLimit is returned when the cycle ceiling was reached. Hands-free
	// mode has been deactivated by then.
	ErrCycleLimit = errors.New("cycle limit reached, hands-free mode deactivated")

	// ErrEmergencyStop is returned when the emergency stop is engaged.
	ErrEmergencyStop = errors.New("emergency stop engaged")
)

// Cycle is the part of the controller the watcher drives.
type Cycle interface {
	ConsumeCycleTrigger() (bool, error)
	CycleLimitExceeded() bool
	Deactivate() error
}

// StopSignal reports whether the emergency stop is set.
type StopSignal interface {
	EmergencyStopActive() (bool, error)
}

// Event is one line written to the output stream.
type Event struct {
	Event string `json:"event"`
	At    int64  `json:"at"`
}

// Watcher watches the state directory for cycle trigger writes.
type Watcher struct {
	dir    string
	cycle  Cycle
	stop   StopSignal
	out    io.Writer
	logger logger.Logger
	now    func() time.Time
	ready  chan struct{}

	readyOnce sync.Once
}

// Option configures the Watcher.
type Option func(*Watcher)

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.logger = log
		}
	}
}

// WithTimeFunc sets a custom time function for testing.
func WithTimeFunc(fn func() time.Time) Option {
	return func(w *Watcher) {
		if fn != nil {
			w.now = fn
		}
	}
}

// New creates a Watcher over the state directory dir, writing events to out.
func New(dir string, cycle Cycle, stop StopSignal, out io.Writer, opts ...Option) *Watcher {
	w := &Watcher{
		dir:    dir,
		cycle:  cycle,
		stop:   stop,
		out:    out,
		logger: logger.NewNoOpLogger(),
		now:    time.Now,
		ready:  make(chan struct{}),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Ready is closed once the first Run is watching the directory.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run blocks until ctx is done (returning nil), the emergency stop is
// engaged, or the cycle ceiling is reached. A trigger already pending when
// Run starts is handled immediately. Run may be called again after it
// returns.
func (w *Watcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, fsutil.DirPermissions); err != nil {
		return errors.Wrap(err, "creating state directory")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}

	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(w.dir); err != nil {
		return errors.Wrapf(err, "watching %s", w.dir)
	}

	w.readyOnce.Do(func() { close(w.ready) })

	w.logger.Info("watching for cycle triggers", "dir", w.dir)

	if err := w.check(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}

			switch filepath.Base(event.Name) {
			case state.CycleTriggerMarkerFile, state.EmergencyStopMarkerFile:
				if err := w.check(); err != nil {
					return err
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			w.logger.Error("file watcher error", "error", err)
		}
	}
}

// check handles the current marker state: stop first, then the ceiling,
// then at most one trigger consumption.
func (w *Watcher) check() error {
	stopped, err := w.stop.EmergencyStopActive()
	if err != nil {
		w.logger.Error("failed to read emergency stop", "error", err)
	}

	if stopped {
		return ErrEmergencyStop
	}

	if w.cycle.CycleLimitExceeded() {
		if err := w.cycle.Deactivate(); err != nil {
			w.logger.Error("failed to deactivate after cycle limit", "error", err)
		}

		return ErrCycleLimit
	}

	consumed, err := w.cycle.ConsumeCycleTrigger()
	if err != nil {
		w.logger.Error("failed to consume cycle trigger", "error", err)

		return nil
	}

	if !consumed {
		return nil
	}

	return w.emit()
}

func (w *Watcher) emit() error {
	data, err := json.Marshal(Event{Event: EventRestartRecording, At: w.now().Unix()})
	if err != nil {
		return errors.Wrap(err, "marshaling watch event")
	}

	if _, err := w.out.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "writing watch event")
	}

	w.logger.Info("restart-recording emitted")

	return nil
}
