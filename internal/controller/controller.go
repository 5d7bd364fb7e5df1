// Package controller manages transitions into and out of hands-free mode,
// the emergency stop and the cycle trigger.
package controller

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/vocal-dev/vocal/internal/state"
	"github.com/vocal-dev/vocal/pkg/logger"
)

const (
	// CycleStalenessWindow is how long a cycle trigger counts as fresh.
	CycleStalenessWindow = 5 * time.Minute

	// MaxCycles is the ceiling compared against CycleCount.
	MaxCycles = 10

	// freshCycleCount is what CycleCount reports for a fresh trigger. The
	// heuristic only distinguishes fresh from stale.
	freshCycleCount = 1
)

// Controller drives the activation markers of a state.Store.
type Controller struct {
	store  *state.Store
	logger logger.Logger
	now    func() time.Time
}

// Option configures the Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithTimeFunc sets a custom time function for testing.
func WithTimeFunc(fn func() time.Time) Option {
	return func(c *Controller) {
		if fn != nil {
			c.now = fn
		}
	}
}

// New creates a Controller over store.
func New(store *state.Store, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		logger: logger.NewNoOpLogger(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Store returns the underlying state store.
func (c *Controller) Store() *state.Store {
	return c.store
}

// HandsFreeActive reports whether hands-free mode is in effect.
func (c *Controller) HandsFreeActive() (bool, error) {
	return c.store.HandsFreeActive()
}

// Activate writes the hands-free marker. It is idempotent. While the
// emergency stop is set the marker is written but hands-free still reads
// as inactive.
func (c *Controller) Activate() error {
	if err := c.store.HandsFree().Set(c.now()); err != nil {
		return errors.Wrap(err, "activating hands-free mode")
	}

	c.logger.Info("hands-free mode activated")

	return nil
}

// Deactivate removes the hands-free marker and any pending cycle trigger.
// Both removals are attempted even if one fails.
func (c *Controller) Deactivate() error {
	var errs error

	if err := c.store.HandsFree().Clear(); err != nil {
		errs = errors.CombineErrors(errs, errors.Wrap(err, "clearing hands-free marker"))
	}

	if err := c.store.CycleTrigger().Clear(); err != nil {
		errs = errors.CombineErrors(errs, errors.Wrap(err, "clearing cycle trigger"))
	}

	if errs != nil {
		return errs
	}

	c.logger.Info("hands-free mode deactivated")

	return nil
}

// EmergencyStop writes the emergency-stop marker and then deactivates,
// whether or not the marker write succeeded.
func (c *Controller) EmergencyStop() error {
	var errs error

	if err := c.store.EmergencyStop().Set(c.now()); err != nil {
		errs = errors.Wrap(err, "writing emergency stop marker")
	}

	errs = errors.CombineErrors(errs, c.Deactivate())

	if errs != nil {
		c.logger.Error("emergency stop incomplete", "error", errs)

		return errs
	}

	c.logger.Info("emergency stop engaged")

	return nil
}

// ClearEmergencyStop removes the emergency-stop marker only. Hands-free mode
// is not re-activated.
func (c *Controller) ClearEmergencyStop() error {
	if err := c.store.EmergencyStop().Clear(); err != nil {
		return errors.Wrap(err, "clearing emergency stop")
	}

	c.logger.Info("emergency stop cleared")

	return nil
}

// TriggerCycle arms the cycle trigger with the current time.
func (c *Controller) TriggerCycle() error {
	if err := c.store.CycleTrigger().Set(c.now()); err != nil {
		return errors.Wrap(err, "writing cycle trigger")
	}

	c.logger.Debug("cycle trigger armed")

	return nil
}

// ConsumeCycleTrigger removes the cycle trigger and reports whether one was
// pending. Each write is observed at most once.
func (c *Controller) ConsumeCycleTrigger() (bool, error) {
	consumed, err := c.store.CycleTrigger().Take()
	if err != nil {
		return false, errors.Wrap(err, "consuming cycle trigger")
	}

	if consumed {
		c.logger.Debug("cycle trigger consumed")
	}

	return consumed, nil
}

// CycleCount approximates how many automation cycles the pending trigger
// represents: 0 without a trigger, with an unreadable timestamp, or when the
// trigger is older than CycleStalenessWindow; 1 otherwise.
func (c *Controller) CycleCount() (int, error) {
	at, err := c.store.CycleTrigger().Timestamp()
	if err != nil {
		if errors.Is(err, state.ErrMarkerAbsent) || errors.Is(err, state.ErrInvalidTimestamp) {
			return 0, nil
		}

		return 0, errors.Wrap(err, "reading cycle trigger")
	}

	if c.now().Sub(at) > CycleStalenessWindow {
		return 0, nil
	}

	return freshCycleCount, nil
}

// CycleLimitExceeded reports whether CycleCount has reached MaxCycles.
// It returns false when the count cannot be read.
func (c *Controller) CycleLimitExceeded() bool {
	count, err := c.CycleCount()
	if err != nil {
		c.logger.Error("failed to read cycle count", "error", err)

		return false
	}

	return count >= MaxCycles
}

// CycleWindowRemaining returns how long the pending trigger stays fresh,
// or 0 when there is none or it is stale.
func (c *Controller) CycleWindowRemaining() time.Duration {
	at, err := c.store.CycleTrigger().Timestamp()
	if err != nil {
		return 0
	}

	remaining := CycleStalenessWindow - c.now().Sub(at)
	if remaining < 0 {
		return 0
	}

	return remaining
}
