package inject

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vocal-dev/vocal/internal/session"
	"github.com/vocal-dev/vocal/pkg/logger"
)

var (
	// ErrNotActive is returned when delivery is attempted outside
	// hands-free mode.
	ErrNotActive = errors.New("hands-free mode is not active")

	// ErrEmptyText is returned for blank prompts.
	ErrEmptyText = errors.New("nothing to inject")
)

// ActivationGate reports whether hands-free mode is in effect.
type ActivationGate interface {
	HandsFreeActive() (bool, error)
}

// SessionSource returns the recorded session, or nil when there is none.
type SessionSource interface {
	LoadOrNil() *session.Info
}

// Service delivers the next prompt while hands-free mode is on.
type Service struct {
	gate     ActivationGate
	sessions SessionSource
	injector Injector
	logger   logger.Logger
}

// NewService creates a delivery service.
func NewService(gate ActivationGate, sessions SessionSource, injector Injector, log logger.Logger) *Service {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Service{
		gate:     gate,
		sessions: sessions,
		injector: injector,
		logger:   log,
	}
}

// Deliver injects text into the recorded session.
func (s *Service) Deliver(ctx context.Context, text string) error {
	text = strings.TrimRight(text, "\r\n")
	if strings.TrimSpace(text) == "" {
		return ErrEmptyText
	}

	active, err := s.gate.HandsFreeActive()
	if err != nil {
		s.logger.Error("failed to read hands-free state", "error", err)

		active = false
	}

	if !active {
		return ErrNotActive
	}

	info := s.sessions.LoadOrNil()
	if info == nil {
		s.logger.Info("no session info recorded, injecting without target")
	}

	if err := s.injector.Inject(ctx, text, info); err != nil {
		s.logger.Error("injection failed", "injector", s.injector.Name(), "error", err)

		return errors.Wrapf(err, "injecting via %s", s.injector.Name())
	}

	s.logger.Info("prompt injected", "injector", s.injector.Name(), "bytes", len(text))

	return nil
}
