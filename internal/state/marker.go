// Package state holds the persistent activation state: boolean flags stored
// as marker files so they survive across short-lived hook processes.
package state

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/vocal-dev/vocal/internal/fsutil"
)

var (
	// ErrMarkerAbsent is returned by Timestamp when the marker is not set.
	ErrMarkerAbsent = errors.New("marker not set")

	// ErrInvalidTimestamp is returned by Timestamp when the marker content
	// is not a unix timestamp.
	ErrInvalidTimestamp = errors.New("invalid marker timestamp")
)

// Marker is a boolean flag whose presence is the signal. Its content, the
// time it was set, is advisory.
type Marker interface {
	// Exists reports whether the marker is set. A missing marker is false,
	// not an error.
	Exists() (bool, error)

	// Set writes the marker with the given timestamp, replacing any
	// previous one.
	Set(at time.Time) error

	// Clear removes the marker. Clearing an absent marker succeeds.
	Clear() error

	// Take removes the marker and reports whether this call removed it.
	// Of several concurrent callers at most one observes true.
	Take() (bool, error)

	// Timestamp returns the time recorded when the marker was set.
	Timestamp() (time.Time, error)
}

// FileMarker is a Marker backed by a file holding unix seconds.
type FileMarker struct {
	path string
}

// NewFileMarker creates a marker stored at path.
func NewFileMarker(path string) *FileMarker {
	return &FileMarker{path: path}
}

// Path returns the marker file path.
func (m *FileMarker) Path() string {
	return m.path
}

// Exists implements Marker.
func (m *FileMarker) Exists() (bool, error) {
	_, err := os.Stat(m.path)
	if err == nil {
		return true, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}

	return false, errors.Wrapf(err, "failed to stat marker %s", m.path)
}

// Set implements Marker.
func (m *FileMarker) Set(at time.Time) error {
	content := strconv.FormatInt(at.Unix(), 10)

	if err := fsutil.AtomicWriteFile(m.path, []byte(content), false); err != nil {
		return errors.Wrapf(err, "failed to write marker %s", m.path)
	}

	return nil
}

// Clear implements Marker.
func (m *FileMarker) Clear() error {
	_, err := fsutil.RemoveIfExists(m.path)

	return err
}

// Take implements Marker. It relies on remove being atomic: only one
// process can unlink the file.
func (m *FileMarker) Take() (bool, error) {
	return fsutil.RemoveIfExists(m.path)
}

// Timestamp implements Marker.
func (m *FileMarker) Timestamp() (time.Time, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, ErrMarkerAbsent
		}

		return time.Time{}, errors.Wrapf(err, "failed to read marker %s", m.path)
	}

	return parseTimestamp(string(data))
}

func parseTimestamp(content string) (time.Time, error) {
	secs, err := strconv.ParseInt(strings.TrimSpace(content), 10, 64)
	if err != nil {
		return time.Time{}, errors.CombineErrors(ErrInvalidTimestamp, err)
	}

	return time.Unix(secs, 0), nil
}

// MemoryMarker is an in-process Marker, used in tests and as a fallback
// when no state directory is available.
type MemoryMarker struct {
	mu  sync.Mutex
	set bool
	at  time.Time
}

// NewMemoryMarker creates an unset in-memory marker.
func NewMemoryMarker() *MemoryMarker {
	return &MemoryMarker{}
}

// Exists implements Marker.
func (m *MemoryMarker) Exists() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.set, nil
}

// Set implements Marker. The timestamp is truncated to seconds to match the
// file representation.
func (m *MemoryMarker) Set(at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.set = true
	m.at = time.Unix(at.Unix(), 0)

	return nil
}

// Clear implements Marker.
func (m *MemoryMarker) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.set = false
	m.at = time.Time{}

	return nil
}

// Take implements Marker.
func (m *MemoryMarker) Take() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	was := m.set
	m.set = false
	m.at = time.Time{}

	return was, nil
}

// Timestamp implements Marker.
func (m *MemoryMarker) Timestamp() (time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.set {
		return time.Time{}, ErrMarkerAbsent
	}

	return m.at, nil
}
