package state

import (
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
)

// Marker file names inside the state directory.
const (
	HandsFreeMarkerFile     = "hands-free-active"
	EmergencyStopMarkerFile = "emergency-stop"
	CycleTriggerMarkerFile  = "cycle-trigger"
)

// Store groups the three activation markers.
//
// HandsFreeActive is derived on every call from the hands-free and
// emergency-stop markers and is never cached.
type Store struct {
	dir       string
	handsFree Marker
	emergency Marker
	cycle     Marker
}

// NewStore creates a Store backed by marker files in dir.
func NewStore(dir string) *Store {
	return &Store{
		dir:       dir,
		handsFree: NewFileMarker(filepath.Join(dir, HandsFreeMarkerFile)),
		emergency: NewFileMarker(filepath.Join(dir, EmergencyStopMarkerFile)),
		cycle:     NewFileMarker(filepath.Join(dir, CycleTriggerMarkerFile)),
	}
}

// NewStoreWithMarkers creates a Store from explicit markers.
func NewStoreWithMarkers(handsFree, emergency, cycle Marker) *Store {
	return &Store{
		handsFree: handsFree,
		emergency: emergency,
		cycle:     cycle,
	}
}

// NewMemoryStore creates a Store with in-memory markers.
func NewMemoryStore() *Store {
	return NewStoreWithMarkers(NewMemoryMarker(), NewMemoryMarker(), NewMemoryMarker())
}

// Dir returns the state directory, or "" for a store built from markers.
func (s *Store) Dir() string {
	return s.dir
}

// HandsFree returns the hands-free marker.
func (s *Store) HandsFree() Marker {
	return s.handsFree
}

// EmergencyStop returns the emergency-stop marker.
func (s *Store) EmergencyStop() Marker {
	return s.emergency
}

// CycleTrigger returns the cycle-trigger marker.
func (s *Store) CycleTrigger() Marker {
	return s.cycle
}

// HandsFreeActive reports whether hands-free mode is in effect: the
// hands-free marker exists and the emergency-stop marker does not.
//
// Any error reads as inactive. An emergency marker that cannot be checked
// is treated as present.
func (s *Store) HandsFreeActive() (bool, error) {
	stopped, err := s.emergency.Exists()
	if err != nil {
		return false, errors.Wrap(err, "checking emergency stop")
	}

	if stopped {
		return false, nil
	}

	active, err := s.handsFree.Exists()
	if err != nil {
		return false, errors.Wrap(err, "checking hands-free marker")
	}

	return active, nil
}

// EmergencyStopActive reports whether the emergency-stop marker is set.
// An error reads as set.
func (s *Store) EmergencyStopActive() (bool, error) {
	stopped, err := s.emergency.Exists()
	if err != nil {
		return true, errors.Wrap(err, "checking emergency stop")
	}

	return stopped, nil
}

// CyclePending reports whether a cycle trigger is waiting to be consumed.
func (s *Store) CyclePending() (bool, error) {
	pending, err := s.cycle.Exists()
	if err != nil {
		return false, errors.Wrap(err, "checking cycle trigger")
	}

	return pending, nil
}

// MarkerStatus describes one marker for display.
type MarkerStatus struct {
	Set   bool
	Since time.Time
}

// Snapshot is a point-in-time view of all markers.
type Snapshot struct {
	HandsFreeActive bool
	HandsFree       MarkerStatus
	EmergencyStop   MarkerStatus
	CycleTrigger    MarkerStatus
}

// Snapshot reads every marker. Errors from individual markers are combined;
// the returned snapshot is still filled with what could be read.
func (s *Store) Snapshot() (Snapshot, error) {
	var snap Snapshot

	handsFree, hfErr := readStatus(s.handsFree)
	emergency, esErr := readStatus(s.emergency)
	cycle, ctErr := readStatus(s.cycle)

	snap.HandsFree = handsFree
	snap.EmergencyStop = emergency
	snap.CycleTrigger = cycle

	// An unreadable emergency marker never lets hands-free read as active.
	snap.HandsFreeActive = handsFree.Set && !emergency.Set && esErr == nil

	return snap, errors.CombineErrors(hfErr, errors.CombineErrors(esErr, ctErr))
}

func readStatus(m Marker) (MarkerStatus, error) {
	set, err := m.Exists()
	if err != nil {
		return MarkerStatus{}, err
	}

	status := MarkerStatus{Set: set}

	if set {
		if at, tsErr := m.Timestamp(); tsErr == nil {
			status.Since = at
		}
	}

	return status, nil
}
