// Package audit appends one JSONL entry per routed hook event and reads
// them back for the audit command.
package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/vocal-dev/vocal/internal/fsutil"
	"github.com/vocal-dev/vocal/pkg/logger"
)

// rotatedSuffix is appended to the audit file name when it is rotated.
const rotatedSuffix = ".1"

// maxLineBytes bounds one JSONL line when reading.
const maxLineBytes = 1024 * 1024

// Entry is one audited hook event.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Event     string    `json:"event"`
	SessionID string    `json:"session_id,omitempty"`
	Tool      string    `json:"tool,omitempty"`

	// Decision is the permission level for PreToolUse events.
	Decision string `json:"decision,omitempty"`

	// Rule names the evaluator rule behind Decision.
	Rule string `json:"rule,omitempty"`

	// Commands are the command names found in a Bash command.
	Commands []string `json:"commands,omitempty"`

	// Writes are the files a Bash command redirects or copies into.
	Writes []string `json:"writes,omitempty"`

	FilePath string `json:"file_path,omitempty"`
	CWD      string `json:"cwd,omitempty"`

	// Note carries free-form detail such as a failed state write.
	Note string `json:"note,omitempty"`
}

// Logger writes audit entries to a JSONL file, rotating it to <file>.1 once
// it reaches maxSize bytes.
type Logger struct {
	mu      sync.Mutex
	path    string
	maxSize int64
	enabled bool
	logger  logger.Logger
	now     func() time.Time
	newID   func() string
}

// Option configures the Logger.
type Option func(*Logger)

// WithLogger sets the diagnostic logger.
func WithLogger(log logger.Logger) Option {
	return func(l *Logger) {
		if log != nil {
			l.logger = log
		}
	}
}

// WithTimeFunc sets a custom time function for testing.
func WithTimeFunc(fn func() time.Time) Option {
	return func(l *Logger) {
		if fn != nil {
			l.now = fn
		}
	}
}

// WithIDFunc sets a custom id generator for testing.
func WithIDFunc(fn func() string) Option {
	return func(l *Logger) {
		if fn != nil {
			l.newID = fn
		}
	}
}

// WithEnabled turns logging on or off. Enabled by default.
func WithEnabled(enabled bool) Option {
	return func(l *Logger) {
		l.enabled = enabled
	}
}

// NewLogger creates an audit logger writing to path. A maxSize of 0
// disables rotation.
func NewLogger(path string, maxSize uint64, opts ...Option) *Logger {
	l := &Logger{
		path:    path,
		maxSize: int64(min(maxSize, uint64(1<<62))), //nolint:gosec // clamped
		enabled: true,
		logger:  logger.NewNoOpLogger(),
		now:     time.Now,
		newID:   uuid.NewString,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Path returns the audit file path.
func (l *Logger) Path() string {
	return l.path
}

// Enabled reports whether entries are written.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// Log appends entry, filling ID and Timestamp when unset.
func (l *Logger) Log(entry *Entry) error {
	if entry == nil || !l.enabled {
		return nil
	}

	if entry.ID == "" {
		entry.ID = l.newID()
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = l.now().UTC()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "marshaling audit entry")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.rotateIfNeededLocked(); err != nil {
		l.logger.Error("failed to rotate audit log", "error", err)
	}

	return l.appendLocked(data)
}

func (l *Logger) appendLocked(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(l.path), fsutil.DirPermissions); err != nil {
		return errors.Wrap(err, "creating audit directory")
	}

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, fsutil.FilePermissions)
	if err != nil {
		return errors.Wrap(err, "opening audit file")
	}

	_, writeErr := file.Write(append(data, '\n'))
	closeErr := file.Close()

	if writeErr != nil {
		return errors.Wrap(writeErr, "writing audit entry")
	}

	return errors.Wrap(closeErr, "closing audit file")
}

func (l *Logger) rotateIfNeededLocked() error {
	if l.maxSize <= 0 {
		return nil
	}

	info, err := os.Stat(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return errors.Wrap(err, "checking audit file size")
	}

	if info.Size() < l.maxSize {
		return nil
	}

	l.logger.Debug("rotating audit log",
		"size", info.Size(),
		"max_size", l.maxSize,
	)

	return errors.Wrap(os.Rename(l.path, l.path+rotatedSuffix), "rotating audit file")
}

// Read returns up to limit of the newest entries, oldest first. The rotated
// file is consulted when the current one holds fewer than limit entries.
// A limit of 0 or less returns everything. Malformed lines are skipped.
func (l *Logger) Read(limit int) ([]*Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, err := l.readFile(l.path)
	if err != nil {
		return nil, err
	}

	entries := current
	if limit <= 0 || len(current) < limit {
		rotated, err := l.readFile(l.path + rotatedSuffix)
		if err != nil {
			return nil, err
		}

		entries = append(rotated, current...)
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	return entries, nil
}

func (l *Logger) readFile(path string) ([]*Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "opening audit file")
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			l.logger.Error("failed to close audit file", "error", closeErr)
		}
	}()

	var entries []*Entry

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			l.logger.Debug("skipping malformed audit entry", "error", err)

			continue
		}

		entries = append(entries, &entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scanning audit file")
	}

	return entries, nil
}
