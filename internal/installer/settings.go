package installer

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/vocal-dev/vocal/internal/fsutil"
)

// ErrInvalidSettings is returned when settings.json is not a JSON object.
var ErrInvalidSettings = errors.New("invalid settings file")

// settingsFile is a settings.json document kept as a raw map so fields this
// package does not know about survive a rewrite.
type settingsFile struct {
	path   string
	raw    map[string]any
	exists bool
}

func loadSettings(path string) (*settingsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &settingsFile{path: path, raw: make(map[string]any)}, nil
		}

		return nil, errors.Wrap(err, "failed to read settings")
	}

	s := &settingsFile{path: path, raw: make(map[string]any), exists: true}

	if len(data) == 0 {
		return s, nil
	}

	if err := json.Unmarshal(data, &s.raw); err != nil {
		return nil, errors.WithSecondaryError(
			errors.WithMessage(ErrInvalidSettings, path),
			err,
		)
	}

	if s.raw == nil {
		s.raw = make(map[string]any)
	}

	return s, nil
}

// hooks returns the "hooks" object, creating it when create is set.
func (s *settingsFile) hooks(create bool) map[string]any {
	hooks, ok := s.raw["hooks"].(map[string]any)
	if !ok && create {
		hooks = make(map[string]any)
		s.raw["hooks"] = hooks
	}

	return hooks
}

// entries returns the matcher entries registered for event.
func (s *settingsFile) entries(event string) []any {
	hooks := s.hooks(false)
	if hooks == nil {
		return nil
	}

	list, _ := hooks[event].([]any)

	return list
}

func (s *settingsFile) save() error {
	data, err := json.MarshalIndent(s.raw, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal settings")
	}

	data = append(data, '\n')

	if err := fsutil.AtomicWriteFile(s.path, data, s.exists); err != nil {
		return errors.Wrap(err, "failed to write settings")
	}

	s.exists = true

	return nil
}

// commandsOf returns the command strings of one matcher entry.
func commandsOf(entry any) []string {
	m, ok := entry.(map[string]any)
	if !ok {
		return nil
	}

	list, _ := m["hooks"].([]any)
	commands := make([]string, 0, len(list))

	for _, h := range list {
		if hm, ok := h.(map[string]any); ok {
			if cmd, ok := hm["command"].(string); ok {
				commands = append(commands, cmd)
			}
		}
	}

	return commands
}
