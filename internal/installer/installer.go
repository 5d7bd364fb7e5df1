// Package installer registers the hook command in the assistant's
// settings.json and removes it again.
package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vocal-dev/vocal/internal/xdg"
	"github.com/vocal-dev/vocal/pkg/hook"
	"github.com/vocal-dev/vocal/pkg/logger"
)

// Scope selects which settings file to edit.
type Scope int

const (
	// ScopeAuto picks project or user settings from the working directory.
	ScopeAuto Scope = iota
	// ScopeUser is ~/.claude/settings.json.
	ScopeUser
	// ScopeProject is .claude/settings.json in the working directory.
	ScopeProject
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeUser:
		return "user"
	case ScopeProject:
		return "project"
	default:
		return "auto"
	}
}

// projectMarkers identify a project root.
var projectMarkers = []string{
	".git",
	"go.mod",
	"package.json",
	"Cargo.toml",
	"requirements.txt",
}

// HookSpec is one settings entry written by Install.
type HookSpec struct {
	Event hook.EventType

	// Matcher is the tool name pattern; empty for events without tools.
	Matcher string

	// Timeout is in seconds.
	Timeout int
}

// DefaultHooks are the entries Install writes.
var DefaultHooks = []HookSpec{
	{
		Event:   hook.EventTypePreToolUse,
		Matcher: "Read|Glob|Grep|LS|Edit|Write|MultiEdit|NotebookEdit|Bash|Task|WebFetch|WebSearch",
		Timeout: 30,
	},
	{
		Event:   hook.EventTypePostToolUse,
		Matcher: "Edit|Write|MultiEdit|Bash",
		Timeout: 10,
	},
	{Event: hook.EventTypeStop, Timeout: 10},
	{Event: hook.EventTypeUserPromptSubmit, Timeout: 10},
}

// Target is a resolved settings file.
type Target struct {
	Scope Scope
	Path  string
}

// ResolveTarget maps scope to a settings path. ScopeAuto picks the project
// file when it already exists or workDir looks like a project root.
func ResolveTarget(scope Scope, workDir string, paths xdg.PathResolver) Target {
	project := Target{Scope: ScopeProject, Path: xdg.ClaudeProjectSettingsFile(workDir)}
	user := Target{Scope: ScopeUser, Path: paths.ClaudeUserSettingsFile()}

	switch scope {
	case ScopeUser:
		return user
	case ScopeProject:
		return project
	}

	if fileExists(project.Path) {
		return project
	}

	for _, marker := range projectMarkers {
		if fileExists(filepath.Join(workDir, marker)) {
			return project
		}
	}

	return user
}

// Result lists what Install or Uninstall changed.
type Result struct {
	Path string

	// Added are the events that received a new entry.
	Added []string

	// Present are the events that already pointed at this binary.
	Present []string

	// Removed counts hook commands dropped by Uninstall.
	Removed int
}

// Changed reports whether the settings file was rewritten.
func (r *Result) Changed() bool {
	return len(r.Added) > 0 || r.Removed > 0
}

// Installer edits settings files for one binary.
type Installer struct {
	binary string
	hooks  []HookSpec
	logger logger.Logger
}

// New creates an Installer for binary, the path written into commands.
func New(binary string, log logger.Logger) *Installer {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Installer{binary: binary, hooks: DefaultHooks, logger: log}
}

// Command returns the hook command line for event.
func (i *Installer) Command(event hook.EventType) string {
	return fmt.Sprintf("%s hook %s", i.binary, event.Arg())
}

// Install adds an entry per DefaultHooks event unless one already invokes
// this binary for that event. Unknown settings are preserved and the
// previous file is backed up.
func (i *Installer) Install(path string) (*Result, error) {
	settings, err := loadSettings(path)
	if err != nil {
		return nil, err
	}

	result := &Result{Path: path}

	for _, spec := range i.hooks {
		name := spec.Event.String()

		if i.registered(settings.entries(name), spec.Event) {
			result.Present = append(result.Present, name)

			continue
		}

		entry := map[string]any{
			"hooks": []any{
				map[string]any{
					"type":    "command",
					"command": i.Command(spec.Event),
					"timeout": spec.Timeout,
				},
			},
		}

		if spec.Matcher != "" {
			entry["matcher"] = spec.Matcher
		}

		settings.hooks(true)[name] = append(settings.entries(name), entry)
		result.Added = append(result.Added, name)
	}

	if !result.Changed() {
		i.logger.Info("hooks already installed", "path", path)

		return result, nil
	}

	if err := settings.save(); err != nil {
		return nil, err
	}

	i.logger.Info("hooks installed", "path", path, "events", strings.Join(result.Added, ","))

	return result, nil
}

// Uninstall removes every hook command that invokes "<binary> hook" under
// any event. Entries left without commands are dropped, then empty events,
// then an empty hooks object. Other commands are untouched.
func (i *Installer) Uninstall(path string) (*Result, error) {
	settings, err := loadSettings(path)
	if err != nil {
		return nil, err
	}

	result := &Result{Path: path}

	hooks := settings.hooks(false)
	if hooks == nil {
		return result, nil
	}

	for event := range hooks {
		list, ok := hooks[event].([]any)
		if !ok {
			continue
		}

		kept := make([]any, 0, len(list))

		for _, entry := range list {
			remaining, removed := i.stripEntry(entry)
			result.Removed += removed

			if remaining != nil {
				kept = append(kept, remaining)
			}
		}

		if len(kept) == 0 {
			delete(hooks, event)
		} else {
			hooks[event] = kept
		}
	}

	if result.Removed == 0 {
		return result, nil
	}

	if len(hooks) == 0 {
		delete(settings.raw, "hooks")
	}

	if err := settings.save(); err != nil {
		return nil, err
	}

	i.logger.Info("hooks uninstalled", "path", path, "removed", result.Removed)

	return result, nil
}

// Installed returns the routed events that have a command for this binary.
func (i *Installer) Installed(path string) ([]string, error) {
	settings, err := loadSettings(path)
	if err != nil {
		return nil, err
	}

	var events []string

	for _, event := range hook.RoutedEvents() {
		if i.registered(settings.entries(event.String()), event) {
			events = append(events, event.String())
		}
	}

	return events, nil
}

// stripEntry drops this binary's commands from a matcher entry. It returns
// nil when nothing remains.
func (i *Installer) stripEntry(entry any) (any, int) {
	m, ok := entry.(map[string]any)
	if !ok {
		return entry, 0
	}

	list, ok := m["hooks"].([]any)
	if !ok {
		return entry, 0
	}

	kept := slices.DeleteFunc(slices.Clone(list), func(h any) bool {
		hm, ok := h.(map[string]any)
		if !ok {
			return false
		}

		cmd, _ := hm["command"].(string)

		return i.ownsCommand(cmd, "")
	})

	removed := len(list) - len(kept)
	if removed == 0 {
		return entry, 0
	}

	if len(kept) == 0 {
		return nil, removed
	}

	m["hooks"] = kept

	return m, removed
}

func (i *Installer) registered(entries []any, event hook.EventType) bool {
	for _, entry := range entries {
		for _, cmd := range commandsOf(entry) {
			if i.ownsCommand(cmd, event.Arg()) {
				return true
			}
		}
	}

	return false
}

// ownsCommand reports whether cmd runs "<binary> hook [event]". The binary
// is compared by base name so a moved install is still recognized.
func (i *Installer) ownsCommand(cmd, eventArg string) bool {
	fields := strings.Fields(cmd)
	if len(fields) < 3 || fields[1] != "hook" { //nolint:mnd // binary, "hook", event
		return false
	}

	if filepath.Base(fields[0]) != filepath.Base(i.binary) {
		return false
	}

	return eventArg == "" || fields[2] == eventArg
}

func fileExists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}
