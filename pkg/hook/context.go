// Package hook provides core types for Claude Code hook context.
package hook

//go:generate enumer -type=EventType -trimprefix=EventType -json -text

// EventType represents the type of hook event.
type EventType int

const (
	// EventTypeUnknown represents an unknown event type.
	EventTypeUnknown EventType = iota

	// EventTypePreToolUse is triggered before a tool is executed.
	EventTypePreToolUse

	// EventTypePostToolUse is triggered after a tool is executed.
	EventTypePostToolUse

	// EventTypeStop is triggered when the assistant finishes a turn.
	EventTypeStop

	// EventTypeUserPromptSubmit is triggered when a prompt is submitted.
	EventTypeUserPromptSubmit
)

// Context represents the complete hook invocation context.
type Context struct {
	// EventType is the event the hook was invoked for.
	EventType EventType

	// HookEventName is the raw hook_event_name field from the payload.
	HookEventName string

	// SessionID is the unique identifier for the Claude Code session.
	SessionID string

	// TranscriptPath is the path to the session transcript file.
	TranscriptPath string

	// CWD is the working directory of the session.
	CWD string

	// ToolName is the name of the tool being invoked. Empty for Stop and
	// UserPromptSubmit events.
	ToolName string

	// ToolInput contains the tool-specific input parameters. Never nil after
	// parsing.
	ToolInput ToolInput

	// StopHookActive is set by the assistant when a Stop hook is already
	// running for this turn.
	StopHookActive bool

	// RawJSON contains the original JSON input.
	RawJSON string
}

// GetCommand returns the command field of the tool input.
func (c *Context) GetCommand() (string, bool) {
	return c.ToolInput.String(FieldCommand)
}

// GetFilePath returns the file_path field of the tool input.
func (c *Context) GetFilePath() (string, bool) {
	return c.ToolInput.String(FieldFilePath)
}

// IsBashTool returns true if the tool is Bash.
func (c *Context) IsBashTool() bool {
	return c.ToolName == ToolBash
}
