package hook

// Tool names as sent by Claude Code in the tool_name field.
const (
	ToolRead         = "Read"
	ToolGlob         = "Glob"
	ToolGrep         = "Grep"
	ToolLS           = "LS"
	ToolEdit         = "Edit"
	ToolWrite        = "Write"
	ToolMultiEdit    = "MultiEdit"
	ToolNotebookEdit = "NotebookEdit"
	ToolBash         = "Bash"
	ToolTask         = "Task"
	ToolWebFetch     = "WebFetch"
	ToolWebSearch    = "WebSearch"
)

// Well-known tool input fields.
const (
	FieldCommand  = "command"
	FieldFilePath = "file_path"
	FieldContent  = "content"
)

// ToolInput is the loosely-typed tool_input object. Its shape depends on the
// tool, so every accessor reports whether the field was present with the
// expected type instead of failing.
type ToolInput map[string]any

// Has reports whether the field is present, whatever its type.
func (in ToolInput) Has(key string) bool {
	_, ok := in[key]

	return ok
}

// String returns the field as a string. ok is false when the field is
// missing or is not a JSON string.
func (in ToolInput) String(key string) (string, bool) {
	v, ok := in[key]
	if !ok {
		return "", false
	}

	s, ok := v.(string)

	return s, ok
}
