package exec

import "os/exec"

// ToolChecker locates executables on PATH.
type ToolChecker interface {
	IsAvailable(tool string) bool
	RequireTool(tool string) error
	FindTool(alternatives ...string) string
}

type toolChecker struct {
	lookPath func(string) (string, error)
}

// NewToolChecker creates a ToolChecker backed by exec.LookPath.
func NewToolChecker() ToolChecker {
	return &toolChecker{lookPath: exec.LookPath}
}

func (t *toolChecker) IsAvailable(tool string) bool {
	_, err := t.lookPath(tool)

	return err == nil
}

func (t *toolChecker) RequireTool(tool string) error {
	if !t.IsAvailable(tool) {
		return &ToolNotFoundError{Tool: tool}
	}

	return nil
}

// FindTool returns the first available tool, or "" when none is.
func (t *toolChecker) FindTool(alternatives ...string) string {
	for _, tool := range alternatives {
		if t.IsAvailable(tool) {
			return tool
		}
	}

	return ""
}

// ToolNotFoundError is returned when a required tool is not on PATH.
type ToolNotFoundError struct {
	Tool string
}

func (e *ToolNotFoundError) Error() string {
	return "tool not found in PATH: " + e.Tool
}
