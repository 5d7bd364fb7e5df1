package safety

import "github.com/vocal-dev/vocal/pkg/hook"

// MaxInlineContentBytes is the largest inline content a file operation may
// carry and still be auto-approved.
const MaxInlineContentBytes = 1_000_000

type toolClass int

const (
	toolClassUnknown toolClass = iota
	toolClassRetrieval
	toolClassFileMutation
	toolClassCommand
	toolClassAgentic
)

// toolClasses maps tool names (case-sensitive) to their capability class.
var toolClasses = map[string]toolClass{
	hook.ToolRead: toolClassRetrieval,
	hook.ToolGlob: toolClassRetrieval,
	hook.ToolGrep: toolClassRetrieval,
	hook.ToolLS:   toolClassRetrieval,

	hook.ToolEdit:         toolClassFileMutation,
	hook.ToolWrite:        toolClassFileMutation,
	hook.ToolMultiEdit:    toolClassFileMutation,
	hook.ToolNotebookEdit: toolClassFileMutation,

	hook.ToolBash: toolClassCommand,

	hook.ToolTask:      toolClassAgentic,
	hook.ToolWebFetch:  toolClassAgentic,
	hook.ToolWebSearch: toolClassAgentic,
}

func classify(toolName string) toolClass {
	return toolClasses[toolName]
}

type pathMatch int

const (
	pathMatchPrefix pathMatch = iota
	pathMatchContains
)

type pathRule struct {
	pattern string
	match   pathMatch
}

func (r pathRule) matches(path string) bool {
	if r.match == pathMatchContains {
		return containsString(path, r.pattern)
	}

	return hasPrefix(path, r.pattern)
}

// blockedPaths is checked first, in order. Matching is case-sensitive.
var blockedPaths = []pathRule{
	{pattern: "/System/", match: pathMatchPrefix},
	{pattern: "/usr/", match: pathMatchPrefix},
	{pattern: "/etc/", match: pathMatchPrefix},
	{pattern: "/bin/", match: pathMatchPrefix},
	{pattern: "/sbin/", match: pathMatchPrefix},
	{pattern: "/.ssh/", match: pathMatchContains},
	{pattern: "/keychain/", match: pathMatchContains},
}

// hiddenSegmentMarker marks a path that contains a dot-file or dot-dir segment.
const hiddenSegmentMarker = "/."

// hiddenConfigNames are shell and SSH configuration names blocked when the
// path also has a hidden segment.
var hiddenConfigNames = []string{
	"bashrc",
	"zshrc",
	"profile",
	"ssh/config",
}

// allowedPathPrefixes are relative markers and user-home roots.
var allowedPathPrefixes = []string{
	"./",
	"../",
	"/Users/",
	"/home/",
}

// dangerousCommandPatterns are matched as substrings of the lower-cased
// command anywhere in the string.
var dangerousCommandPatterns = []string{
	"rm -rf",
	"sudo",
	"chmod +x",
	"curl",
	"wget",
	"dd if=",
	"mkfs",
	"fdisk",
	"format",
	"> /dev/",
	"shutdown",
	"reboot",
	"killall",
	"kill -9",
}

// safeCommandPrefixes are matched against the start of the trimmed,
// lower-cased command.
var safeCommandPrefixes = []string{
	"ls",
	"pwd",
	"echo",
	"cat",
	"head",
	"tail",
	"grep",
	"find",
	"which",
	"whereis",
	"git status",
	"git log",
	"git diff",
	"npm list",
	"yarn list",
	"cargo check",
	"cargo build",
	"python --version",
	"node --version",
}

// DangerousCommandPatterns returns a copy of the built-in dangerous patterns.
func DangerousCommandPatterns() []string {
	return append([]string(nil), dangerousCommandPatterns...)
}

// SafeCommandPrefixes returns a copy of the built-in safe prefixes.
func SafeCommandPrefixes() []string {
	return append([]string(nil), safeCommandPrefixes...)
}
