package safety

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vocal-dev/vocal/pkg/hook"
)

// Rule identifiers reported by Explain.
const (
	RuleRetrievalTool    = "retrieval-tool"
	RuleAgenticTool      = "agentic-tool"
	RuleUnknownTool      = "unknown-tool"
	RuleMissingFilePath  = "missing-file-path"
	RuleBlockedPath      = "blocked-path"
	RuleHiddenConfig     = "hidden-config"
	RuleBlockedGlob      = "blocked-glob"
	RuleAllowedPath      = "allowed-path"
	RuleOversizedContent = "oversized-content"
	RuleUnrecognizedPath = "unrecognized-path"
	RuleMissingCommand   = "missing-command"
	RuleDangerousCommand = "dangerous-command"
	RuleSafeCommand      = "safe-command"
	RuleUnknownCommand   = "unknown-command"
)

// Decision is a permission level together with the rule that produced it.
type Decision struct {
	Level PermissionLevel

	// Rule names the rule that matched.
	Rule string

	// Pattern is the table entry that matched, if any.
	Pattern string
}

// Policy evaluates tool invocations. The built-in tables always apply;
// options can only add Block rules on top of them.
//
// A Policy is immutable after construction and safe for concurrent use.
type Policy struct {
	blockedPathGlobs  []string
	dangerousPatterns []string
}

// Option configures a Policy.
type Option func(*Policy)

// WithBlockedPathGlobs adds doublestar globs. A file operation whose
// file_path matches any of them is blocked. Invalid patterns are ignored
// here; callers validate them up front.
func WithBlockedPathGlobs(globs ...string) Option {
	return func(p *Policy) {
		for _, g := range globs {
			if g != "" && doublestar.ValidatePattern(g) {
				p.blockedPathGlobs = append(p.blockedPathGlobs, g)
			}
		}
	}
}

// WithDangerousPatterns adds command substrings that block a Bash command.
func WithDangerousPatterns(patterns ...string) Option {
	return func(p *Policy) {
		for _, pattern := range patterns {
			if pattern = strings.ToLower(pattern); pattern != "" {
				p.dangerousPatterns = append(p.dangerousPatterns, pattern)
			}
		}
	}
}

// NewPolicy creates a Policy with the built-in tables and the given options.
func NewPolicy(opts ...Option) *Policy {
	p := &Policy{}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

var defaultPolicy = NewPolicy()

// Evaluate classifies a tool invocation using the built-in tables only.
func Evaluate(toolName string, input hook.ToolInput) PermissionLevel {
	return defaultPolicy.Evaluate(toolName, input)
}

// Evaluate classifies a tool invocation. It is total and deterministic.
func (p *Policy) Evaluate(toolName string, input hook.ToolInput) PermissionLevel {
	return p.Explain(toolName, input).Level
}

// Explain classifies a tool invocation and reports the rule that decided it.
func (p *Policy) Explain(toolName string, input hook.ToolInput) Decision {
	if p == nil {
		p = defaultPolicy
	}

	switch classify(toolName) {
	case toolClassRetrieval:
		return Decision{Level: PermissionLevelAllow, Rule: RuleRetrievalTool}
	case toolClassFileMutation:
		return p.evaluateFileOperation(input)
	case toolClassCommand:
		return p.evaluateCommand(input)
	case toolClassAgentic:
		return Decision{Level: PermissionLevelValidate, Rule: RuleAgenticTool}
	default:
		return Decision{Level: PermissionLevelBlock, Rule: RuleUnknownTool}
	}
}

// evaluateFileOperation applies the block-lists before the allow-list.
func (p *Policy) evaluateFileOperation(input hook.ToolInput) Decision {
	path, ok := input.String(hook.FieldFilePath)
	if !ok {
		return Decision{Level: PermissionLevelValidate, Rule: RuleMissingFilePath}
	}

	for _, rule := range blockedPaths {
		if rule.matches(path) {
			return Decision{Level: PermissionLevelBlock, Rule: RuleBlockedPath, Pattern: rule.pattern}
		}
	}

	if containsString(path, hiddenSegmentMarker) {
		for _, name := range hiddenConfigNames {
			if containsString(path, name) {
				return Decision{Level: PermissionLevelBlock, Rule: RuleHiddenConfig, Pattern: name}
			}
		}
	}

	for _, glob := range p.blockedPathGlobs {
		if matched, err := doublestar.Match(glob, path); matched || err != nil {
			return Decision{Level: PermissionLevelBlock, Rule: RuleBlockedGlob, Pattern: glob}
		}
	}

	for _, prefix := range allowedPathPrefixes {
		if !hasPrefix(path, prefix) {
			continue
		}

		if input.Has(hook.FieldContent) {
			content, isString := input.String(hook.FieldContent)
			if !isString || len(content) > MaxInlineContentBytes {
				return Decision{Level: PermissionLevelValidate, Rule: RuleOversizedContent, Pattern: prefix}
			}
		}

		return Decision{Level: PermissionLevelAllow, Rule: RuleAllowedPath, Pattern: prefix}
	}

	return Decision{Level: PermissionLevelValidate, Rule: RuleUnrecognizedPath}
}

// evaluateCommand checks the dangerous patterns before the safe prefixes so
// a command matching both is still blocked.
func (p *Policy) evaluateCommand(input hook.ToolInput) Decision {
	command, ok := input.String(hook.FieldCommand)
	if !ok {
		return Decision{Level: PermissionLevelBlock, Rule: RuleMissingCommand}
	}

	lower := strings.ToLower(command)

	for _, pattern := range dangerousCommandPatterns {
		if containsString(lower, pattern) {
			return Decision{Level: PermissionLevelBlock, Rule: RuleDangerousCommand, Pattern: pattern}
		}
	}

	for _, pattern := range p.dangerousPatterns {
		if containsString(lower, pattern) {
			return Decision{Level: PermissionLevelBlock, Rule: RuleDangerousCommand, Pattern: pattern}
		}
	}

	trimmed := strings.TrimSpace(lower)

	for _, prefix := range safeCommandPrefixes {
		if hasPrefix(trimmed, prefix) {
			return Decision{Level: PermissionLevelAllow, Rule: RuleSafeCommand, Pattern: prefix}
		}
	}

	return Decision{Level: PermissionLevelValidate, Rule: RuleUnknownCommand}
}

// ShouldSuppressOutput reports whether console output for the tool can be
// suppressed: only for allowed, side-effect-free retrieval tools.
func ShouldSuppressOutput(toolName string, level PermissionLevel) bool {
	return level == PermissionLevelAllow && classify(toolName) == toolClassRetrieval
}

func hasPrefix(s, prefix string) bool {
	return strings.HasPrefix(s, prefix)
}

func containsString(s, substr string) bool {
	return strings.Contains(s, substr)
}
