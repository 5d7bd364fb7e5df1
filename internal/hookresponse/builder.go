package hookresponse

import (
	"fmt"

	"github.com/vocal-dev/vocal/internal/safety"
	"github.com/vocal-dev/vocal/pkg/hook"
)

const notePrefix = "Hands-free mode: "

// BuildDecision constructs the response for a PreToolUse decision.
// Returns nil for Validate: the normal confirmation flow is left alone.
func BuildDecision(toolName string, level safety.PermissionLevel) *HookResponse {
	switch level {
	case safety.PermissionLevelAllow:
		suppress := safety.ShouldSuppressOutput(toolName, level)

		return &HookResponse{
			HookSpecificOutput: &HookSpecificOutput{
				HookEventName:            hook.EventTypePreToolUse.String(),
				PermissionDecision:       DecisionAllow,
				PermissionDecisionReason: AllowReason(toolName),
			},
			SuppressOutput: &suppress,
		}
	case safety.PermissionLevelBlock:
		return &HookResponse{
			HookSpecificOutput: &HookSpecificOutput{
				HookEventName:            hook.EventTypePreToolUse.String(),
				PermissionDecision:       DecisionBlock,
				PermissionDecisionReason: BlockReason(toolName),
			},
		}
	default:
		return nil
	}
}

// AllowReason is the reason attached to allow decisions.
func AllowReason(toolName string) string {
	return fmt.Sprintf("%s%s operation auto-approved", notePrefix, toolName)
}

// BlockReason is the reason attached to block decisions.
func BlockReason(toolName string) string {
	return fmt.Sprintf("%s%s operation blocked for safety", notePrefix, toolName)
}

// ValidateNote is the diagnostic line for operations left to the user.
func ValidateNote(toolName string) string {
	return fmt.Sprintf("%s%s operation requires user validation", notePrefix, toolName)
}

// CompletedNote is the diagnostic line for PostToolUse events.
func CompletedNote(toolName string) string {
	return fmt.Sprintf("%s%s operation completed", notePrefix, toolName)
}

// CycleTriggeredNote is the diagnostic line written after a Stop event armed
// the cycle trigger.
func CycleTriggeredNote() string {
	return notePrefix + "Triggered recording restart for next cycle"
}

// PromptSubmittedNote is the diagnostic line for UserPromptSubmit events.
func PromptSubmittedNote() string {
	return notePrefix + "User prompt submitted, preparing for processing"
}
