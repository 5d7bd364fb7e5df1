// Package hookresponse builds the structured JSON decision written to stdout
// for PreToolUse hooks.
package hookresponse

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
)

// Permission decision values understood by the assistant.
const (
	DecisionAllow = "allow"
	DecisionBlock = "block"
)

// HookResponse is the top-level JSON structure written to stdout.
type HookResponse struct {
	HookSpecificOutput *HookSpecificOutput `json:"hookSpecificOutput"`

	// SuppressOutput is only set on allow decisions.
	SuppressOutput *bool `json:"suppressOutput,omitempty"`
}

// HookSpecificOutput carries the permission decision for the assistant.
type HookSpecificOutput struct {
	HookEventName            string `json:"hookEventName"`
	PermissionDecision       string `json:"permissionDecision"` // "allow" or "block"
	PermissionDecisionReason string `json:"permissionDecisionReason"`
}

// Write encodes resp as a single JSON line.
func Write(w io.Writer, resp *HookResponse) error {
	if resp == nil {
		return nil
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return errors.Wrap(err, "marshaling hook response")
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "writing hook response")
	}

	return nil
}
