// Package parser provides JSON input parsing for Claude Code hooks.
package parser

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/vocal-dev/vocal/pkg/hook"
)

var (
	// ErrEmptyInput is returned when the input is empty.
	ErrEmptyInput = errors.New("empty input")

	// ErrInvalidJSON is returned when the input is not a JSON object.
	ErrInvalidJSON = errors.New("invalid JSON")
)

// Payload field names.
const (
	fieldSessionID      = "session_id"
	fieldTranscriptPath = "transcript_path"
	fieldCWD            = "cwd"
	fieldHookEventName  = "hook_event_name"
	fieldToolName       = "tool_name"
	fieldToolInput      = "tool_input"
	fieldStopHookActive = "stop_hook_active"
)

// JSONParser parses the hook payload from a reader.
type JSONParser struct {
	reader io.Reader
}

// NewJSONParser creates a new JSONParser that reads from the given reader.
func NewJSONParser(reader io.Reader) *JSONParser {
	return &JSONParser{
		reader: reader,
	}
}

// Parse reads one JSON object and extracts the hook context.
//
// Only the top level must be well-formed: a field with an unexpected type
// is treated as missing, so string fields become "", tool_input becomes an
// empty object and stop_hook_active becomes false.
//
// When eventType is EventTypeUnknown the event is taken from hook_event_name.
func (p *JSONParser) Parse(eventType hook.EventType) (*hook.Context, error) {
	jsonBytes, err := io.ReadAll(p.reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input")
	}

	if len(bytes.TrimSpace(jsonBytes)) == 0 {
		return nil, ErrEmptyInput
	}

	var fields map[string]json.RawMessage

	if unmarshalErr := json.Unmarshal(jsonBytes, &fields); unmarshalErr != nil {
		return nil, errors.CombineErrors(ErrInvalidJSON, unmarshalErr)
	}

	// A literal null decodes into a nil map without error.
	if fields == nil {
		return nil, errors.Wrap(ErrInvalidJSON, "payload is not an object")
	}

	hookEventName := stringField(fields, fieldHookEventName)

	if eventType == hook.EventTypeUnknown {
		if parsed, parseErr := hook.EventTypeString(hookEventName); parseErr == nil {
			eventType = parsed
		}
	}

	ctx := &hook.Context{
		EventType:      eventType,
		HookEventName:  hookEventName,
		SessionID:      stringField(fields, fieldSessionID),
		TranscriptPath: stringField(fields, fieldTranscriptPath),
		CWD:            stringField(fields, fieldCWD),
		ToolName:       stringField(fields, fieldToolName),
		ToolInput:      toolInputField(fields),
		StopHookActive: boolField(fields, fieldStopHookActive),
		RawJSON:        string(jsonBytes),
	}

	return ctx, nil
}

func stringField(fields map[string]json.RawMessage, key string) string {
	var s string

	if raw, ok := fields[key]; ok {
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
	}

	return s
}

func boolField(fields map[string]json.RawMessage, key string) bool {
	var b bool

	if raw, ok := fields[key]; ok {
		if err := json.Unmarshal(raw, &b); err != nil {
			return false
		}
	}

	return b
}

func toolInputField(fields map[string]json.RawMessage) hook.ToolInput {
	input := hook.ToolInput{}

	raw, ok := fields[fieldToolInput]
	if !ok {
		return input
	}

	var decoded map[string]any

	if err := json.Unmarshal(raw, &decoded); err != nil || decoded == nil {
		return input
	}

	for k, v := range decoded {
		input[k] = v
	}

	return input
}
