package hook

import (
	"github.com/cockroachdb/errors"
)

// ErrUnknownEvent is returned for unrecognized event arguments.
var ErrUnknownEvent = errors.New("unknown hook event")

var eventArgs = map[EventType]string{
	EventTypePreToolUse:       "pre-tool-use",
	EventTypePostToolUse:      "post-tool-use",
	EventTypeStop:             "stop",
	EventTypeUserPromptSubmit: "user-prompt-submit",
}

// Arg returns the command-line form of the event, e.g. "pre-tool-use".
// Unknown events return "".
func (i EventType) Arg() string {
	return eventArgs[i]
}

// ParseEventArg accepts the command-line form ("pre-tool-use") or the hook
// event name ("PreToolUse", case-insensitive).
func ParseEventArg(arg string) (EventType, error) {
	for event, name := range eventArgs {
		if name == arg {
			return event, nil
		}
	}

	event, err := EventTypeString(arg)
	if err != nil || event == EventTypeUnknown {
		return EventTypeUnknown, errors.Wrapf(ErrUnknownEvent, "%q", arg)
	}

	return event, nil
}

// RoutedEvents lists the events the hook command handles, in install order.
func RoutedEvents() []EventType {
	return []EventType{
		EventTypePreToolUse,
		EventTypePostToolUse,
		EventTypeStop,
		EventTypeUserPromptSubmit,
	}
}
