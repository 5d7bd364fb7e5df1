package router

import (
	"github.com/vocal-dev/vocal/internal/audit"
	"github.com/vocal-dev/vocal/pkg/hook"
	"github.com/vocal-dev/vocal/pkg/logger"
)

// record appends the audit entry for an event that passed the gate.
func (r *Router) record(ctx *hook.Context, result *Result, log logger.Logger) {
	if r.auditor == nil {
		return
	}

	entry := &audit.Entry{
		Timestamp: r.now().UTC(),
		Event:     ctx.EventType.String(),
		SessionID: ctx.SessionID,
		Tool:      ctx.ToolName,
		CWD:       ctx.CWD,
	}

	if result.Decision != nil {
		entry.Decision = result.Decision.Level.String()
		entry.Rule = result.Decision.Rule
	}

	if path, ok := ctx.GetFilePath(); ok {
		entry.FilePath = path
	}

	if command, ok := ctx.GetCommand(); ok && ctx.IsBashTool() {
		summary := r.bash.Summarize(command)
		entry.Commands = summary.Commands
		entry.Writes = summary.Writes

		if summary.Unparsed {
			entry.Note = "command not parseable as bash"
		}
	}

	switch {
	case result.Reentrant:
		entry.Note = "stop hook already active"
	case ctx.EventType == hook.EventTypeStop && !result.CycleArmed:
		entry.Note = "cycle trigger not armed"
	}

	if err := r.auditor.Log(entry); err != nil {
		log.Error("failed to write audit entry", "error", err)
	}
}
