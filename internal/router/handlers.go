package router

import (
	"github.com/cockroachdb/errors"

	"github.com/vocal-dev/vocal/internal/hookresponse"
	"github.com/vocal-dev/vocal/internal/session"
	"github.com/vocal-dev/vocal/pkg/hook"
	"github.com/vocal-dev/vocal/pkg/logger"
)

func (r *Router) handlePreToolUse(ctx *hook.Context, log logger.Logger) (*Result, error) {
	decision := r.policy.Explain(ctx.ToolName, ctx.ToolInput)

	log.Info("tool use evaluated",
		"tool", ctx.ToolName,
		"level", decision.Level.String(),
		"rule", decision.Rule,
		"pattern", decision.Pattern,
	)

	result := &Result{Active: true, Decision: &decision}

	resp := hookresponse.BuildDecision(ctx.ToolName, decision.Level)
	if resp == nil {
		r.note(hookresponse.ValidateNote(ctx.ToolName))

		return result, nil
	}

	result.Response = resp

	if err := hookresponse.Write(r.stdout, resp); err != nil {
		log.Error("failed to write decision", "error", err)

		return result, errors.Wrap(err, "emitting decision")
	}

	return result, nil
}

func (r *Router) handlePostToolUse(ctx *hook.Context, log logger.Logger) *Result {
	log.Info("tool use completed", "tool", ctx.ToolName)
	r.note(hookresponse.CompletedNote(ctx.ToolName))

	return &Result{Active: true}
}

// handleStop records where the session lives and arms the cycle trigger so
// the capture loop restarts. Both steps are best-effort.
func (r *Router) handleStop(ctx *hook.Context, log logger.Logger) *Result {
	result := &Result{Active: true}

	if ctx.StopHookActive {
		log.Debug("stop hook already active, skipping")

		result.Reentrant = true

		return result
	}

	info := session.NewInfo(ctx, r.getenv, r.now())
	if err := r.sessions.Save(info); err != nil {
		log.Error("failed to save session info", "error", err)
		r.note("Warning: failed to save session info: " + err.Error())
	} else {
		result.SessionSaved = true
	}

	if err := r.cycle.TriggerCycle(); err != nil {
		log.Error("failed to arm cycle trigger", "error", err)
		r.note("Warning: failed to trigger recording restart: " + err.Error())

		return result
	}

	result.CycleArmed = true

	log.Info("cycle trigger armed")
	r.note(hookresponse.CycleTriggeredNote())

	return result
}

func (r *Router) handleUserPromptSubmit(_ *hook.Context, log logger.Logger) *Result {
	log.Info("user prompt submitted")
	r.note(hookresponse.PromptSubmittedNote())

	return &Result{Active: true}
}
