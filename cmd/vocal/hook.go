package main

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/vocal-dev/vocal/internal/parser"
	"github.com/vocal-dev/vocal/internal/router"
	"github.com/vocal-dev/vocal/internal/safety"
	"github.com/vocal-dev/vocal/pkg/config"
	"github.com/vocal-dev/vocal/pkg/hook"
)

var hookCmd = &cobra.Command{
	Use:   "hook <event>",
	Short: "Handle one Claude Code hook event",
	Long: `Handle one Claude Code hook event read as JSON from stdin.

Events: ` + strings.Join(eventArgs(), ", ") + `

While hands-free mode is active, pre-tool-use events print a decision
record on stdout (allow or block) or a note on stderr when the operation
needs the user. Inactive mode produces no output.

Malformed or empty input exits with status 1.`,
	Args: cobra.ExactArgs(1),
	RunE: runHook,
}

func init() {
	rootCmd.AddCommand(hookCmd)
}

func runHook(cmd *cobra.Command, args []string) error {
	eventType, err := hook.ParseEventArg(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	log := a.log.With("hook", eventType.Arg())

	ctx, err := parser.NewJSONParser(cmd.InOrStdin()).Parse(eventType)
	if err != nil {
		log.Error("failed to parse hook input", "error", err)

		return errors.Wrap(err, "failed to parse input")
	}

	r := router.New(a.ctrl, a.ctrl, a.sessions,
		router.WithPolicy(newPolicy(a.cfg)),
		router.WithAuditor(a.auditor),
		router.WithLogger(a.log),
		router.WithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr()),
	)

	if _, err := r.Route(ctx); err != nil {
		return errors.Wrap(err, "failed to write hook response")
	}

	return nil
}

// newPolicy builds the evaluator with the configured extra block rules.
func newPolicy(cfg *config.Config) *safety.Policy {
	policy := cfg.GetPolicy()

	return safety.NewPolicy(
		safety.WithBlockedPathGlobs(policy.BlockedPaths...),
		safety.WithDangerousPatterns(policy.DangerousPatterns...),
	)
}

func eventArgs() []string {
	events := hook.RoutedEvents()

	names := make([]string, 0, len(events))
	for _, event := range events {
		names = append(names, event.Arg())
	}

	return names
}
