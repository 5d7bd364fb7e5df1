package main

import (
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/vocal-dev/vocal/internal/session"
)

var clearSession bool

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Show the recorded terminal session",
	Long: `Show the terminal session recorded by the last stop event as JSON.

Use --clear to forget it.`,
	Args: cobra.NoArgs,
	RunE: runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)

	sessionCmd.Flags().BoolVar(&clearSession, "clear", false, "Remove the recorded session")
}

func runSession(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	if clearSession {
		if err := a.sessions.Clear(); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Session info cleared.")

		return nil
	}

	info, err := a.sessions.Load()
	if errors.Is(err, session.ErrNoSession) {
		fmt.Fprintln(cmd.OutOrStdout(), "no session info")

		return nil
	}

	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal session info")
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	return nil
}
