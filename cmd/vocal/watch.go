package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vocal-dev/vocal/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Emit an event each time a recording cycle is triggered",
	Long: `Watch the state directory and print one JSON line per consumed cycle
trigger:

  {"event":"restart-recording","at":1735689600}

Exits with an error when the emergency stop is engaged or the cycle limit
is reached (hands-free mode is turned off first). Exits cleanly on
SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.New(a.store.Dir(), a.ctrl, a.store, cmd.OutOrStdout(), watch.WithLogger(a.log))

	return w.Run(ctx)
}
