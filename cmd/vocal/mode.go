package main

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/vocal-dev/vocal/internal/controller"
	"github.com/vocal-dev/vocal/internal/exec"
	"github.com/vocal-dev/vocal/internal/report"
	"github.com/vocal-dev/vocal/internal/tui"
)

var assumeYes bool

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Turn hands-free mode on",
	Long: `Turn hands-free mode on. While the emergency stop is engaged the mode
stays off and takes effect once the stop is cleared.`,
	Args: cobra.NoArgs,
	RunE: runActivate,
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Turn hands-free mode off",
	Args:  cobra.NoArgs,
	RunE:  runDeactivate,
}

var emergencyStopCmd = &cobra.Command{
	Use:   "emergency-stop",
	Short: "Stop hands-free mode immediately",
	Long: `Engage the emergency stop: hands-free mode reads as inactive until the
stop is cleared, and any pending cycle trigger is discarded.`,
	Args: cobra.NoArgs,
	RunE: runEmergencyStop,
}

var clearEmergencyStopCmd = &cobra.Command{
	Use:   "clear-emergency-stop",
	Short: "Clear the emergency stop",
	Long: `Clear the emergency stop. The stop itself turned hands-free mode off;
it only comes back if "vocal activate" was run while stopped.

Asks for confirmation on a terminal unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: runClearEmergencyStop,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show hands-free state",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(deactivateCmd)
	rootCmd.AddCommand(emergencyStopCmd)
	rootCmd.AddCommand(clearEmergencyStopCmd)
	rootCmd.AddCommand(statusCmd)

	clearEmergencyStopCmd.Flags().BoolVarP(
		&assumeYes,
		"yes",
		"y",
		false,
		"Do not ask for confirmation",
	)
}

func runActivate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.ctrl.Activate(); err != nil {
		return errors.Wrap(err, "failed to activate hands-free mode")
	}

	active, err := a.ctrl.HandsFreeActive()
	if err != nil {
		return errors.Wrap(err, "failed to read hands-free state")
	}

	if !active {
		fmt.Fprintln(cmd.OutOrStdout(), "Emergency stop is engaged; hands-free mode takes effect once it is cleared.")

		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Hands-free mode activated.")

	return nil
}

func runDeactivate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.ctrl.Deactivate(); err != nil {
		return errors.Wrap(err, "failed to deactivate hands-free mode")
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Hands-free mode deactivated.")

	return nil
}

func runEmergencyStop(cmd *cobra.Command, _ []string) error {
	// A broken config must not prevent stopping.
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.ctrl.EmergencyStop(); err != nil {
		return errors.Wrap(err, "failed to engage emergency stop")
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Emergency stop engaged.")

	return nil
}

func runClearEmergencyStop(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	stopped, err := a.store.EmergencyStopActive()
	if err != nil {
		return errors.Wrap(err, "failed to read emergency stop")
	}

	if !stopped {
		fmt.Fprintln(cmd.OutOrStdout(), "Emergency stop is not engaged.")

		return nil
	}

	if !assumeYes && tui.IsTerminal() {
		confirmed, err := tui.New().Confirm(
			"Clear the emergency stop?",
			"Hands-free automation resumes only if it was activated while stopped.",
			false,
		)
		if err != nil {
			return err
		}

		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")

			return nil
		}
	}

	if err := a.ctrl.ClearEmergencyStop(); err != nil {
		return errors.Wrap(err, "failed to clear emergency stop")
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Emergency stop cleared.")

	if active, err := a.ctrl.HandsFreeActive(); err == nil && active {
		fmt.Fprintln(cmd.OutOrStdout(), "Hands-free mode is active.")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), `Hands-free mode is off; run "vocal activate" to turn it on.`)
	}

	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	snap, err := a.store.Snapshot()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	count, err := a.ctrl.CycleCount()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}

	tmux := a.cfg.GetInject().GetTmuxBinary()

	fmt.Fprint(cmd.OutOrStdout(), report.RenderStatus(&report.Status{
		Snapshot:        snap,
		CycleCount:      count,
		MaxCycles:       controller.MaxCycles,
		WindowRemaining: a.ctrl.CycleWindowRemaining(),
		Session:         a.sessions.LoadOrNil(),
		StateDir:        a.store.Dir(),
		Now:             time.Now(),

		InjectorBinary:    tmux,
		InjectorAvailable: exec.NewToolChecker().IsAvailable(tmux),
	}, theme()))

	return nil
}
