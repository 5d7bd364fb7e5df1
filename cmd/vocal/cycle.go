package main

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var cycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Inspect and drive the recording cycle trigger",
	Long: `Inspect and drive the recording cycle trigger.

Subcommands:
  trigger  Arm the trigger
  consume  Take the trigger if one is pending
  count    Print the current cycle count`,
}

var cycleTriggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Arm the cycle trigger",
	Args:  cobra.NoArgs,
	RunE:  runCycleTrigger,
}

var cycleConsumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Take the cycle trigger if one is pending",
	Long: `Take the cycle trigger if one is pending. Prints "consumed" when a
trigger was taken and "none" otherwise. Each trigger is consumed once.`,
	Args: cobra.NoArgs,
	RunE: runCycleConsume,
}

var cycleCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Print the current cycle count",
	Args:  cobra.NoArgs,
	RunE:  runCycleCount,
}

func init() {
	rootCmd.AddCommand(cycleCmd)
	cycleCmd.AddCommand(cycleTriggerCmd)
	cycleCmd.AddCommand(cycleConsumeCmd)
	cycleCmd.AddCommand(cycleCountCmd)
}

func runCycleTrigger(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.ctrl.TriggerCycle(); err != nil {
		return errors.Wrap(err, "failed to arm cycle trigger")
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Cycle trigger armed.")

	return nil
}

func runCycleConsume(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	consumed, err := a.ctrl.ConsumeCycleTrigger()
	if err != nil {
		return err
	}

	if consumed {
		fmt.Fprintln(cmd.OutOrStdout(), "consumed")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "none")
	}

	return nil
}

func runCycleCount(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	count, err := a.ctrl.CycleCount()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), count)

	return nil
}
