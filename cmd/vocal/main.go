// Package main provides the CLI entry point for vocal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	// ExitCodeOK is returned for every handled event, including blocks;
	// the decision itself travels on stdout.
	ExitCodeOK = 0

	// ExitCodeError is returned for malformed input and failed commands.
	ExitCodeError = 1

	// ExitCodeCrash indicates an unexpected panic/crash occurred.
	ExitCodeCrash = 3
)

var (
	debugMode   bool
	traceMode   bool
	configPath  string
	stateDir    string
	noColorFlag bool
)

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n", r)

			exitCode = ExitCodeCrash
		}
	}()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)

		return ExitCodeError
	}

	return ExitCodeOK
}

var rootCmd = &cobra.Command{
	Use:   "vocal",
	Short: "Hands-free mode safety engine for Claude Code",
	Long: `vocal decides which Claude Code tool calls may run unattended while
hands-free (voice) mode is active, and keeps the state that drives the
voice capture loop: the hands-free flag, the emergency stop and the
cycle trigger.

Claude Code runs "vocal hook <event>" for every hook event once the hooks
are registered with "vocal setup-hooks".`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&traceMode, "trace", false, "Enable trace logging")
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"Path to the global configuration file (default: $XDG_CONFIG_HOME/vocal/config.toml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&stateDir,
		"state-dir",
		"",
		"Directory holding the state markers (default: $XDG_STATE_HOME/vocal)",
	)
	rootCmd.PersistentFlags().BoolVar(
		&noColorFlag,
		"no-color",
		false,
		"Disable colored output",
	)
}
