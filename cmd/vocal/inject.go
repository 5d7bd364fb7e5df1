package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/vocal-dev/vocal/internal/exec"
	"github.com/vocal-dev/vocal/internal/inject"
)

var injectCmd = &cobra.Command{
	Use:   "inject [text...]",
	Short: "Type the next prompt into the recorded session",
	Long: `Type text into the terminal session recorded by the last stop event
and press Enter. Reads the text from stdin when no arguments are given.

Refuses to run while hands-free mode is inactive.`,
	RunE: runInject,
}

func init() {
	rootCmd.AddCommand(injectCmd)
}

func runInject(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	text := strings.Join(args, " ")

	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return errors.Wrap(err, "failed to read text from stdin")
		}

		text = string(data)
	}

	injectCfg := a.cfg.GetInject()
	runner := exec.NewCommandRunner(injectCfg.GetTimeout())
	injector := inject.NewTmuxInjector(runner, injectCfg.GetTmuxBinary())

	svc := inject.NewService(a.ctrl, a.sessions, injector, a.log)
	if err := svc.Deliver(cmd.Context(), text); err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Prompt injected.")

	return nil
}
