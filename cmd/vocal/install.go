package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/vocal-dev/vocal/internal/installer"
	"github.com/vocal-dev/vocal/internal/tui"
	"github.com/vocal-dev/vocal/internal/xdg"
)

const binaryName = "vocal"

var (
	installGlobal  bool
	installProject bool
	installBinary  string
)

var setupHooksCmd = &cobra.Command{
	Use:   "setup-hooks",
	Short: "Register vocal hooks in Claude Code settings",
	Long: `Register "vocal hook <event>" for the PreToolUse, PostToolUse, Stop and
UserPromptSubmit events in a Claude Code settings.json.

Without --global or --project the target is the project settings file when
the working directory looks like a project, otherwise the user settings
file. On a terminal you are asked to confirm the choice.

Existing settings are preserved and backed up; running it twice is safe.`,
	Args: cobra.NoArgs,
	RunE: runSetupHooks,
}

var uninstallHooksCmd = &cobra.Command{
	Use:   "uninstall-hooks",
	Short: "Remove vocal hooks from Claude Code settings",
	Long: `Remove every "vocal hook" command from a Claude Code settings.json.
Other hooks are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runUninstallHooks,
}

func init() {
	rootCmd.AddCommand(setupHooksCmd)
	rootCmd.AddCommand(uninstallHooksCmd)

	for _, cmd := range []*cobra.Command{setupHooksCmd, uninstallHooksCmd} {
		cmd.Flags().BoolVarP(
			&installGlobal,
			"global",
			"g",
			false,
			"Use ~/.claude/settings.json",
		)
		cmd.Flags().BoolVarP(
			&installProject,
			"project",
			"p",
			false,
			"Use .claude/settings.json in the working directory",
		)
		cmd.MarkFlagsMutuallyExclusive("global", "project")
	}

	setupHooksCmd.Flags().StringVar(
		&installBinary,
		"binary",
		"",
		"Command written into settings (default: vocal from PATH, else this executable)",
	)
}

func runSetupHooks(cmd *cobra.Command, _ []string) error {
	target, err := resolveInstallTarget(true)
	if err != nil {
		return err
	}

	binary, err := resolveBinary()
	if err != nil {
		return err
	}

	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	result, err := installer.New(binary, a.log).Install(target.Path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if !result.Changed() {
		fmt.Fprintf(out, "vocal hooks are already registered in %s\n", result.Path)

		return nil
	}

	fmt.Fprintf(out, "Registered vocal hooks in %s (%s settings)\n", result.Path, target.Scope)
	fmt.Fprintf(out, "  added: %s\n", strings.Join(result.Added, ", "))

	if len(result.Present) > 0 {
		fmt.Fprintf(out, "  already present: %s\n", strings.Join(result.Present, ", "))
	}

	return nil
}

func runUninstallHooks(cmd *cobra.Command, _ []string) error {
	target, err := resolveInstallTarget(false)
	if err != nil {
		return err
	}

	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	defer a.close()

	result, err := installer.New(binaryName, a.log).Uninstall(target.Path)
	if err != nil {
		return err
	}

	if result.Removed == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No vocal hooks found in %s\n", result.Path)

		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d vocal hook(s) from %s\n", result.Removed, result.Path)

	return nil
}

// resolveInstallTarget maps the flags to a settings file. With neither
// flag and a terminal, the auto-detected choice is offered as the default
// of a select prompt when prompt is set.
func resolveInstallTarget(prompt bool) (installer.Target, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return installer.Target{}, errors.Wrap(err, "failed to get working directory")
	}

	paths := xdg.DefaultResolver()

	switch {
	case installGlobal:
		return installer.ResolveTarget(installer.ScopeUser, workDir, paths), nil
	case installProject:
		return installer.ResolveTarget(installer.ScopeProject, workDir, paths), nil
	}

	auto := installer.ResolveTarget(installer.ScopeAuto, workDir, paths)

	if !prompt || !tui.IsTerminal() {
		return auto, nil
	}

	choice, err := tui.New().Select(
		"Where should vocal hooks be registered?",
		[]tui.Option{
			{Label: "User (~/.claude/settings.json)", Value: installer.ScopeUser.String()},
			{Label: "Project (.claude/settings.json)", Value: installer.ScopeProject.String()},
		},
		auto.Scope.String(),
	)
	if err != nil {
		return installer.Target{}, err
	}

	if choice == installer.ScopeUser.String() {
		return installer.ResolveTarget(installer.ScopeUser, workDir, paths), nil
	}

	return installer.ResolveTarget(installer.ScopeProject, workDir, paths), nil
}

func resolveBinary() (string, error) {
	if installBinary != "" {
		return installBinary, nil
	}

	if path, err := exec.LookPath(binaryName); err == nil {
		return path, nil
	}

	path, err := os.Executable()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate the vocal executable")
	}

	return path, nil
}
