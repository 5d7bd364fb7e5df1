package main

import (
	"fmt"

	"github.com/spf13/cobra"

	internalconfig "github.com/vocal-dev/vocal/internal/config"
	"github.com/vocal-dev/vocal/internal/xdg"
)

var forceFlag bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage vocal configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with the defaults",
	Long: `Write the default configuration to the global config file
($XDG_CONFIG_HOME/vocal/config.toml, or --config).

Use --force to overwrite an existing file; the previous file is kept as a
backup.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration files vocal reads",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().BoolVarP(
		&forceFlag,
		"force",
		"f",
		false,
		"Overwrite existing configuration file",
	)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	writer := internalconfig.NewWriter()

	path := writer.GlobalConfigPath()

	var err error
	if configPath != "" {
		path = xdg.ExpandPathSilent(configPath)
		err = writer.WriteFile(path, internalconfig.DefaultConfig(), forceFlag)
	} else {
		err = writer.WriteGlobal(internalconfig.DefaultConfig(), forceFlag)
	}

	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to: %s\n", path)

	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	loader, err := internalconfig.NewKoanfLoader()
	if err != nil {
		return err
	}

	global := loader.GlobalConfigPath()
	if configPath != "" {
		global = xdg.ExpandPathSilent(configPath)
	}

	project := loader.FindProjectConfigPath()
	if project == "" {
		project = "(none)"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "global:  %s\n", global)
	fmt.Fprintf(out, "project: %s\n", project)

	return nil
}
