package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/vocal-dev/vocal/internal/fsutil"
	"github.com/vocal-dev/vocal/internal/report"
	"github.com/vocal-dev/vocal/internal/safety"
	"github.com/vocal-dev/vocal/internal/schema"
)

var (
	schemaOutput  string
	schemaCompact bool
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Debug vocal configuration",
}

var debugSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate JSON Schema for configuration",
	Long: `Generate a JSON Schema (Draft 2020-12) for the vocal configuration format.

Examples:
  vocal debug schema                       # Print to stdout
  vocal debug schema --output schema.json  # Write to file
  vocal debug schema --compact             # Compact output`,
	Args: cobra.NoArgs,
	RunE: runDebugSchema,
}

var debugRulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the shell command and path rules",
	Long: `Print the command patterns and path globs applied in hands-free mode.

Built-in rules always apply. Rules from the configuration can only block
more, so they are listed with source "config".`,
	Args: cobra.NoArgs,
	RunE: runDebugRules,
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugSchemaCmd)
	debugCmd.AddCommand(debugRulesCmd)

	debugSchemaCmd.Flags().StringVarP(
		&schemaOutput,
		"output", "o",
		"",
		"Write schema to file instead of stdout",
	)

	debugSchemaCmd.Flags().BoolVar(
		&schemaCompact,
		"compact",
		false,
		"Output compact JSON without indentation",
	)
}

func runDebugSchema(cmd *cobra.Command, _ []string) error {
	data, err := schema.GenerateJSON(!schemaCompact)
	if err != nil {
		return errors.Wrap(err, "generating schema")
	}

	if schemaOutput != "" {
		_, statErr := os.Stat(schemaOutput)

		if writeErr := fsutil.AtomicWriteFile(schemaOutput, data, statErr == nil); writeErr != nil {
			return errors.Wrap(writeErr, "writing schema file")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Schema written to %s\n", schemaOutput)

		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), string(data))

	return nil
}

func runDebugRules(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	policy := cfg.GetPolicy()

	var rows [][]string

	for _, pattern := range safety.DangerousCommandPatterns() {
		rows = append(rows, []string{"block", "command contains", pattern, "built-in"})
	}

	for _, pattern := range policy.DangerousPatterns {
		rows = append(rows, []string{"block", "command contains", pattern, "config"})
	}

	for _, glob := range policy.BlockedPaths {
		rows = append(rows, []string{"block", "path matches", glob, "config"})
	}

	for _, prefix := range safety.SafeCommandPrefixes() {
		rows = append(rows, []string{"allow", "command starts with", prefix, "built-in"})
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.RenderTable([]string{"Decision", "Match", "Pattern", "Source"}, rows, theme()))

	return nil
}
