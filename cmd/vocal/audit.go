package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vocal-dev/vocal/internal/report"
)

const defaultAuditLimit = 20

var auditLimit int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent hook decisions",
	Long: `Show the most recent entries of the audit trail, oldest first.

Examples:
  vocal audit             # Last 20 entries
  vocal audit --limit 50  # Last 50 entries
  vocal audit --limit 0   # Everything`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().IntVarP(&auditLimit, "limit", "n", defaultAuditLimit, "Number of entries to show")
}

func runAudit(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, false)
	if err != nil {
		return err
	}
	defer a.close()

	if !a.auditor.Enabled() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Audit trail is disabled (audit.enabled = false).")
	}

	entries, err := a.auditor.Read(auditLimit)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.RenderAudit(entries, time.Now(), report.TerminalWidth(), theme()))

	return nil
}
