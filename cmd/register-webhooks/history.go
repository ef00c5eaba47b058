package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <run-id>",
	Short: "Show what a sync run did",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	db, err := readAudit(e.cfg)
	if err != nil {
		return err
	}
	if db == nil {
		return errors.New("audit trail is disabled (AUDIT_DATABASE_PATH is empty)")
	}
	defer db.Close()

	entries, err := db.ListByRun(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no entries recorded for run %s", args[0])
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tOPERATION\tWEBHOOK ID\tDRY RUN\tERROR")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n", entry.Name, entry.Operation, entry.WebhookID, entry.DryRun, entry.Error)
	}
	return w.Flush()
}
