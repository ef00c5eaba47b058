package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mixelka/chatadapter/internal/database"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List webhooks registered with the platform",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	records, err := e.client.ListWebhooks(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list webhooks: %w", err)
	}

	db, err := readAudit(e.cfg)
	if err != nil && !errors.Is(err, database.ErrNoAuditTrail) {
		e.logger.Warn("audit trail unavailable", "error", err)
	}
	if db != nil {
		defer db.Close()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tRESOURCE\tEVENT\tSTATUS\tTARGET\tLAST SYNC")
	for _, r := range records {
		last := "-"
		if db != nil {
			entry, err := db.LastEntry(cmd.Context(), r.Name)
			switch {
			case err == nil:
				last = fmt.Sprintf("%s %s", entry.Operation, entry.CreatedAt.Format("2006-01-02 15:04"))
			case !errors.Is(err, database.ErrNotFound):
				e.logger.Warn("failed to read audit trail", "name", r.Name, "error", err)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Resource, r.Event, r.Status, r.TargetURL, last)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d webhook(s)\n", len(records))
	return nil
}
