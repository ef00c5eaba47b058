package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mixelka/chatadapter/internal/webhooks"
)

var syncDryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Create or update webhooks to match the manifest",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "report what would change without calling the registry's write endpoints")
}

func runSync(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	desired, err := webhooks.LoadManifest(e.cfg.Manifest, e.cfg.TargetURL)
	if err != nil {
		return err
	}

	opts := webhooks.Options{
		Platform: e.cfg.Platform,
		Secret:   e.cfg.Secret,
		DryRun:   syncDryRun,
		Logger:   e.logger,
	}
	if !syncDryRun && e.cfg.Secret == "" {
		e.logger.Warn("WEBHOOK_SECRET is empty, deliveries will not be signed")
	}

	db, err := openAudit(cmd, e.cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		opts.Recorder = db
	}

	report, err := webhooks.NewRegistrar(e.client, opts).Reconcile(cmd.Context(), desired)
	if err != nil {
		return err
	}

	failed := len(report.Failed())
	e.logger.Info("reconcile finished",
		"run_id", report.RunID,
		"dry_run", report.DryRun,
		"total", len(report.Outcomes),
		"failed", failed,
	)
	if err := report.Err(); err != nil {
		return fmt.Errorf("%d of %d webhooks failed: %w", failed, len(report.Outcomes), err)
	}
	return nil
}
