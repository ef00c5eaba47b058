// Command register-webhooks keeps the bot's webhook registrations in line
// with a YAML manifest.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mixelka/chatadapter/internal/config"
	"github.com/mixelka/chatadapter/internal/database"
	"github.com/mixelka/chatadapter/internal/logging"
	"github.com/mixelka/chatadapter/internal/webhooks"
)

var rootCmd = &cobra.Command{
	Use:           "register-webhooks",
	Short:         "Register and reconcile chat platform webhooks",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(secretCmd)
}

// env is what every registry subcommand needs
type env struct {
	cfg    *config.RegistrarConfig
	logger logging.Logger
	client *webhooks.Client
}

func loadEnv() (*env, error) {
	cfg, err := config.LoadRegistrar()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(cfg.LoggerOptions())

	client := webhooks.NewClient(webhooks.Config{
		BaseURL:  cfg.APIURL,
		Token:    cfg.APIToken,
		Platform: cfg.Platform,
		PageSize: cfg.PageSize,
		Timeout:  cfg.HTTPTimeout,
		Logger:   logger,
	})
	return &env{cfg: cfg, logger: logger, client: client}, nil
}

// openAudit opens the audit database for recording, or returns nil when it
// is disabled
func openAudit(cmd *cobra.Command, cfg *config.RegistrarConfig) (*database.DB, error) {
	if cfg.AuditDatabasePath == "" {
		return nil, nil
	}
	return database.Open(cmd.Context(), cfg.AuditDatabasePath)
}

// readAudit opens an existing audit database read-only, or returns nil when
// auditing is disabled
func readAudit(cfg *config.RegistrarConfig) (*database.DB, error) {
	if cfg.AuditDatabasePath == "" {
		return nil, nil
	}
	return database.OpenReadOnly(cfg.AuditDatabasePath)
}
