package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mixelka/chatadapter/internal/config"
	"github.com/mixelka/chatadapter/internal/formatter"
	"github.com/mixelka/chatadapter/internal/logging"
	"github.com/mixelka/chatadapter/internal/telegram"
)

func main() {
	// Load configuration
	cfg, err := config.LoadBot()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := logging.New(cfg.LoggerOptions())
	logger.Info("starting chat adapter bot")

	tgFormatter := formatter.NewTelegramFormatter()

	adapter, err := telegram.NewAdapter(telegram.Deps{
		Token:     cfg.TelegramToken,
		Codec:     cfg.TelegramCodec(),
		Formatter: tgFormatter,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	h := &handlers{
		adapter:   adapter,
		formatter: tgFormatter,
		previews:  newPreviewer(cfg.DiscordCodec()),
		logger:    logger.Child("handlers"),
	}
	adapter.OnMessage(h.onMessage)
	adapter.OnAction(h.onAction)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		logger.Info("received shutdown signal", "signal", sig)
		logger.Info("shutting down...")
		cancel()
	}()

	// Start bot
	logger.Info("bot is running, press Ctrl+C to stop")
	adapter.Start(ctx)

	logger.Info("bot stopped")
}
