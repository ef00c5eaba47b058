// Package telegram adapts the card, callback and thread codecs to the
// Telegram Bot API.
package telegram

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/mixelka/chatadapter/internal/callback"
	"github.com/mixelka/chatadapter/internal/formatter"
	"github.com/mixelka/chatadapter/internal/logging"
	"github.com/mixelka/chatadapter/internal/threadid"
)

// ActionEvent is a button press decoded from a callback query
type ActionEvent struct {
	ThreadID        string
	MessageID       int
	ActionID        string
	Value           string
	UserID          int64
	Username        string
	CallbackQueryID string
}

// MessageEvent is an incoming text message
type MessageEvent struct {
	ThreadID  string
	MessageID int
	Text      string
	UserID    int64
	Username  string
	IsDM      bool
}

// ActionHandler handles a button press. The returned text, if any, is shown
// to the user as a notification.
type ActionHandler func(ctx context.Context, event ActionEvent) string

// MessageHandler handles an incoming message
type MessageHandler func(ctx context.Context, event MessageEvent)

// Adapter sends cards to Telegram chats and turns updates into events
type Adapter struct {
	bot       *bot.Bot
	keyboards *formatter.KeyboardRenderer
	formatter *formatter.TelegramFormatter
	callbacks callback.Codec
	threads   threadid.Codec
	logger    logging.Logger

	onAction  ActionHandler
	onMessage MessageHandler
}

// Deps dependencies for creating an adapter
type Deps struct {
	Token     string
	Codec     callback.Codec // defaults to callback.Telegram()
	Formatter *formatter.TelegramFormatter
	Logger    logging.Logger

	// Extra bot options, e.g. bot.WithServerURL in tests
	Options []bot.Option
}

// NewAdapter creates a new Telegram adapter
func NewAdapter(deps Deps) (*Adapter, error) {
	a := &Adapter{
		callbacks: deps.Codec,
		formatter: deps.Formatter,
		threads:   threadid.Telegram(),
		logger:    deps.Logger,
	}
	if a.callbacks.Limit == 0 {
		a.callbacks = callback.Telegram()
	}
	if a.formatter == nil {
		a.formatter = formatter.NewTelegramFormatter()
	}
	if a.logger == nil {
		a.logger = logging.Nop()
	}
	a.logger = a.logger.Child("telegram")
	a.keyboards = formatter.NewKeyboardRenderer(a.callbacks)

	opts := append([]bot.Option{
		bot.WithDefaultHandler(a.defaultHandler),
	}, deps.Options...)

	tgBot, err := bot.New(deps.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", mapError(err))
	}

	a.bot = tgBot
	a.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, a.handleCallback)

	return a, nil
}

// OnAction sets the button press handler
func (a *Adapter) OnAction(h ActionHandler) {
	a.onAction = h
}

// OnMessage sets the message handler
func (a *Adapter) OnMessage(h MessageHandler) {
	a.onMessage = h
}

// Start polls for updates until ctx is cancelled
func (a *Adapter) Start(ctx context.Context) {
	a.logger.Info("starting telegram bot")
	a.bot.Start(ctx)
}

// defaultHandler receives every update no registered handler matched
func (a *Adapter) defaultHandler(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	switch {
	case update.CallbackQuery != nil:
		a.handleCallback(ctx, tgBot, update)
	case update.Message != nil:
		a.handleMessage(ctx, tgBot, update)
	}
}
