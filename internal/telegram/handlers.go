package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// handleCallback decodes inline button presses and hands them to the action
// handler. The query is always answered so the client stops its spinner.
func (a *Adapter) handleCallback(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	query := update.CallbackQuery
	if query == nil {
		return
	}

	// Telegram omits data for game buttons; an empty string never comes from
	// a keyboard we rendered.
	var data *string
	if query.Data != "" {
		data = &query.Data
	}
	action := a.callbacks.Decode(data)

	event := ActionEvent{
		ActionID:        action.ID,
		Value:           action.Value,
		UserID:          query.From.ID,
		Username:        query.From.Username,
		CallbackQueryID: query.ID,
	}
	if chat, messageID, topicID, ok := callbackOrigin(query); ok {
		event.MessageID = messageID
		threadID, err := a.ThreadIDFor(chat, topicID)
		if err != nil {
			a.logger.Warn("failed to encode thread id", "chat_id", chat.ID, "error", err)
		}
		event.ThreadID = threadID
	}

	a.logger.Debug("callback received", "action", event.ActionID, "thread_id", event.ThreadID, "user_id", event.UserID)

	var reply string
	if a.onAction != nil {
		reply = a.onAction(ctx, event)
	}
	if err := a.answerCallback(ctx, query.ID, reply, false); err != nil {
		a.logger.Warn("failed to answer callback", "error", err)
	}
}

// handleMessage forwards text messages to the message handler
func (a *Adapter) handleMessage(ctx context.Context, tgBot *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.Text == "" || a.onMessage == nil {
		return
	}

	threadID, err := a.ThreadIDFor(msg.Chat, msg.MessageThreadID)
	if err != nil {
		a.logger.Warn("failed to encode thread id", "chat_id", msg.Chat.ID, "error", err)
		return
	}

	event := MessageEvent{
		ThreadID:  threadID,
		MessageID: msg.ID,
		Text:      msg.Text,
		IsDM:      a.IsDM(threadID),
	}
	if msg.From != nil {
		event.UserID = msg.From.ID
		event.Username = msg.From.Username
	}
	a.onMessage(ctx, event)
}

// callbackOrigin finds the chat and message a pressed button belongs to.
// Old messages arrive as InaccessibleMessage and carry no topic.
func callbackOrigin(query *models.CallbackQuery) (models.Chat, int, int, bool) {
	switch {
	case query.Message.Message != nil:
		m := query.Message.Message
		return m.Chat, m.ID, m.MessageThreadID, true
	case query.Message.InaccessibleMessage != nil:
		m := query.Message.InaccessibleMessage
		return m.Chat, m.MessageID, 0, true
	default:
		return models.Chat{}, 0, 0, false
	}
}
