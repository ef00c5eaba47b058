package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/mixelka/chatadapter/internal/formatter"
	"github.com/mixelka/chatadapter/pkg/chaterr"
	appmodels "github.com/mixelka/chatadapter/pkg/models"
)

// PostCard sends card to the thread and returns the new message id. Cards
// without action controls are sent without a keyboard.
func (a *Adapter) PostCard(ctx context.Context, threadID string, card appmodels.Card) (int, error) {
	addr, err := a.resolve(threadID)
	if err != nil {
		return 0, err
	}

	text := a.formatter.FormatCard(card)
	if text == "" {
		return 0, chaterr.Validation(platform, "card has no title or text to send")
	}

	keyboard, err := a.keyboards.Render(card)
	if err != nil {
		return 0, err
	}

	msg, err := a.sendMessage(ctx, addr, text, keyboard)
	if err != nil {
		return 0, err
	}
	a.logger.Debug("posted card", "thread_id", threadID, "message_id", msg.ID, "rows", rowCount(keyboard))
	return msg.ID, nil
}

// PostText sends a plain HTML message to the thread
func (a *Adapter) PostText(ctx context.Context, threadID, text string) (int, error) {
	addr, err := a.resolve(threadID)
	if err != nil {
		return 0, err
	}
	msg, err := a.sendMessage(ctx, addr, text, nil)
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// ClearActions removes the keyboard from a message sent earlier
func (a *Adapter) ClearActions(ctx context.Context, threadID string, messageID int) error {
	addr, err := a.resolve(threadID)
	if err != nil {
		return err
	}
	return a.editMessageReplyMarkup(ctx, addr.chatID, messageID, formatter.EmptyKeyboard())
}

// sendMessage sends a message to a chat or topic. A nil keyboard sends no
// reply markup at all.
func (a *Adapter) sendMessage(ctx context.Context, addr address, text string, keyboard *models.InlineKeyboardMarkup) (*models.Message, error) {
	params := &bot.SendMessageParams{
		ChatID:    addr.chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}

	if addr.topicID != 0 {
		params.MessageThreadID = addr.topicID
	}
	if keyboard != nil {
		params.ReplyMarkup = keyboard
	}

	msg, err := a.bot.SendMessage(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}
	return msg, nil
}

// editMessageReplyMarkup edits the reply markup of a message
func (a *Adapter) editMessageReplyMarkup(ctx context.Context, chatID int64, msgID int, keyboard *models.InlineKeyboardMarkup) error {
	_, err := a.bot.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
		ChatID:      chatID,
		MessageID:   msgID,
		ReplyMarkup: keyboard,
	})
	return mapError(err)
}

// answerCallback answers a callback query
func (a *Adapter) answerCallback(ctx context.Context, callbackID, text string, showAlert bool) error {
	_, err := a.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       showAlert,
	})
	return mapError(err)
}

func rowCount(keyboard *models.InlineKeyboardMarkup) int {
	if keyboard == nil {
		return 0
	}
	return len(keyboard.InlineKeyboard)
}
