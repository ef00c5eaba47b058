package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mixelka/chatadapter/internal/callback"
	"github.com/mixelka/chatadapter/internal/formatter"
	"github.com/mixelka/chatadapter/internal/logging"
	"github.com/mixelka/chatadapter/internal/telegram"
	"github.com/mixelka/chatadapter/pkg/models"
)

type handlers struct {
	adapter   *telegram.Adapter
	formatter *formatter.TelegramFormatter
	previews  *previewer
	logger    logging.Logger
}

func (h *handlers) onMessage(ctx context.Context, event telegram.MessageEvent) {
	command, _, _ := strings.Cut(event.Text, " ")
	switch command {
	case "/start", "/help":
		card := helpCard()
		if _, err := h.adapter.PostCard(ctx, event.ThreadID, card); err != nil {
			h.logger.Error("failed to post help card", "thread_id", event.ThreadID, "error", err)
			return
		}
		if text, err := h.formatter.FallbackText(card); err == nil {
			h.logger.Debug("posted help card", "thread_id", event.ThreadID, "fallback", text)
		}
	case "/preview":
		text, err := h.previews.Render(helpCard())
		if err != nil {
			h.logger.Error("failed to render preview", "error", err)
			h.reply(ctx, event.ThreadID, formatter.EscapeHTML(err.Error()))
			return
		}
		h.reply(ctx, event.ThreadID, text)
	default:
		if event.IsDM {
			h.reply(ctx, event.ThreadID, "Send /help to see what I can do.")
		}
	}
}

func (h *handlers) onAction(ctx context.Context, event telegram.ActionEvent) string {
	h.logger.Info("action received", "action", event.ActionID, "value", event.Value, "user", event.Username)

	switch event.ActionID {
	case "ping":
		h.reply(ctx, event.ThreadID, pongText(event.Value))
		return "pong"
	case "dismiss":
		if event.ThreadID != "" && event.MessageID != 0 {
			if err := h.adapter.ClearActions(ctx, event.ThreadID, event.MessageID); err != nil {
				h.logger.Warn("failed to clear actions", "message_id", event.MessageID, "error", err)
			}
		}
		return "Dismissed"
	default:
		return "Unknown action"
	}
}

func (h *handlers) reply(ctx context.Context, threadID, text string) {
	if threadID == "" {
		return
	}
	if _, err := h.adapter.PostText(ctx, threadID, text); err != nil {
		h.logger.Error("failed to send message", "thread_id", threadID, "error", err)
	}
}

// pongText is the reply to a ping. The value comes from callback data, which
// anyone can forge, so it is escaped for HTML parse mode.
func pongText(value string) string {
	return fmt.Sprintf("pong (%s)", formatter.EscapeHTML(value))
}

// previewer shows how a card would be sent to Slack and Discord
type previewer struct {
	slack   *formatter.SlackRenderer
	discord *formatter.DiscordRenderer
}

func newPreviewer(discordCodec callback.Codec) *previewer {
	return &previewer{
		slack:   formatter.NewSlackRenderer(),
		discord: formatter.NewDiscordRenderer(discordCodec),
	}
}

// Render returns the Slack blocks and Discord components of card as
// Telegram HTML
func (p *previewer) Render(card models.Card) (string, error) {
	blocks, err := p.slack.Render(card)
	if err != nil {
		return "", fmt.Errorf("slack: %w", err)
	}
	components, err := p.discord.Render(card)
	if err != nil {
		return "", fmt.Errorf("discord: %w", err)
	}

	slackJSON, err := json.Marshal(blocks)
	if err != nil {
		return "", fmt.Errorf("failed to marshal slack blocks: %w", err)
	}
	discordJSON, err := json.Marshal(components)
	if err != nil {
		return "", fmt.Errorf("failed to marshal discord components: %w", err)
	}

	return fmt.Sprintf("<b>Slack</b>\n<pre>%s</pre>\n\n<b>Discord</b>\n<pre>%s</pre>",
		formatter.EscapeHTML(string(slackJSON)),
		formatter.EscapeHTML(string(discordJSON)),
	), nil
}

func helpCard() models.Card {
	return models.Card{
		Title: "Chat adapter demo",
		Children: []models.Node{
			models.Text{Content: "Buttons below round-trip through the callback codec."},
			models.Actions{Children: []models.Node{
				models.Button{ID: "ping", Label: "Ping", Value: "1", Style: models.ButtonPrimary},
				models.Button{ID: "dismiss", Label: "Dismiss", Style: models.ButtonDanger},
			}},
			models.Actions{Children: []models.Node{
				models.LinkButton{Label: "Bot API docs", URL: "https://core.telegram.org/bots/api"},
			}},
		},
	}
}
