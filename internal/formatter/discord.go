package formatter

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/mixelka/chatadapter/internal/callback"
	"github.com/mixelka/chatadapter/pkg/chaterr"
	"github.com/mixelka/chatadapter/pkg/models"
)

// Discord message component limits
const (
	discordButtonsPerRow = 5
	discordRowsPerMsg    = 5
	discordLabelLimit    = 80
)

// DiscordRenderer turns the action controls of a card into Discord action
// rows. Button payloads travel in custom_id as callback tokens.
type DiscordRenderer struct {
	codec callback.Codec
}

// NewDiscordRenderer creates a renderer encoding custom ids with codec
func NewDiscordRenderer(codec callback.Codec) *DiscordRenderer {
	return &DiscordRenderer{codec: codec}
}

// Render builds one action row per Actions container, in document order.
// Selects are skipped: Discord requires a select to own its row. Returns nil
// when the card has no renderable row. A row over five buttons or a message
// over five rows is rejected rather than reshaped.
func (r *DiscordRenderer) Render(card models.Card) ([]discordgo.MessageComponent, error) {
	var rows []discordgo.MessageComponent

	err := eachActions(card, func(actions models.Actions) error {
		var buttons []discordgo.MessageComponent
		for _, child := range actions.Children {
			switch c := control(child).(type) {
			case models.Button:
				customID, err := r.codec.Encode(c.ID, c.Value)
				if err != nil {
					return fmt.Errorf("button %q: %w", c.ID, err)
				}
				buttons = append(buttons, discordgo.Button{
					Label:    discordLabel(c.Label),
					Style:    discordStyle(c.Style),
					CustomID: customID,
				})
			case models.LinkButton:
				buttons = append(buttons, discordgo.Button{
					Label: discordLabel(c.Label),
					Style: discordgo.LinkButton,
					URL:   c.URL,
				})
			}
		}
		if len(buttons) == 0 {
			return nil
		}
		if len(buttons) > discordButtonsPerRow {
			return chaterr.Validation(r.codec.Platform, "action row has %d buttons, limit is %d", len(buttons), discordButtonsPerRow)
		}
		rows = append(rows, discordgo.ActionsRow{Components: buttons})
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(rows) > discordRowsPerMsg {
		return nil, chaterr.Validation(r.codec.Platform, "card has %d action rows, limit is %d", len(rows), discordRowsPerMsg)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows, nil
}

func discordStyle(style models.ButtonStyle) discordgo.ButtonStyle {
	switch style {
	case models.ButtonPrimary:
		return discordgo.PrimaryButton
	case models.ButtonDanger:
		return discordgo.DangerButton
	default:
		return discordgo.SecondaryButton
	}
}

func discordLabel(label string) string {
	runes := []rune(label)
	if len(runes) <= discordLabelLimit {
		return label
	}
	return string(runes[:discordLabelLimit-1]) + "…"
}
