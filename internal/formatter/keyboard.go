package formatter

import (
	"fmt"

	"github.com/go-telegram/bot/models"

	"github.com/mixelka/chatadapter/internal/callback"
	appmodels "github.com/mixelka/chatadapter/pkg/models"
)

// KeyboardRenderer turns the action controls of a card into a Telegram
// inline keyboard
type KeyboardRenderer struct {
	codec callback.Codec
}

// NewKeyboardRenderer creates a renderer encoding button payloads with codec
func NewKeyboardRenderer(codec callback.Codec) *KeyboardRenderer {
	return &KeyboardRenderer{codec: codec}
}

// Render builds one keyboard row per Actions container. Buttons carry a
// callback token, link buttons their URL; selects and other controls have no
// inline keyboard form and are skipped. A card without any renderable row
// yields a nil keyboard. The only error is a callback token over the limit.
func (r *KeyboardRenderer) Render(card appmodels.Card) (*models.InlineKeyboardMarkup, error) {
	var rows [][]models.InlineKeyboardButton

	err := eachActions(card, func(actions appmodels.Actions) error {
		var row []models.InlineKeyboardButton
		for _, child := range actions.Children {
			switch c := control(child).(type) {
			case appmodels.Button:
				data, err := r.codec.Encode(c.ID, c.Value)
				if err != nil {
					return fmt.Errorf("button %q: %w", c.ID, err)
				}
				row = append(row, models.InlineKeyboardButton{
					Text:         c.Label,
					CallbackData: data,
				})
			case appmodels.LinkButton:
				row = append(row, models.InlineKeyboardButton{
					Text: c.Label,
					URL:  c.URL,
				})
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: rows,
	}, nil
}

// EmptyKeyboard is a keyboard with no rows. Editing a message's markup to it
// removes the buttons.
func EmptyKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{},
	}
}
