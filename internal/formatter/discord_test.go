package formatter

import (
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/mixelka/chatadapter/internal/callback"
	"github.com/mixelka/chatadapter/pkg/chaterr"
	"github.com/mixelka/chatadapter/pkg/models"
)

func TestDiscordRenderer_Render(t *testing.T) {
	card := models.Card{Children: []models.Node{
		models.Actions{Children: []models.Node{
			models.Button{ID: "ban", Label: "Ban", Value: "user-7", Style: models.ButtonDanger},
			models.LinkButton{Label: "Profile", URL: "https://example.com/u/7"},
			models.Select{ID: "dropped"},
		}},
	}}

	components, err := NewDiscordRenderer(callback.Discord()).Render(card)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(components) != 1 {
		t.Fatalf("got %d rows", len(components))
	}
	row := components[0].(discordgo.ActionsRow)
	if len(row.Components) != 2 {
		t.Fatalf("row has %d components", len(row.Components))
	}

	ban := row.Components[0].(discordgo.Button)
	if ban.Style != discordgo.DangerButton || ban.CustomID != `chat:{"a":"ban","v":"user-7"}` {
		t.Errorf("ban = %+v", ban)
	}
	if got := callback.Discord().DecodeString(ban.CustomID); got.ID != "ban" || got.Value != "user-7" {
		t.Errorf("custom id decodes to %+v", got)
	}

	link := row.Components[1].(discordgo.Button)
	if link.Style != discordgo.LinkButton || link.URL != "https://example.com/u/7" || link.CustomID != "" {
		t.Errorf("link = %+v", link)
	}
}

func TestDiscordRenderer_NoActions(t *testing.T) {
	components, err := NewDiscordRenderer(callback.Discord()).Render(models.Card{Title: "plain"})
	if err != nil || components != nil {
		t.Errorf("Render = %v, %v; want nil, nil", components, err)
	}
}

func TestDiscordRenderer_Limits(t *testing.T) {
	wide := models.Actions{}
	for i := 0; i < 6; i++ {
		wide.Children = append(wide.Children, models.Button{ID: "b", Label: "B"})
	}
	_, err := NewDiscordRenderer(callback.Discord()).Render(models.Card{Children: []models.Node{wide}})
	if !chaterr.IsKind(err, chaterr.KindValidation) {
		t.Errorf("six buttons: expected validation error, got %v", err)
	}

	var tall []models.Node
	for i := 0; i < 6; i++ {
		tall = append(tall, models.Actions{Children: []models.Node{models.Button{ID: "b", Label: "B"}}})
	}
	_, err = NewDiscordRenderer(callback.Discord()).Render(models.Card{Children: tall})
	if !chaterr.IsKind(err, chaterr.KindValidation) {
		t.Errorf("six rows: expected validation error, got %v", err)
	}
}
