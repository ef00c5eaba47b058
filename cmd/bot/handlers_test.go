package main

import (
	"strings"
	"testing"

	"github.com/mixelka/chatadapter/internal/callback"
	"github.com/mixelka/chatadapter/pkg/chaterr"
	"github.com/mixelka/chatadapter/pkg/models"
)

func TestPongText(t *testing.T) {
	tests := []struct {
		value, want string
	}{
		{"1", "pong (1)"},
		{"<script>&", "pong (&lt;script&gt;&amp;)"},
	}
	for _, test := range tests {
		if got := pongText(test.value); got != test.want {
			t.Errorf("pongText(%q) = %q, want %q", test.value, got, test.want)
		}
	}
}

func TestPreviewer_Render(t *testing.T) {
	text, err := newPreviewer(callback.Discord()).Render(helpCard())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"<b>Slack</b>",
		"<b>Discord</b>",
		`&quot;action_id&quot;:&quot;ping&quot;`,
		`chat:{\&quot;a\&quot;:\&quot;ping\&quot;`,
		"https://core.telegram.org/bots/api",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("preview is missing %q:\n%s", want, text)
		}
	}
	if len(text) > 4096 {
		t.Errorf("preview is %d bytes, over the Telegram message limit", len(text))
	}
}

func TestPreviewer_RespectsDiscordLimit(t *testing.T) {
	codec := callback.Discord()
	codec.Limit = 20

	_, err := newPreviewer(codec).Render(models.Card{
		Children: []models.Node{models.Actions{Children: []models.Node{
			models.Button{ID: "approve", Label: "Approve", Value: "request-42"},
		}}},
	})
	if !chaterr.IsKind(err, chaterr.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
