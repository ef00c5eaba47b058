package formatter

import (
	"strings"
	"testing"

	"github.com/mixelka/chatadapter/internal/callback"
	"github.com/mixelka/chatadapter/pkg/chaterr"
	"github.com/mixelka/chatadapter/pkg/models"
)

func TestKeyboardRenderer_SiblingActionsInOrder(t *testing.T) {
	card := models.Card{
		Title: "Deploy",
		Children: []models.Node{
			models.Text{Content: "ready?"},
			models.Actions{Children: []models.Node{
				models.Button{ID: "approve", Label: "Approve", Value: "42"},
				models.LinkButton{Label: "Logs", URL: "https://ci.example.com/42"},
			}},
			models.Section{Children: []models.Node{
				models.Text{Content: "or"},
				models.Actions{Children: []models.Node{
					models.Button{ID: "reject", Label: "Reject"},
				}},
			}},
		},
	}

	kb, err := NewKeyboardRenderer(callback.Telegram()).Render(card)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if kb == nil {
		t.Fatal("expected a keyboard")
	}
	if len(kb.InlineKeyboard) != 2 {
		t.Fatalf("got %d rows, want 2", len(kb.InlineKeyboard))
	}

	first := kb.InlineKeyboard[0]
	if len(first) != 2 {
		t.Fatalf("first row has %d buttons", len(first))
	}
	if first[0].Text != "Approve" || first[0].CallbackData != `chat:{"a":"approve","v":"42"}` {
		t.Errorf("approve button = %+v", first[0])
	}
	if first[1].Text != "Logs" || first[1].URL != "https://ci.example.com/42" || first[1].CallbackData != "" {
		t.Errorf("link button = %+v", first[1])
	}

	second := kb.InlineKeyboard[1]
	if len(second) != 1 || second[0].CallbackData != `chat:{"a":"reject"}` {
		t.Errorf("second row = %+v", second)
	}
}

func TestKeyboardRenderer_NoActions(t *testing.T) {
	card := models.Card{
		Title:    "Just text",
		Children: []models.Node{models.Section{Children: []models.Node{models.Text{Content: "hi"}}}},
	}
	kb, err := NewKeyboardRenderer(callback.Telegram()).Render(card)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if kb != nil {
		t.Errorf("expected nil keyboard, got %+v", kb)
	}

	empty := EmptyKeyboard()
	if empty == nil || empty.InlineKeyboard == nil || len(empty.InlineKeyboard) != 0 {
		t.Errorf("EmptyKeyboard = %+v, want present but empty rows", empty)
	}
}

func TestKeyboardRenderer_UnsupportedControlOnly(t *testing.T) {
	card := models.Card{Children: []models.Node{
		models.Actions{Children: []models.Node{
			models.Select{ID: "env", Label: "Environment", Options: []models.SelectOption{{Label: "prod", Value: "prod"}}},
		}},
	}}
	kb, err := NewKeyboardRenderer(callback.Telegram()).Render(card)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if kb != nil {
		t.Errorf("expected nil keyboard, got %+v", kb)
	}
}

func TestKeyboardRenderer_ControlsOutsideActionsAreInert(t *testing.T) {
	card := models.Card{Children: []models.Node{
		models.Button{ID: "stray", Label: "Stray"},
		models.Section{Children: []models.Node{models.LinkButton{Label: "x", URL: "https://x"}}},
	}}
	kb, err := NewKeyboardRenderer(callback.Telegram()).Render(card)
	if err != nil || kb != nil {
		t.Errorf("Render = %+v, %v; want nil, nil", kb, err)
	}
}

func TestKeyboardRenderer_PointerNodes(t *testing.T) {
	card := models.Card{Children: []models.Node{
		&models.Section{Children: []models.Node{
			&models.Actions{Children: []models.Node{&models.Button{ID: "ok", Label: "OK"}}},
		}},
	}}
	kb, err := NewKeyboardRenderer(callback.Telegram()).Render(card)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if kb == nil || len(kb.InlineKeyboard) != 1 || kb.InlineKeyboard[0][0].CallbackData != `chat:{"a":"ok"}` {
		t.Errorf("got %+v", kb)
	}
}

func TestKeyboardRenderer_OversizedCallback(t *testing.T) {
	card := models.Card{Children: []models.Node{
		models.Actions{Children: []models.Node{
			models.Button{ID: strings.Repeat("x", 200), Label: "Too long"},
		}},
	}}
	_, err := NewKeyboardRenderer(callback.Telegram()).Render(card)
	if !chaterr.IsKind(err, chaterr.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
