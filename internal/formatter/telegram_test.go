package formatter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mixelka/chatadapter/pkg/models"
)

func TestTelegramFormatter_FormatCard(t *testing.T) {
	f := NewTelegramFormatter()
	card := models.Card{
		Title: "Build <42>",
		Children: []models.Node{
			models.Text{Content: "branch main"},
			models.Text{Content: "a & b"},
			models.Section{Children: []models.Node{
				models.Text{Content: "details"},
			}},
			models.Actions{Children: []models.Node{models.Button{ID: "x", Label: "hidden"}}},
		},
	}

	got := f.FormatCard(card)
	want := "<b>Build &lt;42&gt;</b>\n\nbranch main\na &amp; b\n\ndetails"
	if got != want {
		t.Errorf("FormatCard =\n%q\nwant\n%q", got, want)
	}
}

func TestTelegramFormatter_Truncates(t *testing.T) {
	f := NewTelegramFormatter()
	card := models.Card{Children: []models.Node{
		models.Text{Content: strings.Repeat("я", 5000)},
		models.Text{Content: "dropped"},
	}}
	got := f.FormatCard(card)
	if n := utf8.RuneCountInString(got); n != 4000 {
		t.Errorf("got %d runes, want 4000", n)
	}
	if strings.Contains(got, "dropped") {
		t.Error("text past the budget should be dropped")
	}
}

func TestTelegramFormatter_FallbackText(t *testing.T) {
	f := NewTelegramFormatter()
	card := models.Card{
		Title: "Incident",
		Children: []models.Node{
			models.Text{Content: "db <primary> down"},
			models.Actions{Children: []models.Node{
				models.Button{ID: "ack", Label: "Ack"},
				models.LinkButton{Label: "Dashboard", URL: "https://grafana.example.com/d/1?a=1&b=2"},
			}},
		},
	}
	got, err := f.FallbackText(card)
	if err != nil {
		t.Fatalf("FallbackText: %v", err)
	}
	want := "Incident\ndb <primary> down\nDashboard (https://grafana.example.com/d/1?a=1&b=2)"
	if got != want {
		t.Errorf("FallbackText =\n%q\nwant\n%q", got, want)
	}
}

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`<b>"x" & y</b>`, "&lt;b&gt;&quot;x&quot; &amp; y&lt;/b&gt;"},
		{"&amp;", "&amp;amp;"},
	}
	for _, test := range tests {
		if got := EscapeHTML(test.in); got != test.want {
			t.Errorf("EscapeHTML(%q) = %q, want %q", test.in, got, test.want)
		}
	}
}
