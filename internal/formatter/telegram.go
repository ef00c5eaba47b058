package formatter

import (
	"fmt"
	"strings"

	"github.com/mixelka/chatadapter/internal/parser"
	"github.com/mixelka/chatadapter/pkg/models"
)

// TelegramFormatter formats card text for Telegram's HTML parse mode
type TelegramFormatter struct {
	maxLength int
	html      *parser.HTMLParser
}

// NewTelegramFormatter creates a new Telegram formatter
func NewTelegramFormatter() *TelegramFormatter {
	return &TelegramFormatter{
		maxLength: 4000, // Leave room for markup
		html:      parser.NewHTMLParser(),
	}
}

// FormatCard renders the title in bold followed by the card's text. Every
// section becomes its own paragraph. Controls are not part of the text.
func (f *TelegramFormatter) FormatCard(card models.Card) string {
	var paragraphs []string
	if card.Title != "" {
		paragraphs = append(paragraphs, fmt.Sprintf("<b>%s</b>", f.escapeHTML(card.Title)))
	}

	budget := f.maxLength
	var lines []string
	flush := func() {
		if len(lines) > 0 {
			paragraphs = append(paragraphs, strings.Join(lines, "\n"))
			lines = nil
		}
	}

	var walk func(nodes []models.Node)
	walk = func(nodes []models.Node) {
		for _, node := range nodes {
			switch n := control(node).(type) {
			case models.Text:
				if budget <= 0 || n.Content == "" {
					continue
				}
				content := f.truncate(n.Content, budget)
				budget -= len([]rune(content))
				lines = append(lines, f.escapeHTML(content))
			case models.Section, *models.Section:
				flush()
				walk(children(n))
				flush()
			}
		}
	}
	walk(card.Children)
	flush()

	return strings.Join(paragraphs, "\n\n")
}

// FallbackText is the card as plain text, link buttons included as
// "label (url)". Used where neither HTML nor buttons are available.
func (f *TelegramFormatter) FallbackText(card models.Card) (string, error) {
	var sb strings.Builder
	sb.WriteString(f.FormatCard(card))

	err := eachActions(card, func(actions models.Actions) error {
		for _, child := range actions.Children {
			if link, ok := control(child).(models.LinkButton); ok {
				fmt.Fprintf(&sb, "<br><a href=\"%s\">%s</a>", f.escapeHTML(link.URL), f.escapeHTML(link.Label))
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return f.html.Parse(sb.String())
}

// escapeHTML escapes HTML special characters for Telegram
func (f *TelegramFormatter) escapeHTML(s string) string {
	return EscapeHTML(s)
}

// EscapeHTML makes s safe to embed in a Telegram HTML message
func EscapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

// truncate truncates text to maxLen characters
func (f *TelegramFormatter) truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}
