package formatter

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/mixelka/chatadapter/pkg/chaterr"
	"github.com/mixelka/chatadapter/pkg/models"
)

// Block Kit element limits
const (
	slackActionIDLimit = 255
	slackValueLimit    = 2000
	slackLabelLimit    = 75
)

// SlackRenderer turns a card into Block Kit blocks. Slack carries action_id
// and value as separate fields, so no callback token is involved.
type SlackRenderer struct{}

// NewSlackRenderer creates a Block Kit renderer
func NewSlackRenderer() *SlackRenderer {
	return &SlackRenderer{}
}

// Render emits a header for the title, a section per text paragraph and an
// actions block per Actions container. Unlike Telegram, static selects are
// supported. Actions containers with nothing renderable are omitted.
func (r *SlackRenderer) Render(card models.Card) ([]slack.Block, error) {
	var blocks []slack.Block
	if card.Title != "" {
		blocks = append(blocks, slack.NewHeaderBlock(plainText(card.Title)))
	}
	if err := r.renderNodes(card.Children, &blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// Actions returns only the actions blocks of card, or nil when it has none
func (r *SlackRenderer) Actions(card models.Card) ([]slack.Block, error) {
	var blocks []slack.Block
	err := eachActions(card, func(actions models.Actions) error {
		block, err := r.actionBlock(actions)
		if err != nil {
			return err
		}
		if block != nil {
			blocks = append(blocks, block)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *SlackRenderer) renderNodes(nodes []models.Node, blocks *[]slack.Block) error {
	var lines []string
	flush := func() {
		if len(lines) > 0 {
			text := slack.NewTextBlockObject(slack.MarkdownType, strings.Join(lines, "\n"), false, false)
			*blocks = append(*blocks, slack.NewSectionBlock(text, nil, nil))
			lines = nil
		}
	}

	for _, node := range nodes {
		switch n := control(node).(type) {
		case models.Text:
			if n.Content != "" {
				lines = append(lines, escapeMrkdwn(n.Content))
			}
		case models.Section, *models.Section:
			flush()
			if err := r.renderNodes(children(n), blocks); err != nil {
				return err
			}
		case models.Actions, *models.Actions:
			flush()
			actions, _ := asActions(n)
			block, err := r.actionBlock(actions)
			if err != nil {
				return err
			}
			if block != nil {
				*blocks = append(*blocks, block)
			}
			// Nested containers still become blocks of their own.
			if err := r.renderNestedActions(actions.Children, blocks); err != nil {
				return err
			}
		}
	}
	flush()
	return nil
}

func (r *SlackRenderer) renderNestedActions(nodes []models.Node, blocks *[]slack.Block) error {
	for _, node := range nodes {
		err := eachActions(node, func(actions models.Actions) error {
			block, err := r.actionBlock(actions)
			if err != nil {
				return err
			}
			if block != nil {
				*blocks = append(*blocks, block)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *SlackRenderer) actionBlock(actions models.Actions) (*slack.ActionBlock, error) {
	var elements []slack.BlockElement
	for _, child := range actions.Children {
		switch c := control(child).(type) {
		case models.Button:
			if err := validateSlackAction(c.ID, c.Value); err != nil {
				return nil, err
			}
			button := slack.NewButtonBlockElement(c.ID, c.Value, plainText(c.Label))
			if style := slackStyle(c.Style); style != slack.StyleDefault {
				button = button.WithStyle(style)
			}
			elements = append(elements, button)
		case models.LinkButton:
			elements = append(elements, slack.NewButtonBlockElement("", "", plainText(c.Label)).WithURL(c.URL))
		case models.Select:
			if len(c.Options) == 0 {
				continue
			}
			options := make([]*slack.OptionBlockObject, 0, len(c.Options))
			for _, opt := range c.Options {
				if err := validateSlackAction(c.ID, opt.Value); err != nil {
					return nil, err
				}
				options = append(options, slack.NewOptionBlockObject(opt.Value, plainText(opt.Label), nil))
			}
			elements = append(elements, slack.NewOptionsSelectBlockElement(slack.OptTypeStatic, plainText(c.Label), c.ID, options...))
		}
	}
	if len(elements) == 0 {
		return nil, nil
	}
	return slack.NewActionBlock("", elements...), nil
}

func validateSlackAction(id, value string) error {
	switch {
	case id == "":
		return chaterr.Validation("slack", "action id is required")
	case len(id) > slackActionIDLimit:
		return chaterr.Validation("slack", "action id %q is %d bytes, limit is %d", truncateID(id), len(id), slackActionIDLimit)
	case len(value) > slackValueLimit:
		return chaterr.Validation("slack", "value for action %q is %d bytes, limit is %d", truncateID(id), len(value), slackValueLimit)
	}
	return nil
}

func slackStyle(style models.ButtonStyle) slack.Style {
	switch style {
	case models.ButtonPrimary:
		return slack.StylePrimary
	case models.ButtonDanger:
		return slack.StyleDanger
	default:
		return slack.StyleDefault
	}
}

func plainText(s string) *slack.TextBlockObject {
	runes := []rune(s)
	if len(runes) > slackLabelLimit {
		s = string(runes[:slackLabelLimit-1]) + "…"
	}
	return slack.NewTextBlockObject(slack.PlainTextType, s, false, false)
}

// escapeMrkdwn escapes the three characters Slack reserves for control sequences
func escapeMrkdwn(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func truncateID(id string) string {
	if len(id) <= 32 {
		return id
	}
	return fmt.Sprintf("%s...", id[:32])
}
