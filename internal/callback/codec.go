// Package callback encodes action payloads into the opaque callback field of
// interactive controls and decodes them back.
//
// Tokens look like `chat:{"a":"approve","v":"42"}`. Anything that does not
// parse as such a token (buttons sent by older releases, hand-written
// keyboards) decodes to an action whose ID and Value are the raw string.
package callback

import (
	"bytes"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/mixelka/chatadapter/pkg/chaterr"
	"github.com/mixelka/chatadapter/pkg/models"
)

const tokenPrefix = "chat:"

// FallbackActionID is reported when a callback arrives without any data
const FallbackActionID = "telegram_callback"

// Platform limits on the callback field, in bytes
const (
	TelegramLimit = 64  // callback_data
	DiscordLimit  = 100 // custom_id
)

// Codec encodes actions for one platform
type Codec struct {
	Platform string
	Limit    int
}

// Telegram returns a codec with Telegram's callback_data limit
func Telegram() Codec {
	return Codec{Platform: "telegram", Limit: TelegramLimit}
}

// Discord returns a codec with Discord's custom_id limit
func Discord() Codec {
	return Codec{Platform: "discord", Limit: DiscordLimit}
}

// Encode builds the callback token for actionID and an optional value
func (c Codec) Encode(actionID, value string) (string, error) {
	if actionID == "" {
		return "", chaterr.Validation(c.Platform, "callback action id is required")
	}
	// JSON would swap invalid bytes for U+FFFD and decode to a different action.
	if !utf8.ValidString(actionID) || !utf8.ValidString(value) {
		return "", chaterr.Validation(c.Platform, "callback payload for %q is not valid UTF-8", actionID)
	}

	var buf bytes.Buffer
	buf.WriteString(tokenPrefix)
	enc := json.NewEncoder(&buf)
	// Keep <, > and & literal: escaping triples their size.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(models.Action{ID: actionID, Value: value}); err != nil {
		return "", chaterr.Validation(c.Platform, "callback payload for %q is not encodable: %v", actionID, err)
	}
	token := strings.TrimSuffix(buf.String(), "\n")

	if c.Limit > 0 && len(token) > c.Limit {
		return "", chaterr.Validation(c.Platform,
			"callback data for action %q is %d bytes, limit is %d", actionID, len(token), c.Limit)
	}
	return token, nil
}

// Decode parses callback data. A nil pointer means the platform delivered no
// data at all. Decode never fails.
func (c Codec) Decode(data *string) models.Action {
	if data == nil {
		return models.Action{ID: FallbackActionID}
	}
	return c.DecodeString(*data)
}

// DecodeString parses callback data that is known to be present
func (c Codec) DecodeString(data string) models.Action {
	raw := models.Action{ID: data, Value: data}

	payload, ok := strings.CutPrefix(data, tokenPrefix)
	if !ok {
		return raw
	}

	var action models.Action
	if err := json.Unmarshal([]byte(payload), &action); err != nil || action.ID == "" {
		return raw
	}
	return action
}
