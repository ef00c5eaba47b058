// Package threadid maps a platform's native thread address onto the opaque
// thread token handed to the rest of the bot, and back.
//
// A token is `<prefix>:<space>[:<base64url(thread)>][:dm]`. The thread name is
// base64url encoded without padding so that arbitrary platform identifiers,
// slashes and colons included, survive the round trip.
package threadid

import (
	"encoding/base64"
	"strings"

	"github.com/mixelka/chatadapter/pkg/chaterr"
	"github.com/mixelka/chatadapter/pkg/models"
)

const (
	separator = ":"
	dmMarker  = "dm"
)

// Strict decoding rejects non-canonical segments, so no encoded thread name
// can ever read as the dm marker.
var threadEncoding = base64.RawURLEncoding.Strict()

// Codec encodes thread tokens for one platform
type Codec struct {
	Platform string
	Prefix   string
}

// GoogleChat returns the codec for Google Chat spaces (`spaces/AAAA`)
func GoogleChat() Codec {
	return Codec{Platform: "gchat", Prefix: "gchat"}
}

// Telegram returns the codec used by the Telegram adapter. Space names are
// `chats/<chat id>`, thread names are forum topic ids.
func Telegram() Codec {
	return Codec{Platform: "telegram", Prefix: "telegram"}
}

// Encode builds the token for thread
func (c Codec) Encode(thread models.Thread) (string, error) {
	if thread.SpaceName == "" {
		return "", chaterr.Validation(c.Platform, "thread space name is required")
	}
	if strings.Contains(thread.SpaceName, separator) {
		return "", chaterr.Validation(c.Platform, "space name %q must not contain %q", thread.SpaceName, separator)
	}

	parts := []string{c.Prefix, thread.SpaceName}
	if thread.ThreadName != "" {
		parts = append(parts, threadEncoding.EncodeToString([]byte(thread.ThreadName)))
	}
	if thread.IsDM {
		parts = append(parts, dmMarker)
	}
	return strings.Join(parts, separator), nil
}

// Decode parses a token produced by Encode
func (c Codec) Decode(token string) (models.Thread, error) {
	parts := strings.Split(token, separator)
	if len(parts) < 2 || parts[0] != c.Prefix {
		return models.Thread{}, chaterr.Decoding(c.Platform, "invalid thread id %q: expected prefix %q", token, c.Prefix)
	}

	var thread models.Thread
	if len(parts) > 2 && parts[len(parts)-1] == dmMarker {
		thread.IsDM = true
		parts = parts[:len(parts)-1]
	}

	switch len(parts) {
	case 2:
	case 3:
		raw, err := threadEncoding.DecodeString(parts[2])
		if err != nil || len(raw) == 0 {
			return models.Thread{}, chaterr.Decoding(c.Platform, "invalid thread id %q: bad thread segment", token)
		}
		thread.ThreadName = string(raw)
	default:
		return models.Thread{}, chaterr.Decoding(c.Platform, "invalid thread id %q: too many segments", token)
	}

	thread.SpaceName = parts[1]
	if thread.SpaceName == "" {
		return models.Thread{}, chaterr.Decoding(c.Platform, "invalid thread id %q: missing space", token)
	}
	return thread, nil
}

// IsDMThread reports whether token carries the dm marker. It only looks at
// the final segment and never fails; use Decode to validate a token.
func (c Codec) IsDMThread(token string) bool {
	if !strings.HasPrefix(token, c.Prefix+separator) {
		return false
	}
	idx := strings.LastIndex(token, separator)
	return token[idx+1:] == dmMarker && idx > len(c.Prefix)
}
