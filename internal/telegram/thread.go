package telegram

import (
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"

	"github.com/mixelka/chatadapter/pkg/chaterr"
	appmodels "github.com/mixelka/chatadapter/pkg/models"
)

const chatSpacePrefix = "chats/"

// address is where a message goes: a chat and, in forum supergroups, a topic
type address struct {
	chatID  int64
	topicID int
}

// ThreadIDFor encodes the thread token for a chat and forum topic. topicID
// is ignored outside forum chats; private chats are marked as DMs.
func (a *Adapter) ThreadIDFor(chat models.Chat, topicID int) (string, error) {
	thread := appmodels.Thread{
		SpaceName: chatSpacePrefix + strconv.FormatInt(chat.ID, 10),
		IsDM:      chat.Type == "private",
	}
	if chat.IsForum && topicID != 0 {
		thread.ThreadName = strconv.Itoa(topicID)
	}
	return a.threads.Encode(thread)
}

// IsDM reports whether threadID points at a private chat
func (a *Adapter) IsDM(threadID string) bool {
	return a.threads.IsDMThread(threadID)
}

// resolve decodes a thread token back into a chat address
func (a *Adapter) resolve(threadID string) (address, error) {
	thread, err := a.threads.Decode(threadID)
	if err != nil {
		return address{}, err
	}

	raw, ok := strings.CutPrefix(thread.SpaceName, chatSpacePrefix)
	if !ok {
		return address{}, chaterr.Decoding("telegram", "thread %q does not name a chat", threadID)
	}
	chatID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return address{}, chaterr.Decoding("telegram", "thread %q has invalid chat id %q", threadID, raw)
	}

	addr := address{chatID: chatID}
	if thread.ThreadName != "" {
		addr.topicID, err = strconv.Atoi(thread.ThreadName)
		if err != nil {
			return address{}, chaterr.Decoding("telegram", "thread %q has invalid topic id %q", threadID, thread.ThreadName)
		}
	}
	return addr, nil
}
