package cache

import (
	"sync"

	"github.com/feedkit/feedkit-go/internal/types"
)

// Chats is the normalized chat collection. The list is shallow ({id,
// title}); message lists arrive when a chat is opened.
type Chats struct {
	mu    sync.Mutex
	order []types.ID
	chats map[types.ID]*types.Chat
}

// NewChats returns an empty chat cache.
func NewChats() *Chats {
	return &Chats{chats: make(map[types.ID]*types.Chat)}
}

// ReplaceAll swaps the chat list, preserving server order.
func (c *Chats) ReplaceAll(chats []types.Chat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = c.order[:0]
	c.chats = make(map[types.ID]*types.Chat, len(chats))
	for i := range chats {
		ch := copyChat(chats[i])
		c.order = append(c.order, ch.ID)
		c.chats[ch.ID] = &ch
	}
}

// Put upserts one chat, typically after loading its detail view.
func (c *Chats) Put(chat types.Chat) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.chats[chat.ID]; !ok {
		c.order = append(c.order, chat.ID)
	}
	cp := copyChat(chat)
	c.chats[chat.ID] = &cp
}

// Get returns a copy of the chat with the given id.
func (c *Chats) Get(id types.ID) (types.Chat, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.chats[id]
	if !ok {
		return types.Chat{}, false
	}
	return copyChat(*ch), true
}

// AppendMessage adds a message to the end of a chat's list, preserving
// arrival order. Returns false when the chat is unknown.
func (c *Chats) AppendMessage(id types.ID, msg types.Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch, ok := c.chats[id]
	if !ok {
		return false
	}
	ch.Messages = append(ch.Messages, msg)
	return true
}

// Snapshot returns deep copies of all chats in order.
func (c *Chats) Snapshot() []types.Chat {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.Chat, 0, len(c.order))
	for _, id := range c.order {
		if ch, ok := c.chats[id]; ok {
			out = append(out, copyChat(*ch))
		}
	}
	return out
}

func copyChat(ch types.Chat) types.Chat {
	ch.ParticipantNames = append([]string(nil), ch.ParticipantNames...)
	ch.Messages = append([]types.Message(nil), ch.Messages...)
	return ch
}
