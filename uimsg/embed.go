// Package uimsg provides the embedded catalog of user-facing messages the
// interaction engine surfaces when an operation fails. Rendering layers
// display these verbatim; raw errors stay in logs.
package uimsg

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"
)

// Keys of the embedded catalog.
const (
	LoginFailed         = "login_failed"
	RegisterFailed      = "register_failed"
	FeedLoadFailed      = "feed_load_failed"
	LikeFailed          = "like_failed"
	CommentFailed       = "comment_failed"
	ChatsLoadFailed     = "chats_load_failed"
	ChatLoadFailed      = "chat_load_failed"
	MessageFailed       = "message_failed"
	PostCreateFailed    = "post_create_failed"
	ProfileLoadFailed   = "profile_load_failed"
	ProfileUpdateFailed = "profile_update_failed"
	SessionExpired      = "session_expired"
)

//go:embed messages.json
var catalogFS embed.FS

var (
	loadOnce sync.Once
	catalog  map[string]string
	loadErr  error
)

func load() {
	b, err := catalogFS.ReadFile("messages.json")
	if err != nil {
		loadErr = fmt.Errorf("uimsg: catalog missing: %w", err)
		return
	}
	if err := json.Unmarshal(b, &catalog); err != nil {
		loadErr = fmt.Errorf("uimsg: catalog malformed: %w", err)
	}
}

// Lookup returns the message for key. Unknown keys fall back to a generic
// failure message rather than an empty string.
func Lookup(key string) string {
	loadOnce.Do(load)
	if loadErr == nil {
		if m, ok := catalog[key]; ok {
			return m
		}
	}
	return "Something went wrong. Please try again."
}

// Keys returns every key present in the embedded catalog.
func Keys() ([]string, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]string, 0, len(catalog))
	for k := range catalog {
		out = append(out, k)
	}
	return out, nil
}
