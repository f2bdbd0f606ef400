package job

import "fmt"

// LikeKey returns the executor key serializing like mutations for a post.
func LikeKey(postID string) string { return "post:" + postID }

// ChatKey returns the executor key serializing mutations for a chat.
func ChatKey(chatID string) string { return "chat:" + chatID }

// Key builds an executor key from an entity kind and id.
func Key(kind, id string) string { return fmt.Sprintf("%s:%s", kind, id) }
