package feedkit

import (
	"github.com/feedkit/feedkit-go/internal/engine"
	"github.com/feedkit/feedkit-go/internal/types"
)

// Public type aliases so SDK consumers can import only the feedkit package.
type (
	// Identifiers and domain entities
	ID      = types.ID
	Session = types.Session
	Post    = types.Post
	Comment = types.Comment
	Chat    = types.Chat
	Message = types.Message
	Profile = types.Profile

	// Form state
	PostDraft    = types.PostDraft
	ProfilePatch = types.ProfilePatch

	// Engine state
	Snapshot     = engine.Snapshot
	ProfileState = engine.ProfileState
)

// Errors re-exported in errors.go
