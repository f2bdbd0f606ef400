package engine

import (
	"github.com/feedkit/feedkit-go/internal/types"
)

// ProfileState is the profile view's slice of a snapshot.
type ProfileState struct {
	Profile types.Profile
	Posts   []types.Post
	IsOwner bool
	Editing bool
	Form    types.ProfilePatch
}

// Snapshot is an immutable view of the engine state. Rendering layers
// subscribe to snapshots and display them; they never mutate one.
type Snapshot struct {
	// Session is the current identity, nil when logged out.
	Session *types.Session

	// AuthRequired is set when an authenticated call came back 401; the UI
	// should route to the login flow.
	AuthRequired bool

	// Feed contains the published posts in server order.
	Feed []types.Post

	// Chats is the chat list; ActiveChat is the open chat, nil when none.
	Chats      []types.Chat
	ActiveChat *types.Chat

	// Profile is the open profile view, nil when none.
	Profile *ProfileState

	// PostDraft is the compose-form state.
	PostDraft types.PostDraft

	// CommentDrafts and MessageDrafts are the per-entity input buffers.
	CommentDrafts map[types.ID]string
	MessageDrafts map[types.ID]string

	// Pending marks entity keys with a mutation in flight, so the UI can
	// disable the matching affordance.
	Pending map[string]bool

	// Notice is the user-facing message for the last failure, "" when none.
	Notice string
}

// Subscribe registers fn to receive every published snapshot. The returned
// function unsubscribes.
func (e *Engine) Subscribe(fn func(Snapshot)) func() {
	e.subMu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.subMu.Unlock()
	return func() {
		e.subMu.Lock()
		delete(e.subs, id)
		e.subMu.Unlock()
	}
}

// Snapshot builds the current immutable state view.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()

	snap := Snapshot{
		Session:       e.sessions.Current(),
		AuthRequired:  e.authRequired,
		Notice:        e.notice,
		PostDraft:     e.draft,
		CommentDrafts: make(map[types.ID]string, len(e.commentDrafts)),
		MessageDrafts: make(map[types.ID]string, len(e.messageDrafts)),
		Pending:       make(map[string]bool, len(e.pending)),
	}
	for k, v := range e.commentDrafts {
		snap.CommentDrafts[k] = v
	}
	for k, v := range e.messageDrafts {
		snap.MessageDrafts[k] = v
	}
	for k := range e.pending {
		snap.Pending[k] = true
	}

	// Only published posts reach the feed view.
	for _, p := range e.feed.Snapshot() {
		if p.IsPublished {
			snap.Feed = append(snap.Feed, p)
		}
	}

	snap.Chats = e.chats.Snapshot()
	if e.activeChat != "" {
		if ch, ok := e.chats.Get(e.activeChat); ok {
			snap.ActiveChat = &ch
		}
	}

	if prof, ok := e.profile.Profile(); ok {
		snap.Profile = &ProfileState{
			Profile: prof,
			Posts:   e.profile.Posts(),
			IsOwner: e.owner,
			Editing: e.editing,
			Form:    e.form,
		}
	}

	e.mu.Unlock()
	return snap
}

// publish delivers the current snapshot to every subscriber. Subscribers
// run outside the state lock.
func (e *Engine) publish() {
	snap := e.Snapshot()

	e.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(e.subs))
	for _, fn := range e.subs {
		fns = append(fns, fn)
	}
	e.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
