// Package engine orchestrates every user-triggered mutation as an
// atomic-from-the-UI's-perspective operation against the entity caches:
// like toggles, comments, messages, post creation, and profile edits.
// Rendering layers dispatch commands here and subscribe to immutable state
// snapshots; they never own mutation logic themselves.
package engine

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/feedkit/feedkit-go/internal/api"
	"github.com/feedkit/feedkit-go/internal/cache"
	"github.com/feedkit/feedkit-go/internal/errors"
	"github.com/feedkit/feedkit-go/internal/ownership"
	"github.com/feedkit/feedkit-go/internal/session"
	"github.com/feedkit/feedkit-go/internal/shardqueue"
	"github.com/feedkit/feedkit-go/internal/types"
	"github.com/feedkit/feedkit-go/uimsg"
)

// View identifies a UI surface for the stale-response guard. Each view has
// an epoch; loading bumps it and a response is applied only while its
// epoch is still current, so navigating away drops in-flight results.
type View int

const (
	ViewFeed View = iota
	ViewChats
	ViewChat
	ViewProfile
	numViews
)

// Executor runs like-toggle jobs with FIFO ordering per entity key.
type Executor interface {
	Submit(ctx context.Context, key string, j shardqueue.Job) error
	Barrier(ctx context.Context, key string) error
}

// Engine is the interaction engine. All exported methods are safe for
// concurrent use; network calls happen outside the state lock.
type Engine struct {
	httpClient api.HTTPClient
	baseURL    string
	sessions   *session.Store
	exec       Executor
	log        zerolog.Logger

	mu            sync.Mutex
	feed          *cache.Feed
	chats         *cache.Chats
	profile       *cache.ProfileView
	epochs        [numViews]uint64
	activeChat    types.ID
	pending       map[string]bool
	pendingLikes  map[string]likeDelta
	owner         bool
	editing       bool
	form          types.ProfilePatch
	draft         types.PostDraft
	commentDrafts map[types.ID]string
	messageDrafts map[types.ID]string
	notice        string
	authRequired  bool

	subMu   sync.Mutex
	subs    map[uint64]func(Snapshot)
	nextSub uint64
}

// New constructs an engine around the given transport, session store, and
// executor.
func New(httpClient api.HTTPClient, baseURL string, sessions *session.Store, exec Executor, log zerolog.Logger) *Engine {
	return &Engine{
		httpClient:    httpClient,
		baseURL:       baseURL,
		sessions:      sessions,
		exec:          exec,
		log:           log,
		feed:          cache.NewFeed(),
		chats:         cache.NewChats(),
		profile:       cache.NewProfileView(),
		pending:       make(map[string]bool),
		pendingLikes:  make(map[string]likeDelta),
		draft:         defaultDraft(),
		commentDrafts: make(map[types.ID]string),
		messageDrafts: make(map[types.ID]string),
		subs:          make(map[uint64]func(Snapshot)),
	}
}

func defaultDraft() types.PostDraft {
	return types.PostDraft{IsPublished: true}
}

// ------------------------------
// Session operations
// ------------------------------

// Login exchanges credentials for a token, then resolves the session user
// id by exact username match against the profile collection. A successful
// credential exchange with no matching profile is a hard failure: the
// partially stored token is rolled back and the session stays empty.
func (e *Engine) Login(ctx context.Context, username, password string) (*types.Session, error) {
	tok, err := api.ObtainToken(ctx, e.httpClient, e.baseURL, username, password)
	if err != nil {
		// A 4xx from the credential endpoint is a rejection; network and
		// server failures propagate as-is.
		if ce, ok := errors.AsClassified(err); ok && ce.StatusCode >= 400 && ce.StatusCode < 500 {
			err = &errors.AuthError{Reason: errors.ReasonInvalidCredentials, Underlying: err}
		}
		e.setNotice(uimsg.Lookup(uimsg.LoginFailed))
		return nil, err
	}

	// Store the token before the profile lookup so the request is
	// authorized; rolled back below if the lookup fails.
	partial := types.Session{Token: tok.Access, RefreshToken: tok.Refresh, Username: username}
	if err := e.sessions.Set(partial); err != nil {
		return nil, err
	}

	profiles, err := api.ListProfiles(ctx, e.httpClient, e.baseURL)
	if err != nil {
		_ = e.sessions.Clear()
		e.setNotice(uimsg.Lookup(uimsg.LoginFailed))
		return nil, err
	}

	var resolved types.ID
	for _, p := range profiles {
		if p.Name == username {
			resolved = p.ID
			break
		}
	}
	if resolved == "" {
		_ = e.sessions.Clear()
		e.setNotice(uimsg.Lookup(uimsg.LoginFailed))
		return nil, &errors.AuthError{Reason: errors.ReasonProfileNotFound}
	}

	sess := types.Session{
		Token:        tok.Access,
		RefreshToken: tok.Refresh,
		Username:     username,
		UserID:       resolved,
	}
	if err := e.sessions.Set(sess); err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.authRequired = false
	e.notice = ""
	e.mu.Unlock()
	e.log.Info().Str("username", username).Str("user_id", resolved.String()).Msg("logged in")
	e.publish()
	return &sess, nil
}

// Logout clears the session locally; no network call is made.
func (e *Engine) Logout() error {
	err := e.sessions.Clear()
	e.mu.Lock()
	e.feed.ReplaceAll(nil)
	e.chats.ReplaceAll(nil)
	e.profile.Clear()
	e.owner = false
	e.editing = false
	e.activeChat = ""
	e.notice = ""
	e.mu.Unlock()
	e.publish()
	return err
}

// Register creates a new account and returns the new user id. It does not
// log the user in.
func (e *Engine) Register(ctx context.Context, username, password string) (types.ID, error) {
	id, err := api.Register(ctx, e.httpClient, e.baseURL, username, password)
	if err != nil {
		e.setNotice(uimsg.Lookup(uimsg.RegisterFailed))
		return "", err
	}
	return id, nil
}

// ------------------------------
// View loads
// ------------------------------

// LoadFeed fetches the post collection and replaces the feed cache.
// LikedByMe is derived here, at ingest, from the like records.
func (e *Engine) LoadFeed(ctx context.Context) error {
	epoch := e.bump(ViewFeed)
	wire, err := api.ListPosts(ctx, e.httpClient, e.baseURL)
	if err != nil {
		e.fail("load feed", uimsg.FeedLoadFailed, err)
		return err
	}
	viewer := e.viewerID()
	posts := make([]types.Post, 0, len(wire))
	for _, w := range wire {
		posts = append(posts, w.Domain(viewer))
	}

	e.mu.Lock()
	if e.epochs[ViewFeed] != epoch {
		e.mu.Unlock()
		return nil // view navigated away; drop the stale response
	}
	e.feed.ReplaceAll(posts)
	e.mu.Unlock()
	e.publish()
	return nil
}

// LoadChats fetches the chat list.
func (e *Engine) LoadChats(ctx context.Context) error {
	epoch := e.bump(ViewChats)
	wire, err := api.ListChats(ctx, e.httpClient, e.baseURL)
	if err != nil {
		e.fail("load chats", uimsg.ChatsLoadFailed, err)
		return err
	}
	chats := make([]types.Chat, 0, len(wire))
	for _, w := range wire {
		chats = append(chats, w.Domain())
	}

	e.mu.Lock()
	if e.epochs[ViewChats] != epoch {
		e.mu.Unlock()
		return nil
	}
	e.chats.ReplaceAll(chats)
	e.mu.Unlock()
	e.publish()
	return nil
}

// OpenChat loads one chat with its messages and makes it the active chat.
func (e *Engine) OpenChat(ctx context.Context, chatID types.ID) error {
	epoch := e.bump(ViewChat)
	wire, err := api.GetChat(ctx, e.httpClient, e.baseURL, chatID)
	if err != nil {
		e.fail("open chat", uimsg.ChatLoadFailed, err)
		return err
	}

	e.mu.Lock()
	if e.epochs[ViewChat] != epoch {
		e.mu.Unlock()
		return nil
	}
	e.chats.Put(wire.Domain())
	e.activeChat = chatID
	e.mu.Unlock()
	e.publish()
	return nil
}

// CloseChat leaves the chat view; any in-flight chat load is discarded.
func (e *Engine) CloseChat() {
	e.mu.Lock()
	e.epochs[ViewChat]++
	e.activeChat = ""
	e.mu.Unlock()
	e.publish()
}

// OpenProfile loads a profile and its posts, and recomputes ownership for
// the current session.
func (e *Engine) OpenProfile(ctx context.Context, userID types.ID) error {
	epoch := e.bump(ViewProfile)
	env, err := api.GetProfile(ctx, e.httpClient, e.baseURL, userID)
	if err != nil {
		e.fail("open profile", uimsg.ProfileLoadFailed, err)
		return err
	}
	sess := e.sessions.Current()
	viewer := types.ID("")
	if sess != nil {
		viewer = sess.UserID
	}
	prof := env.Profile.Domain()
	posts := make([]types.Post, 0, len(env.Posts))
	for _, w := range env.Posts {
		posts = append(posts, w.Domain(viewer))
	}

	e.mu.Lock()
	if e.epochs[ViewProfile] != epoch {
		e.mu.Unlock()
		return nil
	}
	e.profile.Set(prof, posts)
	e.owner = ownership.IsOwner(prof.UserID, sess)
	e.editing = false
	e.form = formFrom(prof)
	e.mu.Unlock()
	e.publish()
	return nil
}

// CloseProfile leaves the profile view.
func (e *Engine) CloseProfile() {
	e.mu.Lock()
	e.epochs[ViewProfile]++
	e.profile.Clear()
	e.owner = false
	e.editing = false
	e.mu.Unlock()
	e.publish()
}

// ------------------------------
// internals
// ------------------------------

func (e *Engine) bump(v View) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.epochs[v]++
	return e.epochs[v]
}

func (e *Engine) viewerID() types.ID {
	if s := e.sessions.Current(); s != nil {
		return s.UserID
	}
	return ""
}

// requireSession returns the session or ErrNotAuthenticated. Every
// mutating operation is forbidden without a token.
func (e *Engine) requireSession() (*types.Session, error) {
	s := e.sessions.Current()
	if s == nil || s.Token == "" {
		return nil, errors.ErrNotAuthenticated
	}
	return s, nil
}

// fail records a user-facing notice for a failed remote call. Unauthorized
// responses are treated as session expiry: the session is cleared and the
// snapshot flags that re-authentication is required.
func (e *Engine) fail(op, msgKey string, err error) {
	e.log.Warn().Err(err).Str("op", op).Msg("operation failed")
	if errors.IsUnauthorized(err) {
		_ = e.sessions.Clear()
		e.mu.Lock()
		e.authRequired = true
		e.notice = uimsg.Lookup(uimsg.SessionExpired)
		e.mu.Unlock()
	} else {
		e.storeNotice(uimsg.Lookup(msgKey))
	}
	e.publish()
}

func (e *Engine) setNotice(msg string) {
	e.storeNotice(msg)
	e.publish()
}

func (e *Engine) storeNotice(msg string) {
	e.mu.Lock()
	e.notice = msg
	e.mu.Unlock()
}

// ClearNotice dismisses the current user-facing message.
func (e *Engine) ClearNotice() {
	e.storeNotice("")
	e.publish()
}

func formFrom(p types.Profile) types.ProfilePatch {
	return types.ProfilePatch{
		Bio:         p.Bio,
		Location:    p.Location,
		Website:     p.Website,
		DateOfBirth: p.DateOfBirth,
	}
}
