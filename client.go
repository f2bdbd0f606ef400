// Package feedkit is a client SDK for a social-feed service. It keeps
// local UI state consistent with the remote store across optimistic
// mutations: rendering layers dispatch commands (like, comment, message,
// post, profile edit) and subscribe to immutable state snapshots.
package feedkit

import (
	"context"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/feedkit/feedkit-go/internal/engine"
	"github.com/feedkit/feedkit-go/internal/ownership"
	"github.com/feedkit/feedkit-go/internal/session"
	"github.com/feedkit/feedkit-go/internal/shardqueue"
)

// executor abstracts the internal async job runner used by like toggles.
type executor interface {
	Submit(context.Context, string, shardqueue.Job) error
	Barrier(context.Context, string) error
	Stop()
}

// Client is the SDK entry point. It owns the session store, the HTTP
// transport with its bearer-token wrapper, and the interaction engine.
type Client struct {
	baseURL   string
	http      *http.Client
	exec      executor
	statePath string
	log       zerolog.Logger

	sessions *session.Store
	engine   *engine.Engine

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for the service at baseURL. The session state
// file (when configured via WithStatePath or FEEDKIT_STATE_PATH) is read
// so a restarted process starts authenticated.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errEmptyBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.exec == nil {
		c.exec = newDefaultExecutor()
	}

	store, err := session.Open(c.statePath)
	if err != nil {
		return nil, err
	}
	c.sessions = store

	// Wrap the transport so every request carries the session's bearer
	// token; installed above any debug transport so dumps show the final
	// request.
	c.wrapTransportWithBearer()

	c.engine = engine.New(c.http, c.baseURL, c.sessions, c.exec, c.log)
	return c, nil
}

// wrapTransportWithBearer installs the Authorization wrapper around the
// HTTP client's transport. The token is read from the session store per
// request, so login and logout take effect immediately.
func (c *Client) wrapTransportWithBearer() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &bearerTransport{base: base, tokens: c.sessions}
}

// tokenSource yields the current access token, "" when logged out.
type tokenSource interface {
	Token() string
}

// bearerTransport attaches `Authorization: Bearer <token>` to outgoing
// requests when a session exists, and records request metrics.
type bearerTransport struct {
	base   http.RoundTripper
	tokens tokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original.
	cloned := req.Clone(req.Context())
	if tok := t.tokens.Token(); tok != "" {
		cloned.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := t.base.RoundTrip(cloned)
	observeRequest(req.Method, resp, err)
	return resp, err
}

// Close stops the background executor (if any). Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.exec != nil {
		c.exec.Stop()
	}
	return nil
}

// newDefaultExecutor constructs the shard executor with sane defaults.
// MaxAttempts is 1: no mutation is retried automatically, every retry is
// the user re-invoking the operation.
func newDefaultExecutor() *shardqueue.ShardExecutor {
	cfg := shardqueue.Config{Shards: 4, QueueSize: 256, MaxAttempts: 1}
	return shardqueue.NewShardExecutor(cfg)
}

// --------------------------------------------------------------------
// Session operations - delegated to the engine and session store
// --------------------------------------------------------------------

// Login authenticates and resolves the session identity. See Engine.Login
// for the exact-match resolution and partial-success rollback semantics.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	return c.engine.Login(ctx, username, password)
}

// Logout clears the session locally. No network call is made.
func (c *Client) Logout() error { return c.engine.Logout() }

// Register creates a new account and returns its user id.
func (c *Client) Register(ctx context.Context, username, password string) (ID, error) {
	return c.engine.Register(ctx, username, password)
}

// CurrentSession returns a copy of the session, nil when logged out.
func (c *Client) CurrentSession() *Session { return c.sessions.Current() }

// IsAuthenticated reports whether a session with a token exists.
func (c *Client) IsAuthenticated() bool { return c.sessions.IsAuthenticated() }

// --------------------------------------------------------------------
// View loads - delegated to the engine
// --------------------------------------------------------------------

// LoadFeed fetches the post collection into the feed cache.
func (c *Client) LoadFeed(ctx context.Context) error { return c.engine.LoadFeed(ctx) }

// LoadChats fetches the chat list.
func (c *Client) LoadChats(ctx context.Context) error { return c.engine.LoadChats(ctx) }

// OpenChat loads one chat with its messages and makes it active.
func (c *Client) OpenChat(ctx context.Context, chatID ID) error {
	return c.engine.OpenChat(ctx, chatID)
}

// CloseChat leaves the chat view; a late response is discarded.
func (c *Client) CloseChat() { c.engine.CloseChat() }

// OpenProfile loads a profile and its posts and recomputes ownership.
func (c *Client) OpenProfile(ctx context.Context, userID ID) error {
	return c.engine.OpenProfile(ctx, userID)
}

// CloseProfile leaves the profile view.
func (c *Client) CloseProfile() { c.engine.CloseProfile() }

// --------------------------------------------------------------------
// Mutations - delegated to the engine
// --------------------------------------------------------------------

// ToggleLike flips the like on a post, optimistically and with precise
// revert on failure. Toggles for one post are FIFO-ordered.
func (c *Client) ToggleLike(ctx context.Context, postID ID) error {
	return c.engine.ToggleLike(ctx, postID)
}

// SyncLikes blocks until all previously submitted like toggles for the
// post have settled.
func (c *Client) SyncLikes(ctx context.Context, postID ID) error {
	return c.engine.SyncLikes(ctx, postID)
}

// AddComment appends a comment to a post. Empty input never reaches the
// network.
func (c *Client) AddComment(ctx context.Context, postID ID, text string) error {
	return c.engine.AddComment(ctx, postID, text)
}

// SendMessage posts a message to a chat. Empty input never reaches the
// network.
func (c *Client) SendMessage(ctx context.Context, chatID ID, text string) error {
	return c.engine.SendMessage(ctx, chatID, text)
}

// SetCommentDraft stores the comment input buffer for one post.
func (c *Client) SetCommentDraft(postID ID, text string) { c.engine.SetCommentDraft(postID, text) }

// SetMessageDraft stores the message input buffer for one chat.
func (c *Client) SetMessageDraft(chatID ID, text string) { c.engine.SetMessageDraft(chatID, text) }

// SetPostDraft replaces the compose-form state.
func (c *Client) SetPostDraft(d PostDraft) { c.engine.SetPostDraft(d) }

// CreatePost submits the compose form as a multipart request.
func (c *Client) CreatePost(ctx context.Context) error { return c.engine.CreatePost(ctx) }

// BeginEdit enters profile edit mode; owner only.
func (c *Client) BeginEdit() error { return c.engine.BeginEdit() }

// CancelEdit leaves edit mode, restoring the last-committed fields.
func (c *Client) CancelEdit() { c.engine.CancelEdit() }

// UpdateProfile patches the editable fields; owner only.
func (c *Client) UpdateProfile(ctx context.Context, form ProfilePatch) error {
	return c.engine.UpdateProfile(ctx, form)
}

// --------------------------------------------------------------------
// State
// --------------------------------------------------------------------

// Snapshot returns the current immutable state view.
func (c *Client) Snapshot() Snapshot { return c.engine.Snapshot() }

// Subscribe registers fn for every published snapshot; the returned
// function unsubscribes.
func (c *Client) Subscribe(fn func(Snapshot)) func() { return c.engine.Subscribe(fn) }

// ClearNotice dismisses the current user-facing message.
func (c *Client) ClearNotice() { c.engine.ClearNotice() }

// IsOwner reports whether the current session owns the given profile.
func (c *Client) IsOwner(profileUserID ID) bool {
	return ownership.IsOwner(profileUserID, c.sessions.Current())
}
