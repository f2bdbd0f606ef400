package feedkit_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	feedkit "github.com/feedkit/feedkit-go"
)

// backend is a scripted stand-in for the feed service, enough of it to
// drive a full session: login, feed, likes, comments, chats, messages.
type backend struct {
	mu        sync.Mutex
	likes     int
	liked     bool
	comments  []map[string]any
	messages  []map[string]any
	authSeen  map[string]string // path -> Authorization header observed
	nextMsgID int
}

func newBackend() *backend {
	return &backend{likes: 5, authSeen: make(map[string]string), nextMsgID: 100}
}

func (b *backend) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.authSeen[r.URL.Path] = r.Header.Get("Authorization")
		b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/token/":
			var creds map[string]string
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds["username"] != "alice" || creds["password"] != "secret" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
				return
			}
			_, _ = w.Write([]byte(`{"access":"tok-a","refresh":"tok-r"}`))

		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/profiles/":
			_, _ = w.Write([]byte(`[{"id":1,"name":"bob"},{"id":7,"name":"alice"}]`))

		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/posts/":
			b.mu.Lock()
			likes, liked := b.likes, b.liked
			comments := b.comments
			b.mu.Unlock()
			likeRecords := []map[string]any{{"id": 90, "author": 2, "post": 1}}
			if liked {
				likeRecords = append(likeRecords, map[string]any{"id": 91, "author": 7, "post": 1})
			}
			_ = json.NewEncoder(w).Encode([]map[string]any{{
				"id": 1, "author_id": 2, "author_name": "bob", "text": "hello world",
				"is_published": true, "likes": likeRecords, "likes_num": likes,
				"comments": comments, "comments_num": len(comments),
			}})

		case r.URL.Path == "/api/v1/likes/":
			b.mu.Lock()
			defer b.mu.Unlock()
			switch r.Method {
			case http.MethodPost:
				b.likes++
				b.liked = true
				w.WriteHeader(http.StatusCreated)
			case http.MethodDelete:
				b.likes--
				b.liked = false
				w.WriteHeader(http.StatusNoContent)
			}

		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/comments/":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			c := map[string]any{"id": 40, "post": 1, "author_name": "alice", "text": body["text"]}
			b.mu.Lock()
			b.comments = append(b.comments, c)
			b.mu.Unlock()
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(c)

		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/chats/":
			_, _ = w.Write([]byte(`[{"id":3,"title":"general"}]`))

		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/chats/3/":
			b.mu.Lock()
			msgs := append([]map[string]any{{"id": 20, "chat": 3, "author_name": "bob", "text": "hi"}}, b.messages...)
			b.mu.Unlock()
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": 3, "title": "general", "participant_names": []string{"alice", "bob"}, "messages": msgs,
			})

		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/messages/":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			b.mu.Lock()
			b.nextMsgID++
			m := map[string]any{"id": b.nextMsgID, "chat": 3, "author_name": "alice", "text": body["text"]}
			b.messages = append(b.messages, m)
			b.mu.Unlock()
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(m)

		default:
			t.Logf("unhandled request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (b *backend) auth(path string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.authSeen[path]
}

func TestClient_FullSession(t *testing.T) {
	t.Parallel()

	b := newBackend()
	srv := httptest.NewServer(b.handler(t))
	defer srv.Close()

	c, err := feedkit.New(srv.URL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	// Wrong password first: rejected, no session.
	if _, err := c.Login(ctx, "alice", "nope"); err == nil {
		t.Fatal("expected login rejection")
	}
	if c.IsAuthenticated() {
		t.Fatal("rejected login must not leave a session")
	}

	sess, err := c.Login(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.UserID != "7" {
		t.Fatalf("resolved user id = %q", sess.UserID)
	}

	// Authenticated requests carry the bearer token.
	if err := c.LoadFeed(ctx); err != nil {
		t.Fatalf("load feed: %v", err)
	}
	if got := b.auth("/api/v1/posts/"); got != "Bearer tok-a" {
		t.Fatalf("authorization on feed load = %q", got)
	}

	snap := c.Snapshot()
	if len(snap.Feed) != 1 || snap.Feed[0].LikesCount != 5 || snap.Feed[0].LikedByMe {
		t.Fatalf("initial feed = %+v", snap.Feed)
	}

	// Like, observe the optimistic flip, then settle.
	postID := snap.Feed[0].ID
	if err := c.ToggleLike(ctx, postID); err != nil {
		t.Fatalf("toggle like: %v", err)
	}
	if p := c.Snapshot().Feed[0]; !p.LikedByMe || p.LikesCount != 6 {
		t.Fatalf("optimistic like state = %+v", p)
	}
	if err := c.SyncLikes(ctx, postID); err != nil {
		t.Fatalf("sync likes: %v", err)
	}

	// A reload agrees with the local state.
	if err := c.LoadFeed(ctx); err != nil {
		t.Fatalf("reload feed: %v", err)
	}
	if p := c.Snapshot().Feed[0]; !p.LikedByMe || p.LikesCount != 6 {
		t.Fatalf("server state diverged: %+v", p)
	}

	// Comment.
	if err := c.AddComment(ctx, postID, "great post"); err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if p := c.Snapshot().Feed[0]; p.CommentsCount != 1 || p.Comments[0].Text != "great post" {
		t.Fatalf("comment state = %+v", p)
	}

	// Chats.
	if err := c.LoadChats(ctx); err != nil {
		t.Fatalf("load chats: %v", err)
	}
	if err := c.OpenChat(ctx, "3"); err != nil {
		t.Fatalf("open chat: %v", err)
	}
	if err := c.SendMessage(ctx, "3", "on my way"); err != nil {
		t.Fatalf("send message: %v", err)
	}
	snap = c.Snapshot()
	msgs := snap.ActiveChat.Messages
	if len(msgs) != 2 || msgs[1].Text != "on my way" {
		t.Fatalf("chat messages = %+v", msgs)
	}

	// Logout drops everything locally.
	if err := c.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if c.IsAuthenticated() {
		t.Fatal("logout must clear the session")
	}
	if snap := c.Snapshot(); len(snap.Feed) != 0 || snap.ActiveChat != nil {
		t.Fatalf("logout must clear cached state: %+v", snap)
	}
}
