package feedkit

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/feedkit/feedkit-go/internal/shardqueue"
)

type stubExec struct{ stops int }

func (s *stubExec) Submit(context.Context, string, shardqueue.Job) error { return nil }
func (s *stubExec) Barrier(context.Context, string) error                { return nil }
func (s *stubExec) Stop()                                                { s.stops++ }

func TestIsBackPressure(t *testing.T) {
	if !IsBackPressure(ErrBackPressure) {
		t.Fatalf("expected back pressure")
	}
	if !IsBackPressure(&shardqueue.QueueFullError{Shard: 1, Length: 4, Capacity: 4}) {
		t.Fatalf("QueueFullError must read as back pressure")
	}
	if IsBackPressure(errors.New("other")) {
		t.Fatalf("unexpected back pressure detection")
	}
}

func TestCloseIdempotent(t *testing.T) {
	s := &stubExec{}
	c := &Client{exec: s}
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if s.stops != 1 {
		t.Fatalf("executor stop called %d times", s.stops)
	}
}

func TestNew(t *testing.T) {
	c, err := New("http://example.com")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = c.Close() }()
	if c.IsAuthenticated() {
		t.Fatal("fresh client must be logged out")
	}
	if c.CurrentSession() != nil {
		t.Fatal("fresh client must have no session")
	}
}

func TestNew_EmptyBaseURL(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty base URL")
	}
}

func TestBearerTransport_AttachesToken(t *testing.T) {
	var gotAuth string
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		gotAuth = r.Header.Get("Authorization")
		return &http.Response{StatusCode: 200, Body: http.NoBody, Header: make(http.Header)}, nil
	})

	c, err := New("http://example.com", WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = c.Close() }()

	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://example.com/api/v1/posts/", nil)
	if _, err := c.http.Do(req); err != nil {
		t.Fatalf("request: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("no session, no header; got %q", gotAuth)
	}

	if err := c.sessions.Set(Session{Token: "tok-a", UserID: "7", Username: "alice"}); err != nil {
		t.Fatalf("set session: %v", err)
	}
	if _, err := c.http.Do(req); err != nil {
		t.Fatalf("request: %v", err)
	}
	if gotAuth != "Bearer tok-a" {
		t.Fatalf("authorization = %q", gotAuth)
	}

	// The wrapper must not mutate the caller's request.
	if req.Header.Get("Authorization") != "" {
		t.Fatal("original request was mutated")
	}
}

func TestIsOwnerDelegation(t *testing.T) {
	c, err := New("http://example.com")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = c.Close() }()

	if c.IsOwner("7") {
		t.Fatal("logged-out client owns nothing")
	}
	_ = c.sessions.Set(Session{Token: "tok", UserID: "7"})
	if !c.IsOwner("7") {
		t.Fatal("session user must own their profile")
	}
	if c.IsOwner("8") {
		t.Fatal("session user must not own another profile")
	}
}
