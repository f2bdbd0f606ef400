//go:build integration
// +build integration

package feedkit_test

import (
	"context"
	"os"
	"testing"

	feedkit "github.com/feedkit/feedkit-go"
)

// Runs against a live backend. Point FEEDKIT_TEST_URL at it and provide
// credentials via FEEDKIT_TEST_USER / FEEDKIT_TEST_PASS:
//
//	go test -tags integration ./integration_test/real/...
func TestRealBackend_LoginAndFeed(t *testing.T) {
	baseURL := os.Getenv("FEEDKIT_TEST_URL")
	if baseURL == "" {
		t.Skip("FEEDKIT_TEST_URL not set")
	}
	user := os.Getenv("FEEDKIT_TEST_USER")
	pass := os.Getenv("FEEDKIT_TEST_PASS")
	if user == "" || pass == "" {
		t.Skip("FEEDKIT_TEST_USER / FEEDKIT_TEST_PASS not set")
	}

	c, err := feedkit.New(baseURL)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	sess, err := c.Login(ctx, user, pass)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if sess.UserID == "" {
		t.Fatal("login must resolve a user id")
	}

	if err := c.LoadFeed(ctx); err != nil {
		t.Fatalf("load feed: %v", err)
	}
	t.Logf("feed holds %d published posts", len(c.Snapshot().Feed))

	if err := c.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
}
