package feedkit

import (
	"testing"
	"time"
)

func TestNewFromEnv(t *testing.T) {
	t.Setenv("FEEDKIT_BASE_URL", "http://feed.local")
	t.Setenv("FEEDKIT_HTTP_TIMEOUT", "10s")

	c, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	defer func() { _ = c.Close() }()

	if c.baseURL != "http://feed.local" {
		t.Fatalf("base url = %q", c.baseURL)
	}
	if c.http.Timeout != 10*time.Second {
		t.Fatalf("timeout = %v", c.http.Timeout)
	}
}

func TestNewFromEnv_RequiresBaseURL(t *testing.T) {
	t.Setenv("FEEDKIT_BASE_URL", "")
	if _, err := NewFromEnv(); err == nil {
		t.Fatal("expected error without FEEDKIT_BASE_URL")
	}
}

func TestNewFromEnv_ExplicitOptionsWin(t *testing.T) {
	t.Setenv("FEEDKIT_BASE_URL", "http://feed.local")
	t.Setenv("FEEDKIT_HTTP_TIMEOUT", "10s")

	c, err := NewFromEnv(WithHTTPTimeout(3 * time.Second))
	if err != nil {
		t.Fatalf("NewFromEnv: %v", err)
	}
	defer func() { _ = c.Close() }()
	if c.http.Timeout != 3*time.Second {
		t.Fatalf("explicit option must win, timeout = %v", c.http.Timeout)
	}
}
