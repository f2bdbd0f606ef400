package feedkit

import "testing"

func TestDebugLoggingRequested(t *testing.T) {
	t.Setenv("FEEDKIT_DEBUG", "")
	t.Setenv("DEBUG", "")
	if debugLoggingRequested() {
		t.Fatal("expected disabled by default")
	}

	t.Setenv("FEEDKIT_DEBUG", "true")
	if !debugLoggingRequested() {
		t.Fatal("FEEDKIT_DEBUG=true must enable debug logging")
	}

	t.Setenv("FEEDKIT_DEBUG", "")
	t.Setenv("DEBUG", "true")
	if !debugLoggingRequested() {
		t.Fatal("DEBUG=true must enable debug logging")
	}

	t.Setenv("DEBUG", "1")
	if debugLoggingRequested() {
		t.Fatal("only the exact value true enables debug logging")
	}
}
