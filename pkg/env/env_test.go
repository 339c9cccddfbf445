package env

import "testing"

func TestGetPrefersFloristPrefix(t *testing.T) {
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("FLORIST_LOG_FORMAT", "console")

	if got := Get("LOG_FORMAT", "text"); got != "console" {
		t.Fatalf("expected prefixed value, got %q", got)
	}
}

func TestGetFallsBackToBareKeyThenDefault(t *testing.T) {
	t.Setenv("FLORIST_LOG_FORMAT", "")
	t.Setenv("LOG_FORMAT", "json")
	if got := Get("LOG_FORMAT", "text"); got != "json" {
		t.Fatalf("expected bare value, got %q", got)
	}

	t.Setenv("LOG_FORMAT", "")
	if got := Get("LOG_FORMAT", "text"); got != "text" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
