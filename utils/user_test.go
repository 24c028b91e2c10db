package utils

import "testing"

func TestExtractNameFromEmail(t *testing.T) {
	if got := ExtractNameFromEmail("alice@techmastery.local"); got != "alice" {
		t.Errorf("expected alice, got %q", got)
	}
	if got := ExtractNameFromEmail("no-at-sign"); got != "no-at-sign" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestAvatarOrFallback(t *testing.T) {
	if got := AvatarOrFallback("https://example.com/a.png", "alice"); got != "https://example.com/a.png" {
		t.Errorf("expected stored avatar, got %q", got)
	}
	if got := AvatarOrFallback("", "alice"); got != "https://api.dicebear.com/9.x/adventurer/svg?seed=alice" {
		t.Errorf("unexpected fallback avatar: %q", got)
	}
}
