package util

import "testing"

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "fallback", "later"); got != "fallback" {
		t.Fatalf("unexpected value %q", got)
	}
	if got := FirstNonEmpty("", ""); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}

func TestCloneAnyMap(t *testing.T) {
	source := map[string]any{"title": "First Post"}
	clone := CloneAnyMap(source)
	clone["title"] = "Changed"
	if source["title"] != "First Post" {
		t.Fatal("expected clone to be independent of source")
	}

	fromStrings := CloneAnyMap(map[string]string{"author": "ana"})
	if fromStrings["author"] != "ana" {
		t.Fatalf("unexpected map %v", fromStrings)
	}

	if got := CloneAnyMap(42); len(got) != 0 {
		t.Fatalf("expected empty map for unsupported input, got %v", got)
	}
}
