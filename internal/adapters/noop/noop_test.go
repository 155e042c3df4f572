package noop

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestCacheAdapterIsInert(t *testing.T) {
	cache := Cache()
	ctx := context.Background()

	if err := cache.Set(ctx, "key", "value", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	value, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil value, got %v", value)
	}

	if err := cache.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
}

func TestTemplateAdapterEchoesInput(t *testing.T) {
	renderer := Template()

	var buf strings.Builder
	result, err := renderer.Render("post", nil, &buf)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if result != "post" || buf.String() != "post" {
		t.Fatalf("unexpected render output %q / %q", result, buf.String())
	}

	inline, err := renderer.RenderString("{{.Title}}", nil)
	if err != nil {
		t.Fatalf("RenderString: %v", err)
	}
	if inline != "{{.Title}}" {
		t.Fatalf("unexpected inline output %q", inline)
	}
}
