package permalinks

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blog/posts"
)

func newSiteResolver(tb testing.TB) *Resolver {
	tb.Helper()

	resolver, err := NewResolver(DefaultRouteConfig("https://blog.example.com"), "")
	if err != nil {
		tb.Fatalf("NewResolver: %v", err)
	}
	return resolver
}

func TestPostURLUsesYearMonthSlugLayout(t *testing.T) {
	resolver := newSiteResolver(t)

	published := time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)
	url, err := resolver.PostURL(&posts.Post{
		Slug:        "scheduling-notes",
		PublishedAt: &published,
	})
	if err != nil {
		t.Fatalf("PostURL: %v", err)
	}
	if !strings.Contains(url, "/2024/03/scheduling-notes/") {
		t.Fatalf("unexpected post url %q", url)
	}
	if !strings.HasPrefix(url, "https://blog.example.com") {
		t.Fatalf("expected base url prefix, got %q", url)
	}
}

func TestPostURLPrefersExplicitPermalink(t *testing.T) {
	resolver := newSiteResolver(t)

	permalink := "/legacy/path/"
	url, err := resolver.PostURL(&posts.Post{
		Slug:      "moved-post",
		Permalink: &permalink,
	})
	if err != nil {
		t.Fatalf("PostURL: %v", err)
	}
	if url != "https://blog.example.com/legacy/path/" {
		t.Fatalf("unexpected permalink url %q", url)
	}
}

func TestPostURLFallsBackToCreatedAt(t *testing.T) {
	resolver := newSiteResolver(t)

	url, err := resolver.PostURL(&posts.Post{
		Slug:      "undated",
		CreatedAt: time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("PostURL: %v", err)
	}
	if !strings.Contains(url, "/2023/11/undated/") {
		t.Fatalf("unexpected fallback url %q", url)
	}
}

func TestTaxonomyAndArchiveURLs(t *testing.T) {
	resolver := newSiteResolver(t)

	tag, err := resolver.TagURL("go")
	if err != nil || !strings.Contains(tag, "/tags/go/") {
		t.Fatalf("TagURL: %q %v", tag, err)
	}

	category, err := resolver.CategoryURL("programming")
	if err != nil || !strings.Contains(category, "/categories/programming/") {
		t.Fatalf("CategoryURL: %q %v", category, err)
	}

	archive, err := resolver.ArchiveURL(2024)
	if err != nil || !strings.Contains(archive, "/2024/") {
		t.Fatalf("ArchiveURL: %q %v", archive, err)
	}
}

func TestPostPathStripsHost(t *testing.T) {
	resolver := newSiteResolver(t)

	published := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	path, err := resolver.PostPath(&posts.Post{Slug: "hello", PublishedAt: &published})
	if err != nil {
		t.Fatalf("PostPath: %v", err)
	}
	if !strings.HasPrefix(path, "/2024/03/hello") {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestNewResolverRejectsMissingConfig(t *testing.T) {
	if _, err := NewResolver(nil, ""); !errors.Is(err, ErrRouteConfigRequired) {
		t.Fatalf("expected ErrRouteConfigRequired, got %v", err)
	}
}
