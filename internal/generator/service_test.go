package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blog/internal/permalinks"
	"github.com/goliatone/go-blog/posts"
	"github.com/google/uuid"
)

type stubPosts struct {
	records []*posts.Post
	listErr error
}

func (s *stubPosts) Create(context.Context, posts.CreatePostRequest) (*posts.Post, error) {
	return nil, posts.ErrNotFound
}

func (s *stubPosts) Get(context.Context, uuid.UUID) (*posts.Post, error) {
	return nil, posts.ErrNotFound
}

func (s *stubPosts) GetBySlug(context.Context, string) (*posts.Post, error) {
	return nil, posts.ErrNotFound
}

func (s *stubPosts) List(context.Context, posts.ListOptions) ([]*posts.Post, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.records, nil
}

func (s *stubPosts) Update(context.Context, posts.UpdatePostRequest) (*posts.Post, error) {
	return nil, posts.ErrNotFound
}

func (s *stubPosts) Delete(context.Context, posts.DeletePostRequest) error {
	return posts.ErrNotFound
}

func (s *stubPosts) Publish(context.Context, posts.PublishPostRequest) (*posts.Post, error) {
	return nil, posts.ErrNotFound
}

func (s *stubPosts) Archive(context.Context, uuid.UUID) (*posts.Post, error) {
	return nil, posts.ErrNotFound
}

func (s *stubPosts) Terms(context.Context, string) ([]*posts.Term, error) {
	return nil, nil
}

func fixturePosts(tb testing.TB) []*posts.Post {
	tb.Helper()

	first := time.Date(2024, time.March, 14, 15, 9, 26, 0, time.UTC)
	second := time.Date(2023, time.November, 2, 9, 0, 0, 0, time.UTC)
	description := "Channels and goroutines in anger."

	return []*posts.Post{
		{
			ID:          uuid.New(),
			Slug:        "first-post",
			Title:       "First Post",
			Description: &description,
			Body:        "# First Post",
			BodyHTML:    "<h1>First Post</h1><p>Hello readers.</p>",
			Status:      "published",
			Author:      "Jane Doe",
			PublishedAt: &first,
			CreatedAt:   first,
			UpdatedAt:   first,
			Terms: []*posts.Term{
				{ID: uuid.New(), Kind: posts.TermKindTag, Slug: "go", Name: "Go"},
				{ID: uuid.New(), Kind: posts.TermKindCategory, Slug: "programming", Name: "Programming"},
			},
		},
		{
			ID:          uuid.New(),
			Slug:        "older-post",
			Title:       "Older Post",
			Body:        "# Older Post",
			BodyHTML:    "<h1>Older Post</h1>",
			Status:      "published",
			Author:      "Jane Doe",
			PublishedAt: &second,
			CreatedAt:   second,
			UpdatedAt:   second,
			Terms: []*posts.Term{
				{ID: uuid.New(), Kind: posts.TermKindTag, Slug: "go", Name: "Go"},
			},
		},
	}
}

func newTestService(tb testing.TB, mutate func(cfg *Config)) (Service, *memoryWriter) {
	tb.Helper()

	resolver, err := permalinks.NewResolver(permalinks.DefaultRouteConfig("https://blog.example.com"), "")
	if err != nil {
		tb.Fatalf("new resolver: %v", err)
	}

	renderer, err := NewHTMLRenderer()
	if err != nil {
		tb.Fatalf("new renderer: %v", err)
	}

	cfg := Config{
		OutputDir:       "public",
		BaseURL:         "https://blog.example.com",
		SiteTitle:       "Example Blog",
		SiteDescription: "Notes from the field",
		SiteAuthor:      "Jane Doe",
		Language:        "en",
		GenerateSitemap: true,
		GenerateRobots:  true,
		GenerateFeeds:   true,
		PostsPerPage:    1,
		Workers:         2,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	writer := newMemoryWriter()
	svc, err := NewService(cfg, Dependencies{
		Posts:      &stubPosts{records: fixturePosts(tb)},
		Renderer:   renderer,
		Permalinks: resolver,
		Writer:     writer,
		Clock: func() time.Time {
			return time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC)
		},
	})
	if err != nil {
		tb.Fatalf("new service: %v", err)
	}
	return svc, writer
}

func TestBuildRendersPostsAndListings(t *testing.T) {
	svc, writer := newTestService(t, nil)

	result, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// 2 posts, 2 index pages (one post per page), 1 tag, 1 category,
	// 2 year archives.
	if result.Pages != 8 {
		t.Fatalf("expected 8 pages, got %d", result.Pages)
	}
	if result.Rendered != 8 {
		t.Fatalf("expected 8 rendered pages, got %d", result.Rendered)
	}

	expected := []string{
		"public/2024/03/first-post/index.html",
		"public/2023/11/older-post/index.html",
		"public/index.html",
		"public/page/2/index.html",
		"public/tags/go/index.html",
		"public/categories/programming/index.html",
		"public/2024/index.html",
		"public/2023/index.html",
		"public/sitemap.xml",
		"public/robots.txt",
		"public/rss.xml",
		"public/atom.xml",
		"public/.generator-manifest.json",
	}
	for _, path := range expected {
		if _, err := writer.ReadFile(context.Background(), path); err != nil {
			t.Errorf("expected artifact %s: %v", path, err)
		}
	}

	page, err := writer.ReadFile(context.Background(), "public/2024/03/first-post/index.html")
	if err != nil {
		t.Fatalf("read post page: %v", err)
	}
	html := string(page)
	if !strings.Contains(html, "<h1>First Post</h1>") {
		t.Errorf("post page missing body html: %s", html)
	}
	if !strings.Contains(html, "Example Blog") {
		t.Errorf("post page missing site title")
	}

	index, err := writer.ReadFile(context.Background(), "public/index.html")
	if err != nil {
		t.Fatalf("read index page: %v", err)
	}
	if !strings.Contains(string(index), `href="/2024/03/first-post/"`) {
		t.Errorf("index page missing post link: %s", index)
	}
	if !strings.Contains(string(index), "Page 1 of 2") {
		t.Errorf("index page missing pagination: %s", index)
	}
}

func TestBuildSiteArtifacts(t *testing.T) {
	svc, writer := newTestService(t, nil)

	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("build: %v", err)
	}

	sitemap, err := writer.ReadFile(context.Background(), "public/sitemap.xml")
	if err != nil {
		t.Fatalf("read sitemap: %v", err)
	}
	if !strings.Contains(string(sitemap), "<loc>https://blog.example.com/2024/03/first-post/</loc>") {
		t.Errorf("sitemap missing post url: %s", sitemap)
	}

	robots, err := writer.ReadFile(context.Background(), "public/robots.txt")
	if err != nil {
		t.Fatalf("read robots: %v", err)
	}
	if !strings.Contains(string(robots), "Sitemap: https://blog.example.com/sitemap.xml") {
		t.Errorf("robots missing sitemap line: %s", robots)
	}

	rss, err := writer.ReadFile(context.Background(), "public/rss.xml")
	if err != nil {
		t.Fatalf("read rss: %v", err)
	}
	if !strings.Contains(string(rss), "<title>First Post</title>") {
		t.Errorf("rss missing item: %s", rss)
	}
	if !strings.Contains(string(rss), "<link>https://blog.example.com/2024/03/first-post/</link>") {
		t.Errorf("rss missing permalink: %s", rss)
	}

	atom, err := writer.ReadFile(context.Background(), "public/atom.xml")
	if err != nil {
		t.Fatalf("read atom: %v", err)
	}
	if !strings.Contains(string(atom), `<feed xmlns="http://www.w3.org/2005/Atom">`) {
		t.Errorf("atom missing namespace: %s", atom)
	}
	if !strings.Contains(string(atom), "<author><name>Jane Doe</name></author>") {
		t.Errorf("atom missing author: %s", atom)
	}
}

func TestBuildDryRunWritesNothing(t *testing.T) {
	svc, writer := newTestService(t, nil)

	result, err := svc.Build(context.Background(), BuildOptions{DryRun: true})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result.Rendered == 0 {
		t.Fatal("dry run should still render pages")
	}
	if paths := writer.paths(); len(paths) != 0 {
		t.Fatalf("dry run wrote artifacts: %v", paths)
	}
}

func TestBuildIncrementalSkipsUnchanged(t *testing.T) {
	svc, _ := newTestService(t, func(cfg *Config) {
		cfg.Incremental = true
	})

	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("first build: %v", err)
	}

	second, err := svc.Build(context.Background(), BuildOptions{})
	if err != nil {
		t.Fatalf("second build: %v", err)
	}
	if second.Rendered != 0 {
		t.Fatalf("expected no re-renders, got %d", second.Rendered)
	}
	if second.Skipped != second.Pages {
		t.Fatalf("expected all %d pages skipped, got %d", second.Pages, second.Skipped)
	}

	forced, err := svc.Build(context.Background(), BuildOptions{Force: true})
	if err != nil {
		t.Fatalf("forced build: %v", err)
	}
	if forced.Rendered != forced.Pages {
		t.Fatalf("force should re-render everything, rendered %d of %d", forced.Rendered, forced.Pages)
	}
}

func TestCleanRemovesOutput(t *testing.T) {
	svc, writer := newTestService(t, nil)

	if _, err := svc.Build(context.Background(), BuildOptions{}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := svc.Clean(context.Background()); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if paths := writer.paths(); len(paths) != 0 {
		t.Fatalf("clean left artifacts: %v", paths)
	}
}

func TestDisabledService(t *testing.T) {
	svc := NewDisabledService()

	if _, err := svc.Build(context.Background(), BuildOptions{}); !errors.Is(err, ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
	if err := svc.Clean(context.Background()); !errors.Is(err, ErrServiceDisabled) {
		t.Fatalf("expected ErrServiceDisabled, got %v", err)
	}
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	renderer, err := NewHTMLRenderer()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	resolver, err := permalinks.NewResolver(permalinks.DefaultRouteConfig("https://blog.example.com"), "")
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}

	cases := []struct {
		name string
		cfg  Config
		deps Dependencies
		want error
	}{
		{
			name: "missing posts",
			cfg:  Config{OutputDir: "public"},
			deps: Dependencies{Renderer: renderer, Permalinks: resolver},
			want: ErrPostsRequired,
		},
		{
			name: "missing renderer",
			cfg:  Config{OutputDir: "public"},
			deps: Dependencies{Posts: &stubPosts{}, Permalinks: resolver},
			want: ErrRendererRequired,
		},
		{
			name: "missing permalinks",
			cfg:  Config{OutputDir: "public"},
			deps: Dependencies{Posts: &stubPosts{}, Renderer: renderer},
			want: ErrPermalinksRequired,
		},
		{
			name: "missing output dir",
			cfg:  Config{},
			deps: Dependencies{Posts: &stubPosts{}, Renderer: renderer, Permalinks: resolver},
			want: ErrOutputDirRequired,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewService(tc.cfg, tc.deps); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
