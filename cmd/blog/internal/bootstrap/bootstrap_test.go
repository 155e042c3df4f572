package bootstrap

import (
	"testing"
)

func TestBuildModuleAppliesOptions(t *testing.T) {
	contentDir := t.TempDir()

	module, err := BuildModule(Options{
		ContentDir:    contentDir,
		Pattern:       "*.markdown",
		Recursive:     true,
		DefaultAuthor: "ana",
		SiteTitle:     "Example Blog",
		BaseURL:       "https://blog.example.com",
		OutputDir:     t.TempDir(),
		Markdown:      true,
		Lint:          true,
		Generator:     true,
		LogLevel:      "debug",
	})
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}

	cfg := module.Blog.Container().Config
	if cfg.Markdown.ContentDir != contentDir {
		t.Fatalf("unexpected content dir %q", cfg.Markdown.ContentDir)
	}
	if cfg.Markdown.Pattern != "*.markdown" {
		t.Fatalf("unexpected pattern %q", cfg.Markdown.Pattern)
	}
	if cfg.Markdown.DefaultAuthor != "ana" {
		t.Fatalf("unexpected author %q", cfg.Markdown.DefaultAuthor)
	}
	if !cfg.Features.Markdown || !cfg.Features.Lint || !cfg.Features.Generator {
		t.Fatalf("expected features to be enabled, got %+v", cfg.Features)
	}
	if cfg.Site.Title != "Example Blog" || cfg.Site.BaseURL != "https://blog.example.com" {
		t.Fatalf("unexpected site config %+v", cfg.Site)
	}
	if module.Logger == nil {
		t.Fatal("expected a logger provider")
	}
}

func TestBuildModuleRejectsInvalidBaseURL(t *testing.T) {
	if _, err := BuildModule(Options{
		ContentDir: t.TempDir(),
		BaseURL:    "not-a-url",
	}); err == nil {
		t.Fatal("expected invalid base URL to fail")
	}
}

func TestSplitList(t *testing.T) {
	values := SplitList(" a, b ,,c ")
	if len(values) != 3 || values[0] != "a" || values[1] != "b" || values[2] != "c" {
		t.Fatalf("unexpected values %v", values)
	}
	if SplitList("  ") != nil {
		t.Fatal("expected nil for blank input")
	}
}
