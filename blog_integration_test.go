package blog_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/lint"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/pkg/testsupport"
)

const firstPostMarkdown = `---
title: "Hello World"
date: 2024-05-14T10:00:00Z
author: ana
description: "Kicking off the blog."
tags:
  - go
  - blogging
categories:
  - engineering
more_link: second-post
---

Welcome to the blog. This opening entry links onward to the follow-up.
`

const secondPostMarkdown = `---
title: "Second Post"
date: 2024-06-02T09:30:00Z
author: ana
description: "The follow-up entry."
tags:
  - go
categories:
  - engineering
more_link: hello-world
---

The follow-up entry, linking back to where it all started.
`

func writeCorpus(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"hello-world.md": firstPostMarkdown,
		"second-post.md": secondPostMarkdown,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func newSiteConfig(contentDir, outputDir string) blog.Config {
	cfg := blog.DefaultConfig()
	cfg.Site.Title = "Field Notes"
	cfg.Site.Description = "Notes from the field"
	cfg.Site.BaseURL = "https://blog.example.com"
	cfg.Site.Author = "ana"

	cfg.Features.Markdown = true
	cfg.Features.Lint = true
	cfg.Features.Generator = true

	cfg.Markdown.Enabled = true
	cfg.Markdown.ContentDir = contentDir
	cfg.Lint.Enabled = true
	cfg.Generator.Enabled = true
	cfg.Generator.OutputDir = outputDir
	cfg.Generator.GenerateRobots = true
	return cfg
}

func TestModuleMarkdownImportLintAndBuildWithBun(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := testsupport.NewBunDB(t)
	contentDir := t.TempDir()
	outputDir := t.TempDir()
	writeCorpus(t, contentDir)

	module, err := blog.New(newSiteConfig(contentDir, outputDir), di.WithBunDB(db))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	md, err := module.Markdown()
	if err != nil {
		t.Fatalf("markdown service: %v", err)
	}

	imported, err := md.ImportDirectory(ctx, ".", interfaces.ImportOptions{})
	if err != nil {
		t.Fatalf("import directory: %v", err)
	}
	if len(imported.Errors) != 0 {
		t.Fatalf("unexpected import errors: %v", imported.Errors)
	}
	if got := len(imported.CreatedPostIDs); got != 2 {
		t.Fatalf("expected 2 created posts, got %d", got)
	}

	post, err := module.Posts().GetBySlug(ctx, "hello-world")
	if err != nil {
		t.Fatalf("get post by slug: %v", err)
	}
	if post.Title != "Hello World" {
		t.Fatalf("expected imported title, got %q", post.Title)
	}
	if post.Status != "published" {
		t.Fatalf("expected published status, got %q", post.Status)
	}
	if post.Description == nil || *post.Description != "Kicking off the blog." {
		t.Fatalf("expected front matter description, got %v", post.Description)
	}
	if post.MoreLink == nil || *post.MoreLink != "second-post" {
		t.Fatalf("expected more_link to follow-up post, got %v", post.MoreLink)
	}
	if post.Author != "ana" {
		t.Fatalf("expected front matter author, got %q", post.Author)
	}
	if tags := post.Tags(); len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", tags)
	}
	if cats := post.Categories(); len(cats) != 1 || cats[0] != "engineering" {
		t.Fatalf("expected engineering category, got %v", cats)
	}
	if !strings.Contains(post.BodyHTML, "<p>") {
		t.Fatalf("expected rendered HTML body, got %q", post.BodyHTML)
	}

	linter, err := module.Lint()
	if err != nil {
		t.Fatalf("lint service: %v", err)
	}
	report, err := linter.LintDirectory(ctx, ".", lint.Options{})
	if err != nil {
		t.Fatalf("lint directory: %v", err)
	}
	if len(report.Files) != 2 {
		t.Fatalf("expected 2 linted files, got %v", report.Files)
	}
	if !report.Clean() {
		t.Fatalf("expected clean corpus, got issues: %v", report.Issues)
	}

	gen, err := module.Generator()
	if err != nil {
		t.Fatalf("generator service: %v", err)
	}
	result, err := gen.Build(ctx, blog.BuildOptions{})
	if err != nil {
		t.Fatalf("build site: %v", err)
	}
	if result.Pages == 0 || result.Rendered == 0 {
		t.Fatalf("expected rendered pages, got %+v", result)
	}

	wantFiles := []string{
		"index.html",
		filepath.Join("2024", "05", "hello-world", "index.html"),
		filepath.Join("2024", "06", "second-post", "index.html"),
		filepath.Join("tags", "go", "index.html"),
		filepath.Join("categories", "engineering", "index.html"),
		"sitemap.xml",
		"robots.txt",
		"rss.xml",
		"atom.xml",
	}
	for _, rel := range wantFiles {
		full := filepath.Join(outputDir, rel)
		if _, err := os.Stat(full); err != nil {
			t.Fatalf("expected build artifact %s: %v", rel, err)
		}
	}

	home, err := os.ReadFile(filepath.Join(outputDir, "index.html"))
	if err != nil {
		t.Fatalf("read home page: %v", err)
	}
	if !strings.Contains(string(home), "Hello World") {
		t.Fatalf("expected home page to list the first post")
	}
}

func TestModuleSyncUpdatesExistingPosts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := testsupport.NewBunDB(t)
	contentDir := t.TempDir()
	outputDir := t.TempDir()
	writeCorpus(t, contentDir)

	module, err := blog.New(newSiteConfig(contentDir, outputDir), di.WithBunDB(db))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	md, err := module.Markdown()
	if err != nil {
		t.Fatalf("markdown service: %v", err)
	}

	if _, err := md.ImportDirectory(ctx, ".", interfaces.ImportOptions{}); err != nil {
		t.Fatalf("seed import: %v", err)
	}

	revised := strings.Replace(firstPostMarkdown, "Hello World", "Hello Again", 1)
	if err := os.WriteFile(filepath.Join(contentDir, "hello-world.md"), []byte(revised), 0o644); err != nil {
		t.Fatalf("rewrite post: %v", err)
	}
	if err := os.Remove(filepath.Join(contentDir, "second-post.md")); err != nil {
		t.Fatalf("remove post: %v", err)
	}

	synced, err := md.Sync(ctx, ".", interfaces.SyncOptions{
		UpdateExisting: true,
		DeleteOrphaned: true,
	})
	if err != nil {
		t.Fatalf("sync directory: %v", err)
	}
	if len(synced.Errors) != 0 {
		t.Fatalf("unexpected sync errors: %v", synced.Errors)
	}
	if synced.Updated != 1 {
		t.Fatalf("expected 1 updated post, got %+v", synced)
	}
	if synced.Deleted != 1 {
		t.Fatalf("expected 1 deleted post, got %+v", synced)
	}

	post, err := module.Posts().GetBySlug(ctx, "hello-world")
	if err != nil {
		t.Fatalf("get post by slug: %v", err)
	}
	if post.Title != "Hello Again" {
		t.Fatalf("expected updated title, got %q", post.Title)
	}
}
