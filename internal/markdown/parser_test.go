package markdown

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestParseFrontMatterExtractsBlogKeys(t *testing.T) {
	source := []byte(`---
title: "Scheduling Notes"
slug: "scheduling-notes"
date: 2024-03-14T15:09:26Z
draft: true
tags:
  - go
  - runtime
categories:
  - programming
author: "Jane Doe"
description: "Notes on the scheduler."
more_link: "first-post"
url: "/2024/03/scheduling-notes/"
series: "scheduler-internals"
---
# Heading

Body text.
`)

	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if meta.Title != "Scheduling Notes" {
		t.Fatalf("unexpected title %q", meta.Title)
	}
	if meta.Slug != "scheduling-notes" {
		t.Fatalf("unexpected slug %q", meta.Slug)
	}
	want := time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC)
	if !meta.Date.Equal(want) {
		t.Fatalf("unexpected date %v", meta.Date)
	}
	if !meta.Draft {
		t.Fatalf("expected draft to be true")
	}
	if len(meta.Tags) != 2 || meta.Tags[0] != "go" {
		t.Fatalf("unexpected tags %v", meta.Tags)
	}
	if len(meta.Categories) != 1 || meta.Categories[0] != "programming" {
		t.Fatalf("unexpected categories %v", meta.Categories)
	}
	if meta.MoreLink != "first-post" {
		t.Fatalf("unexpected more_link %q", meta.MoreLink)
	}
	if meta.URL != "/2024/03/scheduling-notes/" {
		t.Fatalf("unexpected url %q", meta.URL)
	}
	if meta.Custom["series"] != "scheduler-internals" {
		t.Fatalf("expected custom series key, got %v", meta.Custom)
	}
	if _, ok := meta.Raw["draft"]; !ok {
		t.Fatalf("expected draft recorded in raw frontmatter")
	}
	if !strings.Contains(string(body), "# Heading") {
		t.Fatalf("body lost heading: %q", string(body))
	}
	if strings.Contains(string(body), "title:") {
		t.Fatalf("frontmatter leaked into body: %q", string(body))
	}
}

func TestParseFrontMatterRejectsMalformedYAML(t *testing.T) {
	source := []byte("---\ntitle: [unclosed\n---\nbody\n")
	if _, _, err := ParseFrontMatter(source); err == nil {
		t.Fatalf("expected error for malformed frontmatter")
	}
}

func TestParseFrontMatterMissingBlockIsError(t *testing.T) {
	source := []byte("# Just a heading\n\nNo metadata at all.\n")
	if _, _, err := ParseFrontMatter(source); err == nil {
		t.Fatalf("expected error for source without a frontmatter block")
	}
}

func TestParseFrontMatterDateLayouts(t *testing.T) {
	cases := map[string]time.Time{
		"2024-03-14T15:09:26Z": time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC),
		"2024-03-14T15:09:26":  time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC),
		"2024-03-14 15:09:26":  time.Date(2024, 3, 14, 15, 9, 26, 0, time.UTC),
		"2024-03-14":           time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	for value, want := range cases {
		source := []byte("---\ntitle: Dated\ndate: " + value + "\n---\nBody.\n")
		meta, _, err := ParseFrontMatter(source)
		if err != nil {
			t.Fatalf("ParseFrontMatter(%q): %v", value, err)
		}
		if !meta.Date.Equal(want) {
			t.Fatalf("date %q parsed as %v, want %v", value, meta.Date, want)
		}
	}
}

func TestParseFrontMatterKeepsUnparsableDateRaw(t *testing.T) {
	source := []byte("---\ntitle: Legacy\ndate: March 5, 2020\n---\nBody.\n")
	meta, _, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if !meta.Date.IsZero() {
		t.Fatalf("expected zero date for unparsable value, got %v", meta.Date)
	}
	if raw, _ := meta.Raw["date"].(string); raw != "March 5, 2020" {
		t.Fatalf("expected original date string preserved, got %v", meta.Raw["date"])
	}
}

func TestGoldmarkParserRendersGFM(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Title\n\n| a | b |\n| - | - |\n| 1 | 2 |\n\n~~gone~~\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	rendered := string(html)
	if !strings.Contains(rendered, `<h1 id="title">`) {
		t.Fatalf("expected auto heading id, got %q", rendered)
	}
	if !strings.Contains(rendered, "<table>") {
		t.Fatalf("expected table rendering, got %q", rendered)
	}
	if !strings.Contains(rendered, "<del>gone</del>") {
		t.Fatalf("expected strikethrough rendering, got %q", rendered)
	}
}

func TestGoldmarkParserSafeModeStripsRawHTML(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	unsafe, err := parser.Parse([]byte("<span>inline</span>\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(string(unsafe), "<span>") {
		t.Fatalf("expected raw HTML passthrough by default, got %q", string(unsafe))
	}

	safe, err := parser.ParseWithOptions([]byte("<span>inline</span>\n"), interfaces.ParseOptions{SafeMode: true})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if strings.Contains(string(safe), "<span>") {
		t.Fatalf("expected raw HTML suppressed in safe mode, got %q", string(safe))
	}
}
