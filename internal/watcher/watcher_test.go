package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDebouncerCoalescesEventsByPath(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.run(ctx)

	d.add(ChangeEvent{Op: "created", Path: "a.md"})
	d.add(ChangeEvent{Op: "modified", Path: "a.md"})
	d.add(ChangeEvent{Op: "modified", Path: "b.md"})

	select {
	case batch := <-d.output:
		if len(batch) != 2 {
			t.Fatalf("expected 2 coalesced events, got %d: %v", len(batch), batch)
		}
		if batch[0].Path != "a.md" || batch[0].Op != "modified" {
			t.Fatalf("expected newest event per path, got %+v", batch[0])
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced batch")
	}
}

func TestDebouncerResetsTimerOnNewEvents(t *testing.T) {
	d := newDebouncer(50 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go d.run(ctx)

	d.add(ChangeEvent{Op: "modified", Path: "a.md"})
	time.Sleep(20 * time.Millisecond)
	d.add(ChangeEvent{Op: "modified", Path: "a.md"})

	select {
	case batch := <-d.output:
		if len(batch) != 1 {
			t.Fatalf("expected a single coalesced event, got %d", len(batch))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced batch")
	}
}

func TestIsMarkdown(t *testing.T) {
	cases := map[string]bool{
		"post.md":        true,
		"post.markdown":  true,
		"POST.MD":        true,
		"notes.txt":      false,
		"archive.tar.gz": false,
	}
	for path, want := range cases {
		if got := isMarkdown(path); got != want {
			t.Errorf("isMarkdown(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestNewRequiresDirectoryAndHandler(t *testing.T) {
	if _, err := New(Config{}, func(context.Context, []ChangeEvent) error { return nil }); err != ErrDirectoryRequired {
		t.Fatalf("expected ErrDirectoryRequired, got %v", err)
	}
	if _, err := New(Config{Directory: t.TempDir()}, nil); err == nil {
		t.Fatal("expected error for nil handler")
	}
}

func TestWatcherDispatchesMarkdownChanges(t *testing.T) {
	dir := t.TempDir()
	batches := make(chan []ChangeEvent, 4)

	w, err := New(Config{Directory: dir, Debounce: 30 * time.Millisecond}, func(_ context.Context, events []ChangeEvent) error {
		batches <- events
		return nil
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	path := filepath.Join(dir, "draft.md")
	if err := os.WriteFile(path, []byte("---\ntitle: Draft\n---\nbody"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	select {
	case events := <-batches:
		if len(events) == 0 {
			t.Fatal("expected at least one change event")
		}
		if events[0].Path != path {
			t.Fatalf("unexpected event path: %s", events[0].Path)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change events")
	}
}

func TestWatcherIgnoresNonMarkdownFiles(t *testing.T) {
	dir := t.TempDir()
	batches := make(chan []ChangeEvent, 4)

	w, err := New(Config{Directory: dir, Debounce: 30 * time.Millisecond}, func(_ context.Context, events []ChangeEvent) error {
		batches <- events
		return nil
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("start watcher: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	select {
	case events := <-batches:
		t.Fatalf("expected no events for non-markdown files, got %v", events)
	case <-time.After(200 * time.Millisecond):
	}
}
