package di

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/posts"
	"github.com/google/uuid"
)

type recordingPostService struct {
	stubPostService

	created posts.CreatePostRequest
	updated posts.UpdatePostRequest
	post    *posts.Post
}

func (s *recordingPostService) Create(_ context.Context, req posts.CreatePostRequest) (*posts.Post, error) {
	s.created = req
	return s.post, nil
}

func (s *recordingPostService) Update(_ context.Context, req posts.UpdatePostRequest) (*posts.Post, error) {
	s.updated = req
	return s.post, nil
}

func (s *recordingPostService) GetBySlug(context.Context, string) (*posts.Post, error) {
	return s.post, nil
}

func TestPostServiceAdapterCreateMapsFields(t *testing.T) {
	published := time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC)
	svc := &recordingPostService{post: samplePost(published)}
	adapter := newPostServiceAdapter(svc)

	record, err := adapter.Create(context.Background(), interfaces.PostCreateRequest{
		Slug:        "first-post",
		Title:       "First Post",
		Description: "A beginning",
		Body:        "# Hello",
		BodyHTML:    "<h1>Hello</h1>",
		Status:      "published",
		PublishedAt: &published,
		Author:      "ana",
		Tags:        []string{"go"},
		Categories:  []string{"programming"},
		MoreLink:    "second-post",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if svc.created.Slug != "first-post" {
		t.Fatalf("unexpected slug %q", svc.created.Slug)
	}
	if svc.created.Description == nil || *svc.created.Description != "A beginning" {
		t.Fatal("expected description to be forwarded as a pointer")
	}
	if svc.created.MoreLink != "second-post" {
		t.Fatalf("unexpected more link %q", svc.created.MoreLink)
	}
	if len(svc.created.Tags) != 1 || svc.created.Tags[0] != "go" {
		t.Fatalf("unexpected tags %v", svc.created.Tags)
	}

	if record == nil || record.Slug != "first-post" {
		t.Fatalf("unexpected record %+v", record)
	}
	if record.Description != "A beginning" {
		t.Fatalf("expected flattened description, got %q", record.Description)
	}
	if len(record.Tags) != 1 || record.Tags[0] != "go" {
		t.Fatalf("unexpected record tags %v", record.Tags)
	}
}

func TestPostServiceAdapterCreateOmitsEmptyDescription(t *testing.T) {
	svc := &recordingPostService{post: samplePost(time.Now())}
	adapter := newPostServiceAdapter(svc)

	if _, err := adapter.Create(context.Background(), interfaces.PostCreateRequest{
		Slug:  "first-post",
		Title: "First Post",
		Body:  "body",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if svc.created.Description != nil {
		t.Fatal("expected empty description to stay nil")
	}
}

func TestPostServiceAdapterUpdateForwardsPointers(t *testing.T) {
	svc := &recordingPostService{post: samplePost(time.Now())}
	adapter := newPostServiceAdapter(svc)

	id := uuid.New()
	title := "Renamed"
	if _, err := adapter.Update(context.Background(), interfaces.PostUpdateRequest{
		ID:    id,
		Title: &title,
		Tags:  []string{"go", "blogging"},
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if svc.updated.ID != id {
		t.Fatalf("unexpected id %s", svc.updated.ID)
	}
	if svc.updated.Title == nil || *svc.updated.Title != "Renamed" {
		t.Fatal("expected title pointer to be forwarded")
	}
	if svc.updated.Description != nil {
		t.Fatal("expected untouched fields to stay nil")
	}
	if len(svc.updated.Tags) != 2 {
		t.Fatalf("unexpected tags %v", svc.updated.Tags)
	}
}

func samplePost(published time.Time) *posts.Post {
	description := "A beginning"
	return &posts.Post{
		ID:          uuid.New(),
		Slug:        "first-post",
		Title:       "First Post",
		Description: &description,
		Body:        "# Hello",
		BodyHTML:    "<h1>Hello</h1>",
		Status:      "published",
		PublishedAt: &published,
		Author:      "ana",
		Terms: []*posts.Term{
			{Kind: posts.TermKindTag, Slug: "go", Name: "Go"},
		},
	}
}
