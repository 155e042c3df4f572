package posts

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service exposes blog post management use cases.
type Service interface {
	Create(ctx context.Context, req CreatePostRequest) (*Post, error)
	Get(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context, opts ListOptions) ([]*Post, error)
	Update(ctx context.Context, req UpdatePostRequest) (*Post, error)
	Delete(ctx context.Context, req DeletePostRequest) error
	Publish(ctx context.Context, req PublishPostRequest) (*Post, error)
	Archive(ctx context.Context, id uuid.UUID) (*Post, error)
	Terms(ctx context.Context, kind string) ([]*Term, error)
}

// ListOptions narrows list reads. Zero values mean "no filter". Results are
// ordered newest first by published date, falling back to creation time for
// drafts.
type ListOptions struct {
	Status          string
	Tag             string
	Category        string
	Author          string
	IncludeDrafts   bool
	IncludeArchived bool
	Limit           int
	Offset          int
}

// CreatePostRequest captures the information required to create a post.
type CreatePostRequest struct {
	Slug        string
	Title       string
	Description *string
	Body        string
	BodyHTML    string
	Status      string
	PublishedAt *time.Time
	Author      string
	Tags        []string
	Categories  []string
	MoreLink    string
	Permalink   string
	Metadata    map[string]any
}

// UpdatePostRequest captures mutable fields for an existing post. Pointer
// fields are applied only when non-nil; Tags and Categories replace the
// current term sets when non-nil.
type UpdatePostRequest struct {
	ID          uuid.UUID
	Title       *string
	Description *string
	Body        *string
	BodyHTML    *string
	Status      *string
	PublishedAt *time.Time
	Author      *string
	Tags        []string
	Categories  []string
	MoreLink    *string
	Permalink   *string
	Metadata    map[string]any
}

// DeletePostRequest captures the information required to remove a post. When
// HardDelete is false the record is soft-deleted and excluded from reads.
type DeletePostRequest struct {
	ID         uuid.UUID
	HardDelete bool
}

// PublishPostRequest moves a post into the published state. When PublishedAt
// is nil the current time is used.
type PublishPostRequest struct {
	ID          uuid.UUID
	PublishedAt *time.Time
}
