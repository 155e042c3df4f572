package interfaces

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PostService abstracts the blog post service so markdown imports can
// provision or update records without depending on internal implementations.
type PostService interface {
	Create(ctx context.Context, req PostCreateRequest) (*PostRecord, error)
	Update(ctx context.Context, req PostUpdateRequest) (*PostRecord, error)
	GetBySlug(ctx context.Context, slug string) (*PostRecord, error)
	List(ctx context.Context, opts PostListOptions) ([]*PostRecord, error)
	Delete(ctx context.Context, req PostDeleteRequest) error
}

// PostListOptions narrows list reads. Zero values mean "no filter".
type PostListOptions struct {
	Status          string
	Tag             string
	Category        string
	IncludeDrafts   bool
	IncludeArchived bool
	Limit           int
	Offset          int
}

// PostCreateRequest captures the details required to create a post record.
type PostCreateRequest struct {
	Slug        string
	Title       string
	Description string
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

// PostUpdateRequest captures the mutable fields for an existing post record.
// Pointer fields are applied only when non-nil.
type PostUpdateRequest struct {
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

// PostDeleteRequest captures the information required to remove a post. When
// HardDelete is false, implementations may opt for soft-deletion where
// supported.
type PostDeleteRequest struct {
	ID         uuid.UUID
	HardDelete bool
}

// PostRecord reflects the persisted state returned by the post service.
type PostRecord struct {
	ID          uuid.UUID
	Slug        string
	Title       string
	Description string
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
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
