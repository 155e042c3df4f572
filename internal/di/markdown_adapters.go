package di

import (
	"context"

	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/posts"
)

// postServiceAdapter exposes the post service through the narrow contract the
// markdown importer depends on, translating between record shapes.
type postServiceAdapter struct {
	svc posts.Service
}

func newPostServiceAdapter(svc posts.Service) interfaces.PostService {
	return &postServiceAdapter{svc: svc}
}

func (a *postServiceAdapter) Create(ctx context.Context, req interfaces.PostCreateRequest) (*interfaces.PostRecord, error) {
	var description *string
	if req.Description != "" {
		description = &req.Description
	}

	post, err := a.svc.Create(ctx, posts.CreatePostRequest{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: description,
		Body:        req.Body,
		BodyHTML:    req.BodyHTML,
		Status:      req.Status,
		PublishedAt: req.PublishedAt,
		Author:      req.Author,
		Tags:        req.Tags,
		Categories:  req.Categories,
		MoreLink:    req.MoreLink,
		Permalink:   req.Permalink,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return nil, err
	}
	return toPostRecord(post), nil
}

func (a *postServiceAdapter) Update(ctx context.Context, req interfaces.PostUpdateRequest) (*interfaces.PostRecord, error) {
	post, err := a.svc.Update(ctx, posts.UpdatePostRequest{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		BodyHTML:    req.BodyHTML,
		Status:      req.Status,
		PublishedAt: req.PublishedAt,
		Author:      req.Author,
		Tags:        req.Tags,
		Categories:  req.Categories,
		MoreLink:    req.MoreLink,
		Permalink:   req.Permalink,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return nil, err
	}
	return toPostRecord(post), nil
}

func (a *postServiceAdapter) GetBySlug(ctx context.Context, slug string) (*interfaces.PostRecord, error) {
	post, err := a.svc.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return toPostRecord(post), nil
}

func (a *postServiceAdapter) List(ctx context.Context, opts interfaces.PostListOptions) ([]*interfaces.PostRecord, error) {
	results, err := a.svc.List(ctx, posts.ListOptions{
		Status:          opts.Status,
		Tag:             opts.Tag,
		Category:        opts.Category,
		IncludeDrafts:   opts.IncludeDrafts,
		IncludeArchived: opts.IncludeArchived,
		Limit:           opts.Limit,
		Offset:          opts.Offset,
	})
	if err != nil {
		return nil, err
	}

	records := make([]*interfaces.PostRecord, 0, len(results))
	for _, post := range results {
		records = append(records, toPostRecord(post))
	}
	return records, nil
}

func (a *postServiceAdapter) Delete(ctx context.Context, req interfaces.PostDeleteRequest) error {
	return a.svc.Delete(ctx, posts.DeletePostRequest{
		ID:         req.ID,
		HardDelete: req.HardDelete,
	})
}

func toPostRecord(post *posts.Post) *interfaces.PostRecord {
	if post == nil {
		return nil
	}

	record := &interfaces.PostRecord{
		ID:          post.ID,
		Slug:        post.Slug,
		Title:       post.Title,
		Body:        post.Body,
		BodyHTML:    post.BodyHTML,
		Status:      post.Status,
		PublishedAt: post.PublishedAt,
		Author:      post.Author,
		Tags:        post.Tags(),
		Categories:  post.Categories(),
		Metadata:    post.Metadata,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
	if post.Description != nil {
		record.Description = *post.Description
	}
	if post.MoreLink != nil {
		record.MoreLink = *post.MoreLink
	}
	if post.Permalink != nil {
		record.Permalink = *post.Permalink
	}
	return record
}
