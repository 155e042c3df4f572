package posts

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/domain"
	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	blogposts "github.com/goliatone/go-blog/posts"
	"github.com/google/uuid"
)

// PostRepository abstracts storage operations for post entities.
type PostRepository interface {
	Create(ctx context.Context, record *Post) (*Post, error)
	Update(ctx context.Context, record *Post) (*Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	List(ctx context.Context) ([]*Post, error)
	Delete(ctx context.Context, id uuid.UUID, hard bool) error
}

// TermRepository abstracts storage for taxonomy terms.
type TermRepository interface {
	Upsert(ctx context.Context, term *Term) (*Term, error)
	List(ctx context.Context) ([]*Term, error)
	ListByKind(ctx context.Context, kind string) ([]*Term, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithLogger attaches a module logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	records PostRepository
	terms   TermRepository
	now     func() time.Time
	logger  interfaces.Logger
}

// NewService constructs a post service with the required dependencies.
func NewService(records PostRepository, terms TermRepository, opts ...ServiceOption) Service {
	s := &service{
		records: records,
		terms:   terms,
		now:     time.Now,
		logger:  logging.NoOp(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create orchestrates creation of a new post with its taxonomy terms. The
// record ID is derived from the slug so repeated imports of the same source
// converge on one row.
func (s *service) Create(ctx context.Context, req CreatePostRequest) (*Post, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		derived, err := blogposts.NormalizeSlug(req.Title)
		if err != nil || derived == "" {
			return nil, ErrSlugRequired
		}
		slug = derived
	}
	if !blogposts.IsValidSlug(slug) {
		return nil, ErrSlugInvalid
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, ErrBodyRequired
	}

	status := domain.ParseStatus(req.Status)
	if !status.IsValid() {
		return nil, ErrStatusInvalid
	}

	if err := validateMetadata(req.Metadata); err != nil {
		return nil, err
	}

	if existing, err := s.records.GetBySlug(ctx, slug); err == nil && existing != nil {
		return nil, ErrSlugExists
	} else if err != nil {
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	now := s.now()
	publishedAt := cloneTimePtr(req.PublishedAt)
	if status == domain.StatusPublished && publishedAt == nil {
		publishedAt = &now
	}

	record := &Post{
		ID:          identity.PostUUID(slug),
		Slug:        slug,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Body:        req.Body,
		BodyHTML:    req.BodyHTML,
		Status:      string(status),
		PublishedAt: publishedAt,
		Author:      strings.TrimSpace(req.Author),
		Metadata:    cloneMap(req.Metadata),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if v := strings.TrimSpace(req.MoreLink); v != "" {
		record.MoreLink = &v
	}
	if v := strings.TrimSpace(req.Permalink); v != "" {
		record.Permalink = &v
	}

	terms, err := s.resolveTerms(ctx, req.Tags, req.Categories, now)
	if err != nil {
		return nil, err
	}
	record.Terms = terms

	created, err := s.records.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("post.created", "post_id", created.ID, "slug", created.Slug)
	return s.decorate(created), nil
}

// Get fetches a post by identifier.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Post, error) {
	if id == uuid.Nil {
		return nil, ErrPostIDRequired
	}
	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.DeletedAt != nil {
		return nil, &NotFoundError{Resource: "post", Key: id.String()}
	}
	return s.decorate(record), nil
}

// GetBySlug fetches a post by slug.
func (s *service) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrSlugRequired
	}
	record, err := s.records.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if record.DeletedAt != nil {
		return nil, &NotFoundError{Resource: "post", Key: slug}
	}
	return s.decorate(record), nil
}

// List returns posts matching the supplied options, newest first.
func (s *service) List(ctx context.Context, opts ListOptions) ([]*Post, error) {
	records, err := s.records.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]*Post, 0, len(records))
	for _, record := range records {
		if record == nil || record.DeletedAt != nil {
			continue
		}
		s.decorate(record)
		if !matchesOptions(record, opts, now) {
			continue
		}
		out = append(out, record)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return sortDate(out[i]).After(sortDate(out[j]))
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []*Post{}, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out, nil
}

// Update applies mutable fields to an existing post.
func (s *service) Update(ctx context.Context, req UpdatePostRequest) (*Post, error) {
	if req.ID == uuid.Nil {
		return nil, ErrPostIDRequired
	}

	record, err := s.records.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if record.DeletedAt != nil {
		return nil, &NotFoundError{Resource: "post", Key: req.ID.String()}
	}

	now := s.now()

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		record.Title = title
	}
	if req.Description != nil {
		record.Description = req.Description
	}
	if req.Body != nil {
		if strings.TrimSpace(*req.Body) == "" {
			return nil, ErrBodyRequired
		}
		record.Body = *req.Body
	}
	if req.BodyHTML != nil {
		record.BodyHTML = *req.BodyHTML
	}
	if req.Status != nil {
		status := domain.ParseStatus(*req.Status)
		if !status.IsValid() {
			return nil, ErrStatusInvalid
		}
		record.Status = string(status)
		if status == domain.StatusPublished && record.PublishedAt == nil {
			record.PublishedAt = &now
		}
	}
	if req.PublishedAt != nil {
		record.PublishedAt = cloneTimePtr(req.PublishedAt)
	}
	if req.Author != nil {
		record.Author = strings.TrimSpace(*req.Author)
	}
	if req.MoreLink != nil {
		if v := strings.TrimSpace(*req.MoreLink); v != "" {
			record.MoreLink = &v
		} else {
			record.MoreLink = nil
		}
	}
	if req.Permalink != nil {
		if v := strings.TrimSpace(*req.Permalink); v != "" {
			record.Permalink = &v
		} else {
			record.Permalink = nil
		}
	}
	if req.Metadata != nil {
		if err := validateMetadata(req.Metadata); err != nil {
			return nil, err
		}
		record.Metadata = cloneMap(req.Metadata)
	}

	if req.Tags != nil || req.Categories != nil {
		tags := req.Tags
		categories := req.Categories
		if tags == nil {
			tags = termSlugs(record.Terms, TermKindTag)
		}
		if categories == nil {
			categories = termSlugs(record.Terms, TermKindCategory)
		}
		terms, err := s.resolveTerms(ctx, tags, categories, now)
		if err != nil {
			return nil, err
		}
		record.Terms = terms
	}

	record.UpdatedAt = now

	updated, err := s.records.Update(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("post.updated", "post_id", updated.ID, "slug", updated.Slug)
	return s.decorate(updated), nil
}

// Delete removes a post, soft-deleting unless a hard delete is requested.
func (s *service) Delete(ctx context.Context, req DeletePostRequest) error {
	if req.ID == uuid.Nil {
		return ErrPostIDRequired
	}

	if req.HardDelete {
		if err := s.records.Delete(ctx, req.ID, true); err != nil {
			return err
		}
		s.logger.Info("post.deleted", "post_id", req.ID, "hard", true)
		return nil
	}

	record, err := s.records.GetByID(ctx, req.ID)
	if err != nil {
		return err
	}
	if record.DeletedAt != nil {
		return nil
	}

	now := s.now()
	record.DeletedAt = &now
	record.UpdatedAt = now
	if _, err := s.records.Update(ctx, record); err != nil {
		return err
	}
	s.logger.Info("post.deleted", "post_id", req.ID, "hard", false)
	return nil
}

// Publish moves a post into the published state.
func (s *service) Publish(ctx context.Context, req PublishPostRequest) (*Post, error) {
	if req.ID == uuid.Nil {
		return nil, ErrPostIDRequired
	}

	record, err := s.records.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if record.DeletedAt != nil {
		return nil, &NotFoundError{Resource: "post", Key: req.ID.String()}
	}

	now := s.now()
	publishedAt := cloneTimePtr(req.PublishedAt)
	if publishedAt == nil {
		publishedAt = &now
	}

	record.Status = string(domain.StatusPublished)
	record.PublishedAt = publishedAt
	record.UpdatedAt = now

	updated, err := s.records.Update(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("post.published", "post_id", updated.ID, "slug", updated.Slug)
	return s.decorate(updated), nil
}

// Archive retires a post from listings while keeping the record.
func (s *service) Archive(ctx context.Context, id uuid.UUID) (*Post, error) {
	if id == uuid.Nil {
		return nil, ErrPostIDRequired
	}

	record, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.DeletedAt != nil {
		return nil, &NotFoundError{Resource: "post", Key: id.String()}
	}

	now := s.now()
	record.Status = string(domain.StatusArchived)
	record.UpdatedAt = now

	updated, err := s.records.Update(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("post.archived", "post_id", updated.ID, "slug", updated.Slug)
	return s.decorate(updated), nil
}

// Terms lists taxonomy terms, optionally filtered by kind.
func (s *service) Terms(ctx context.Context, kind string) ([]*Term, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	var (
		records []*Term
		err     error
	)
	switch kind {
	case "":
		records, err = s.terms.List(ctx)
	case TermKindTag, TermKindCategory:
		records, err = s.terms.ListByKind(ctx, kind)
	default:
		return nil, ErrTermKindInvalid
	}
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Kind != records[j].Kind {
			return records[i].Kind < records[j].Kind
		}
		if !strings.EqualFold(records[i].Name, records[j].Name) {
			return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
		}
		return records[i].Slug < records[j].Slug
	})
	return records, nil
}

func (s *service) resolveTerms(ctx context.Context, tags, categories []string, now time.Time) ([]*Term, error) {
	out := make([]*Term, 0, len(tags)+len(categories))
	seen := map[string]struct{}{}

	appendTerms := func(kind string, values []string) error {
		for _, value := range values {
			name := strings.TrimSpace(value)
			if name == "" {
				continue
			}
			termSlug, err := blogposts.NormalizeSlug(name)
			if err != nil || termSlug == "" {
				return ErrSlugInvalid
			}
			key := kind + ":" + termSlug
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			term := &Term{
				ID:        identity.TermUUID(kind, termSlug),
				Kind:      kind,
				Slug:      termSlug,
				Name:      name,
				CreatedAt: now,
			}
			stored, err := s.terms.Upsert(ctx, term)
			if err != nil {
				return err
			}
			out = append(out, stored)
		}
		return nil
	}

	if err := appendTerms(TermKindTag, tags); err != nil {
		return nil, err
	}
	if err := appendTerms(TermKindCategory, categories); err != nil {
		return nil, err
	}
	return out, nil
}

// decorate computes derived visibility fields on the record.
func (s *service) decorate(record *Post) *Post {
	if record == nil {
		return nil
	}
	now := s.now()
	status := domain.ParseStatus(record.Status)
	record.EffectiveStatus = status
	record.IsVisible = false

	if status == domain.StatusPublished {
		if record.PublishedAt == nil || record.PublishedAt.After(now) {
			// Future-dated posts stay hidden until their publish date.
			record.EffectiveStatus = domain.StatusDraft
		} else if record.DeletedAt == nil {
			record.IsVisible = true
		}
	}
	return record
}

func matchesOptions(record *Post, opts ListOptions, now time.Time) bool {
	if author := strings.TrimSpace(opts.Author); author != "" && !strings.EqualFold(record.Author, author) {
		return false
	}

	if status := strings.TrimSpace(opts.Status); status != "" {
		return record.Status == string(domain.ParseStatus(status)) && matchesTaxonomy(record, opts)
	}

	switch domain.Status(record.Status) {
	case domain.StatusPublished:
		if !record.IsVisible && !opts.IncludeDrafts {
			return false
		}
	case domain.StatusDraft:
		if !opts.IncludeDrafts {
			return false
		}
	case domain.StatusArchived:
		if !opts.IncludeArchived {
			return false
		}
	default:
		return false
	}

	return matchesTaxonomy(record, opts)
}

func matchesTaxonomy(record *Post, opts ListOptions) bool {
	if tag := strings.TrimSpace(opts.Tag); tag != "" && !hasTerm(record.Terms, TermKindTag, tag) {
		return false
	}
	if category := strings.TrimSpace(opts.Category); category != "" && !hasTerm(record.Terms, TermKindCategory, category) {
		return false
	}
	return true
}

func hasTerm(terms []*Term, kind, slug string) bool {
	for _, term := range terms {
		if term != nil && term.Kind == kind && strings.EqualFold(term.Slug, slug) {
			return true
		}
	}
	return false
}

func termSlugs(terms []*Term, kind string) []string {
	out := []string{}
	for _, term := range terms {
		if term != nil && term.Kind == kind {
			out = append(out, term.Slug)
		}
	}
	return out
}

func sortDate(record *Post) time.Time {
	if record.PublishedAt != nil {
		return *record.PublishedAt
	}
	return record.CreatedAt
}

func validateMetadata(metadata map[string]any) error {
	if len(metadata) == 0 {
		return nil
	}
	if _, err := json.Marshal(metadata); err != nil {
		return ErrMetadataInvalid
	}
	return nil
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func cloneTimePtr(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	v := *src
	return &v
}
