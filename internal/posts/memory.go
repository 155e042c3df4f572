package posts

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryPostRepository is an in-memory implementation for scaffolding and tests.
type MemoryPostRepository struct {
	mu        sync.RWMutex
	records   map[uuid.UUID]*Post
	slugIndex map[string]uuid.UUID
}

// NewMemoryPostRepository creates an empty in-memory post repository.
func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{
		records:   make(map[uuid.UUID]*Post),
		slugIndex: make(map[string]uuid.UUID),
	}
}

// Create inserts the supplied post.
func (m *MemoryPostRepository) Create(_ context.Context, record *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePost(record)
	m.records[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return clonePost(copied), nil
}

// Update replaces the stored post, returning NotFoundError when absent.
func (m *MemoryPostRepository) Update(_ context.Context, record *Post) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.records[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: record.ID.String()}
	}
	delete(m.slugIndex, existing.Slug)

	copied := clonePost(record)
	m.records[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return clonePost(copied), nil
}

// GetByID retrieves a post by identifier.
func (m *MemoryPostRepository) GetByID(_ context.Context, id uuid.UUID) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: id.String()}
	}
	return clonePost(rec), nil
}

// GetBySlug retrieves a post by slug, returning NotFoundError when absent.
func (m *MemoryPostRepository) GetBySlug(_ context.Context, slug string) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "post", Key: slug}
	}
	return clonePost(m.records[id]), nil
}

// List returns all stored posts.
func (m *MemoryPostRepository) List(_ context.Context) ([]*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Post, 0, len(m.records))
	for _, rec := range m.records {
		out = append(out, clonePost(rec))
	}
	return out, nil
}

// Delete removes a post. The memory implementation treats soft deletes the
// same as hard deletes since callers persist DeletedAt through Update.
func (m *MemoryPostRepository) Delete(_ context.Context, id uuid.UUID, _ bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return &NotFoundError{Resource: "post", Key: id.String()}
	}
	delete(m.slugIndex, rec.Slug)
	delete(m.records, id)
	return nil
}

func clonePost(src *Post) *Post {
	if src == nil {
		return nil
	}

	copied := *src
	copied.Metadata = cloneMap(src.Metadata)
	copied.PublishedAt = cloneTimePtr(src.PublishedAt)
	copied.DeletedAt = cloneTimePtr(src.DeletedAt)
	if src.Description != nil {
		v := *src.Description
		copied.Description = &v
	}
	if src.MoreLink != nil {
		v := *src.MoreLink
		copied.MoreLink = &v
	}
	if src.Permalink != nil {
		v := *src.Permalink
		copied.Permalink = &v
	}
	if len(src.Terms) > 0 {
		copied.Terms = make([]*Term, len(src.Terms))
		for i, term := range src.Terms {
			if term == nil {
				continue
			}
			local := *term
			copied.Terms[i] = &local
		}
	}
	return &copied
}

// MemoryTermRepository stores taxonomy terms in-memory.
type MemoryTermRepository struct {
	mu    sync.RWMutex
	terms map[uuid.UUID]*Term
}

// NewMemoryTermRepository constructs the repository.
func NewMemoryTermRepository() *MemoryTermRepository {
	return &MemoryTermRepository{
		terms: make(map[uuid.UUID]*Term),
	}
}

// Upsert inserts or replaces a term keyed by its deterministic ID.
func (m *MemoryTermRepository) Upsert(_ context.Context, term *Term) (*Term, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.terms[term.ID]; ok {
		copied := *existing
		return &copied, nil
	}

	copied := *term
	m.terms[term.ID] = &copied
	out := copied
	return &out, nil
}

// List returns every stored term.
func (m *MemoryTermRepository) List(_ context.Context) ([]*Term, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Term, 0, len(m.terms))
	for _, term := range m.terms {
		copied := *term
		out = append(out, &copied)
	}
	return out, nil
}

// ListByKind returns terms of the given kind.
func (m *MemoryTermRepository) ListByKind(_ context.Context, kind string) ([]*Term, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Term{}
	for _, term := range m.terms {
		if term.Kind != kind {
			continue
		}
		copied := *term
		out = append(out, &copied)
	}
	return out, nil
}
