package posts

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunPostRepository persists posts through go-repository-bun, with taxonomy
// join rows managed directly on the bun handle.
type BunPostRepository struct {
	db   *bun.DB
	repo repository.Repository[*Post]
}

func NewBunPostRepository(db *bun.DB) *BunPostRepository {
	return NewBunPostRepositoryWithCache(db, nil, nil)
}

func NewBunPostRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunPostRepository {
	base := NewPostRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunPostRepository{db: db, repo: wrapped}
}

func (r *BunPostRepository) Create(ctx context.Context, record *Post) (*Post, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	if err := r.syncTerms(ctx, record.ID, record.Terms); err != nil {
		return nil, err
	}
	created.Terms = record.Terms
	return created, nil
}

func (r *BunPostRepository) Update(ctx context.Context, record *Post) (*Post, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	if err := r.syncTerms(ctx, record.ID, record.Terms); err != nil {
		return nil, err
	}
	updated.Terms = record.Terms
	return updated, nil
}

func (r *BunPostRepository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "post", id.String())
	}
	if err := r.attachTerms(ctx, []*Post{result}); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *BunPostRepository) GetBySlug(ctx context.Context, slug string) (*Post, error) {
	result, err := r.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, "post", slug)
	}
	if err := r.attachTerms(ctx, []*Post{result}); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *BunPostRepository) List(ctx context.Context) ([]*Post, error) {
	records, _, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.attachTerms(ctx, records); err != nil {
		return nil, err
	}
	return records, nil
}

// Delete removes the post row and its taxonomy joins. Soft deletes flow
// through Update by stamping DeletedAt, so the flag only gates row removal.
func (r *BunPostRepository) Delete(ctx context.Context, id uuid.UUID, hard bool) error {
	if !hard {
		return ErrPostSoftDeleteUnsupported
	}
	if _, err := r.db.NewDelete().
		Model((*PostTerm)(nil)).
		Where("post_id = ?", id).
		Exec(ctx); err != nil {
		return err
	}
	return r.repo.Delete(ctx, &Post{ID: id})
}

func (r *BunPostRepository) syncTerms(ctx context.Context, postID uuid.UUID, terms []*Term) error {
	if _, err := r.db.NewDelete().
		Model((*PostTerm)(nil)).
		Where("post_id = ?", postID).
		Exec(ctx); err != nil {
		return err
	}
	if len(terms) == 0 {
		return nil
	}

	rows := make([]*PostTerm, 0, len(terms))
	for _, term := range terms {
		if term == nil {
			continue
		}
		if _, err := r.db.NewInsert().
			Model(term).
			On("CONFLICT (id) DO NOTHING").
			Exec(ctx); err != nil {
			return err
		}
		rows = append(rows, &PostTerm{PostID: postID, TermID: term.ID})
	}
	if len(rows) == 0 {
		return nil
	}

	_, err := r.db.NewInsert().Model(&rows).Exec(ctx)
	return err
}

func (r *BunPostRepository) attachTerms(ctx context.Context, records []*Post) error {
	if len(records) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(records))
	byID := make(map[uuid.UUID]*Post, len(records))
	for _, record := range records {
		if record == nil {
			continue
		}
		ids = append(ids, record.ID)
		byID[record.ID] = record
		record.Terms = nil
	}

	joins := []*PostTerm{}
	if err := r.db.NewSelect().
		Model(&joins).
		Relation("Term").
		Where("pt.post_id IN (?)", bun.In(ids)).
		Scan(ctx); err != nil {
		return err
	}

	for _, join := range joins {
		if join == nil || join.Term == nil {
			continue
		}
		if record, ok := byID[join.PostID]; ok {
			record.Terms = append(record.Terms, join.Term)
		}
	}
	return nil
}

// BunTermRepository persists taxonomy terms.
type BunTermRepository struct {
	db   *bun.DB
	repo repository.Repository[*Term]
}

func NewBunTermRepository(db *bun.DB) *BunTermRepository {
	return NewBunTermRepositoryWithCache(db, nil, nil)
}

func NewBunTermRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunTermRepository {
	base := NewTermRepository(db)
	wrapped := wrapWithCache(base, cacheService, keySerializer)
	return &BunTermRepository{db: db, repo: wrapped}
}

// Upsert inserts the term when missing. Terms carry deterministic IDs so the
// conflict target is the primary key.
func (r *BunTermRepository) Upsert(ctx context.Context, term *Term) (*Term, error) {
	if _, err := r.db.NewInsert().
		Model(term).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx); err != nil {
		return nil, err
	}
	return term, nil
}

func (r *BunTermRepository) List(ctx context.Context) ([]*Term, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func (r *BunTermRepository) ListByKind(ctx context.Context, kind string) ([]*Term, error) {
	records := []*Term{}
	if err := r.db.NewSelect().
		Model(&records).
		Where("kind = ?", kind).
		Scan(ctx); err != nil {
		return nil, err
	}
	return records, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
