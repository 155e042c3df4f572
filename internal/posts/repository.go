package posts

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func NewPostRepository(db *bun.DB) repository.Repository[*Post] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Post]{
		NewRecord: func() *Post { return &Post{} },
		GetID: func(p *Post) uuid.UUID {
			return p.ID
		},
		SetID: func(p *Post, id uuid.UUID) {
			p.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(p *Post) string {
			return p.Slug
		},
	})
}

func NewTermRepository(db *bun.DB) repository.Repository[*Term] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Term]{
		NewRecord: func() *Term { return &Term{} },
		GetID: func(t *Term) uuid.UUID {
			return t.ID
		},
		SetID: func(t *Term, id uuid.UUID) {
			t.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(t *Term) string {
			return t.Slug
		},
	})
}
