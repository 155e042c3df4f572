package posts

import (
	"time"

	"github.com/goliatone/go-blog/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Term kinds recognised by the taxonomy tables.
const (
	TermKindTag      = "tag"
	TermKindCategory = "category"
)

// Post is the canonical record for a blog entry. Body holds the original
// Markdown source and BodyHTML the rendered output so readers never pay the
// conversion cost twice.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID          uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Slug        string         `bun:"slug,notnull" json:"slug"`
	Title       string         `bun:"title,notnull" json:"title"`
	Description *string        `bun:"description" json:"description,omitempty"`
	Body        string         `bun:"body,notnull" json:"body"`
	BodyHTML    string         `bun:"body_html" json:"body_html,omitempty"`
	Status      string         `bun:"status,notnull,default:'draft'" json:"status"`
	PublishedAt *time.Time     `bun:"published_at,nullzero" json:"published_at,omitempty"`
	Author      string         `bun:"author" json:"author,omitempty"`
	MoreLink    *string        `bun:"more_link" json:"more_link,omitempty"`
	Permalink   *string        `bun:"permalink" json:"permalink,omitempty"`
	Metadata    map[string]any `bun:"metadata,type:jsonb" json:"metadata,omitempty"`
	DeletedAt   *time.Time     `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt   time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`

	Terms           []*Term       `bun:"m2m:post_terms,join:Post=Term" json:"terms,omitempty"`
	EffectiveStatus domain.Status `bun:"-" json:"effective_status"`
	IsVisible       bool          `bun:"-" json:"is_visible"`
}

// Tags returns the slugs of the post's tag terms.
func (p *Post) Tags() []string {
	return p.termSlugs(TermKindTag)
}

// Categories returns the slugs of the post's category terms.
func (p *Post) Categories() []string {
	return p.termSlugs(TermKindCategory)
}

func (p *Post) termSlugs(kind string) []string {
	if p == nil {
		return nil
	}
	var out []string
	for _, term := range p.Terms {
		if term != nil && term.Kind == kind {
			out = append(out, term.Slug)
		}
	}
	return out
}

// Term is a taxonomy entry shared by posts, either a tag or a category.
type Term struct {
	bun.BaseModel `bun:"table:terms,alias:t"`

	ID        uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Kind      string    `bun:"kind,notnull" json:"kind"`
	Slug      string    `bun:"slug,notnull" json:"slug"`
	Name      string    `bun:"name,notnull" json:"name"`
	CreatedAt time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
}

// PostTerm joins posts with taxonomy terms.
type PostTerm struct {
	bun.BaseModel `bun:"table:post_terms,alias:pt"`

	PostID uuid.UUID `bun:"post_id,pk,type:uuid" json:"post_id"`
	TermID uuid.UUID `bun:"term_id,pk,type:uuid" json:"term_id"`

	Post *Post `bun:"rel:belongs-to,join:post_id=id" json:"post,omitempty"`
	Term *Term `bun:"rel:belongs-to,join:term_id=id" json:"term,omitempty"`
}
