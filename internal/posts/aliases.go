package posts

import blogposts "github.com/goliatone/go-blog/posts"

type (
	Service            = blogposts.Service
	ListOptions        = blogposts.ListOptions
	CreatePostRequest  = blogposts.CreatePostRequest
	UpdatePostRequest  = blogposts.UpdatePostRequest
	DeletePostRequest  = blogposts.DeletePostRequest
	PublishPostRequest = blogposts.PublishPostRequest

	Post     = blogposts.Post
	Term     = blogposts.Term
	PostTerm = blogposts.PostTerm

	NotFoundError = blogposts.NotFoundError
)

const (
	TermKindTag      = blogposts.TermKindTag
	TermKindCategory = blogposts.TermKindCategory
)

var (
	ErrSlugRequired              = blogposts.ErrSlugRequired
	ErrSlugInvalid               = blogposts.ErrSlugInvalid
	ErrSlugExists                = blogposts.ErrSlugExists
	ErrTitleRequired             = blogposts.ErrTitleRequired
	ErrBodyRequired              = blogposts.ErrBodyRequired
	ErrPostIDRequired            = blogposts.ErrPostIDRequired
	ErrStatusInvalid             = blogposts.ErrStatusInvalid
	ErrPublishedAtRequired       = blogposts.ErrPublishedAtRequired
	ErrMetadataInvalid           = blogposts.ErrMetadataInvalid
	ErrTermKindInvalid           = blogposts.ErrTermKindInvalid
	ErrPostSoftDeleteUnsupported = blogposts.ErrPostSoftDeleteUnsupported
	ErrNotFound                  = blogposts.ErrNotFound
)
