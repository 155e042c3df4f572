package posts

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSlugRequired              = errors.New("posts: slug is required")
	ErrSlugInvalid               = errors.New("posts: slug contains invalid characters")
	ErrSlugExists                = errors.New("posts: slug already exists")
	ErrTitleRequired             = errors.New("posts: title is required")
	ErrBodyRequired              = errors.New("posts: body is required")
	ErrPostIDRequired            = errors.New("posts: post id required")
	ErrStatusInvalid             = errors.New("posts: status invalid")
	ErrPublishedAtRequired       = errors.New("posts: published posts require a publish date")
	ErrMetadataInvalid           = errors.New("posts: metadata invalid")
	ErrTermKindInvalid           = errors.New("posts: term kind invalid")
	ErrPostSoftDeleteUnsupported = errors.New("posts: soft delete not supported")
	ErrNotFound                  = errors.New("posts: record not found")
)

// NotFoundError captures missing record lookups with enough context for
// callers to report which resource and key failed.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	key := strings.TrimSpace(e.Key)
	if key != "" {
		return fmt.Sprintf("%s: %s=%s", ErrNotFound.Error(), e.Resource, key)
	}
	return ErrNotFound.Error()
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
