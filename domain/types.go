package domain

import internaldomain "github.com/goliatone/go-blog/internal/domain"

// Status represents lifecycle states for blog entities.
type Status = internaldomain.Status

const (
	// StatusDraft indicates a post still under preparation.
	StatusDraft = internaldomain.StatusDraft
	// StatusPublished identifies a post available to readers.
	StatusPublished = internaldomain.StatusPublished
	// StatusArchived marks a post that is retained for history but not publicly visible.
	StatusArchived = internaldomain.StatusArchived
)

// ParseStatus coerces arbitrary status strings into a known representation.
func ParseStatus(input string) Status {
	return internaldomain.ParseStatus(input)
}
