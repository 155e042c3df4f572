package domain

import "strings"

// Status represents lifecycle states for blog entities
type Status string

const (
	// StatusDraft indicates a post still under preparation
	StatusDraft Status = "draft"
	// StatusPublished identifies a post available to readers
	StatusPublished Status = "published"
	// StatusArchived marks a post retained for history but not publicly visible
	StatusArchived Status = "archived"
)

// ParseStatus coerces arbitrary status strings into a known representation,
// defaulting to draft for empty input.
func ParseStatus(input string) Status {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return StatusDraft
	}
	return Status(trimmed)
}

// IsValid reports whether the status is one of the persisted lifecycle values.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}
