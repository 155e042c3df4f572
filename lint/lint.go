package lint

import (
	"context"
	"errors"
	"fmt"
)

// Rule names reported in issues. Corpus rules require the whole directory and
// are only evaluated by LintDirectory.
const (
	RuleFrontMatterPresent = "front-matter/present"
	RuleFrontMatterYAML    = "front-matter/yaml"
	RuleFrontMatterSchema  = "front-matter/schema"
	RuleDateRFC3339        = "date/rfc3339"
	RuleSlugUnique         = "slug/unique"
	RuleLinkResolves       = "link/resolves"
)

// Severity classifies how an issue affects the corpus.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

var (
	// ErrPathRequired indicates a lint call without a target file or directory.
	ErrPathRequired = errors.New("lint: path is required")
	// ErrSchemaInvalid indicates the configured front matter schema could not
	// be compiled.
	ErrSchemaInvalid = errors.New("lint: front matter schema is invalid")
)

// Issue records a single rule violation within a file.
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	if i.Field != "" {
		return fmt.Sprintf("%s: [%s] %s: %s (%s)", i.Path, i.Severity, i.Rule, i.Message, i.Field)
	}
	return fmt.Sprintf("%s: [%s] %s: %s", i.Path, i.Severity, i.Rule, i.Message)
}

// Report aggregates the outcome of a lint run.
type Report struct {
	// Files lists every file inspected, sorted by path.
	Files []string `json:"files"`
	// Issues holds all violations found, ordered by path then rule.
	Issues []Issue `json:"issues"`
	// Checked counts the rules evaluated across the run.
	Checked int `json:"checked"`
}

// Clean reports whether the run produced no error-severity issues.
func (r *Report) Clean() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return false
		}
	}
	return true
}

// Errors returns only the error-severity issues.
func (r *Report) Errors() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			out = append(out, issue)
		}
	}
	return out
}

// Warnings returns only the warning-severity issues.
func (r *Report) Warnings() []Issue {
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			out = append(out, issue)
		}
	}
	return out
}

// Options customises a lint run.
type Options struct {
	// Pattern overrides the configured file glob (defaults to "*.md").
	Pattern string
	// Recursive overrides directory traversal when non-nil.
	Recursive *bool
	// DisabledRules suppresses the named rules for this run.
	DisabledRules []string
}

// Service validates a Markdown corpus against the front matter rules.
type Service interface {
	// LintDirectory inspects every Markdown file under dir, including the
	// corpus-wide slug and link rules.
	LintDirectory(ctx context.Context, dir string, opts Options) (*Report, error)
	// LintFile inspects a single file. Corpus rules are skipped.
	LintFile(ctx context.Context, path string) (*Report, error)
}
