package lint

import "github.com/goliatone/go-blog/lint"

// Public contract aliases so internal code and the façade share one set of
// types with the public lint package.
type (
	Issue    = lint.Issue
	Report   = lint.Report
	Options  = lint.Options
	Severity = lint.Severity
)

const (
	SeverityError   = lint.SeverityError
	SeverityWarning = lint.SeverityWarning

	RuleFrontMatterPresent = lint.RuleFrontMatterPresent
	RuleFrontMatterYAML    = lint.RuleFrontMatterYAML
	RuleFrontMatterSchema  = lint.RuleFrontMatterSchema
	RuleDateRFC3339        = lint.RuleDateRFC3339
	RuleSlugUnique         = lint.RuleSlugUnique
	RuleLinkResolves       = lint.RuleLinkResolves
)

var (
	ErrPathRequired  = lint.ErrPathRequired
	ErrSchemaInvalid = lint.ErrSchemaInvalid
)
