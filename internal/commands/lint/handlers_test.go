package lintcmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-blog/lint"
)

type stubLintService struct {
	report *lint.Report
	err    error
	dir    string
	opts   lint.Options
}

func (s *stubLintService) LintDirectory(_ context.Context, dir string, opts lint.Options) (*lint.Report, error) {
	s.dir = dir
	s.opts = opts
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

func (s *stubLintService) LintFile(context.Context, string) (*lint.Report, error) {
	return s.report, s.err
}

func TestRunDirectoryHandlerCleanCorpus(t *testing.T) {
	service := &stubLintService{report: &lint.Report{
		Files: []string{"a.md", "b.md", "c.md"},
	}}
	handler := NewRunDirectoryHandler(service, nil)

	err := handler.Execute(context.Background(), RunDirectoryCommand{
		Directory:     "content/posts",
		Pattern:       "*.md",
		DisabledRules: []string{lint.RuleLinkResolves},
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if service.dir != "content/posts" {
		t.Fatalf("unexpected directory: %s", service.dir)
	}
	if service.opts.Pattern != "*.md" {
		t.Fatalf("pattern not forwarded: %+v", service.opts)
	}
	if len(service.opts.DisabledRules) != 1 {
		t.Fatalf("disabled rules not forwarded: %+v", service.opts)
	}
}

func TestRunDirectoryHandlerFailsOnIssues(t *testing.T) {
	service := &stubLintService{report: &lint.Report{
		Files: []string{"bad-date.md"},
		Issues: []lint.Issue{
			{
				Rule:     lint.RuleDateRFC3339,
				Severity: lint.SeverityError,
				Path:     "bad-date.md",
				Message:  "date is not RFC3339",
			},
		},
	}}
	handler := NewRunDirectoryHandler(service, nil)

	if err := handler.Execute(context.Background(), RunDirectoryCommand{Directory: "content"}); err == nil {
		t.Fatal("expected error for corpus with lint issues")
	}
}

func TestRunDirectoryHandlerIgnoresFailuresWhenAsked(t *testing.T) {
	service := &stubLintService{report: &lint.Report{
		Issues: []lint.Issue{
			{Rule: lint.RuleSlugUnique, Severity: lint.SeverityError, Path: "dupe.md"},
		},
	}}
	handler := NewRunDirectoryHandler(service, nil)

	err := handler.Execute(context.Background(), RunDirectoryCommand{
		Directory:      "content",
		IgnoreFailures: true,
	})
	if err != nil {
		t.Fatalf("expected nil error with IgnoreFailures, got %v", err)
	}
}

func TestRunDirectoryHandlerFailOnWarning(t *testing.T) {
	service := &stubLintService{report: &lint.Report{
		Files: []string{"missing-desc.md"},
		Issues: []lint.Issue{
			{Rule: lint.RuleFrontMatterSchema, Severity: lint.SeverityWarning, Path: "missing-desc.md"},
		},
	}}
	handler := NewRunDirectoryHandler(service, nil)

	if err := handler.Execute(context.Background(), RunDirectoryCommand{Directory: "content"}); err != nil {
		t.Fatalf("warnings alone should not fail by default: %v", err)
	}

	err := handler.Execute(context.Background(), RunDirectoryCommand{
		Directory: "content",
		FailOn:    "warning",
	})
	if err == nil {
		t.Fatal("expected warnings to fail the run when FailOn is warning")
	}
}

func TestRunDirectoryHandlerRequiresDirectory(t *testing.T) {
	handler := NewRunDirectoryHandler(&stubLintService{report: &lint.Report{}}, nil)

	if err := handler.Execute(context.Background(), RunDirectoryCommand{}); err == nil {
		t.Fatal("expected validation error for missing directory")
	}
}

func TestRunDirectoryHandlerPropagatesServiceError(t *testing.T) {
	service := &stubLintService{err: errors.New("walk failed")}
	handler := NewRunDirectoryHandler(service, nil)

	if err := handler.Execute(context.Background(), RunDirectoryCommand{Directory: "content"}); err == nil {
		t.Fatal("expected service error to propagate")
	}
}
