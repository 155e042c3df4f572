package main

import (
	"context"
	"testing"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/cmd/blog/internal/bootstrap"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/lint"
)

type stubLintService struct {
	calls  int
	dir    string
	opts   lint.Options
	report *lint.Report
}

func (s *stubLintService) LintDirectory(_ context.Context, dir string, opts lint.Options) (*lint.Report, error) {
	s.calls++
	s.dir = dir
	s.opts = opts
	return s.report, nil
}

func (s *stubLintService) LintFile(context.Context, string) (*lint.Report, error) {
	return s.report, nil
}

func stubbedBuilder(svc *stubLintService) func(bootstrap.Options) (*bootstrap.Module, error) {
	return stubbedBuilderWithConfig(svc, blog.DefaultConfig())
}

func stubbedBuilderWithConfig(svc *stubLintService, cfg blog.Config) func(bootstrap.Options) (*bootstrap.Module, error) {
	return func(bootstrap.Options) (*bootstrap.Module, error) {
		module, err := blog.New(cfg, di.WithLintService(svc))
		if err != nil {
			return nil, err
		}
		return &bootstrap.Module{Blog: module}, nil
	}
}

func TestRunLintCleanCorpus(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	svc := &stubLintService{report: &lint.Report{Files: []string{"a.md"}, Checked: 6}}
	moduleBuilder = stubbedBuilder(svc)

	if err := runLint([]string{
		"-directory", "corpus",
		"-disable", "link/resolves, slug/unique",
	}); err != nil {
		t.Fatalf("runLint returned error: %v", err)
	}

	if svc.calls != 1 {
		t.Fatalf("expected lint to be called once, got %d", svc.calls)
	}
	if svc.dir != "." {
		t.Fatalf("expected lint run at the corpus root, got %s", svc.dir)
	}
	if len(svc.opts.DisabledRules) != 2 {
		t.Fatalf("unexpected disabled rules %v", svc.opts.DisabledRules)
	}
}

func TestRunLintFailsOnErrors(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	svc := &stubLintService{report: &lint.Report{
		Files: []string{"bad.md"},
		Issues: []lint.Issue{
			{Rule: lint.RuleDateRFC3339, Severity: lint.SeverityError, Path: "bad.md", Message: "date is not RFC3339"},
		},
	}}
	moduleBuilder = stubbedBuilder(svc)

	if err := runLint([]string{"-directory", "corpus"}); err == nil {
		t.Fatal("expected lint failure for error-severity issues")
	}

	if err := runLint([]string{"-directory", "corpus", "-ignore-failures"}); err != nil {
		t.Fatalf("expected ignore-failures to succeed, got %v", err)
	}
}

func TestRunLintUsesConfiguredFailOn(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	svc := &stubLintService{report: &lint.Report{
		Files: []string{"warn.md"},
		Issues: []lint.Issue{
			{Rule: lint.RuleLinkResolves, Severity: lint.SeverityWarning, Path: "warn.md", Message: "more_link target missing"},
		},
	}}

	cfg := blog.DefaultConfig()
	cfg.Lint.FailOn = "warning"
	moduleBuilder = stubbedBuilderWithConfig(svc, cfg)

	if err := runLint([]string{"-directory", "corpus"}); err == nil {
		t.Fatal("expected warnings to fail when config escalates fail-on")
	}

	// An explicit flag overrides the configured severity.
	if err := runLint([]string{"-directory", "corpus", "-fail-on", "error"}); err != nil {
		t.Fatalf("expected flag override to pass, got %v", err)
	}
}
