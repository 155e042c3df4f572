package sitecmd

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-blog/internal/generator"
)

type stubGenerator struct {
	buildOpts generator.BuildOptions
	buildErr  error
	cleaned   bool
}

func (s *stubGenerator) Build(_ context.Context, opts generator.BuildOptions) (*generator.BuildResult, error) {
	s.buildOpts = opts
	if s.buildErr != nil {
		return nil, s.buildErr
	}
	return &generator.BuildResult{Pages: 4, Rendered: 4}, nil
}

func (s *stubGenerator) Clean(context.Context) error {
	s.cleaned = true
	return nil
}

func TestBuildSiteHandlerForwardsOptions(t *testing.T) {
	service := &stubGenerator{}
	handler := NewBuildSiteHandler(service, nil)

	err := handler.Execute(context.Background(), BuildSiteCommand{DryRun: true, Force: true})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !service.buildOpts.DryRun || !service.buildOpts.Force {
		t.Fatalf("options not forwarded: %+v", service.buildOpts)
	}
}

func TestBuildSiteHandlerPropagatesError(t *testing.T) {
	service := &stubGenerator{buildErr: errors.New("render failed")}
	handler := NewBuildSiteHandler(service, nil)

	if err := handler.Execute(context.Background(), BuildSiteCommand{}); err == nil {
		t.Fatal("expected build error to propagate")
	}
}

func TestCleanSiteHandlerDelegates(t *testing.T) {
	service := &stubGenerator{}
	handler := NewCleanSiteHandler(service, nil)

	if err := handler.Execute(context.Background(), CleanSiteCommand{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !service.cleaned {
		t.Fatal("expected clean to be invoked")
	}
}
