package generator

import (
	"context"
	"fmt"
	"time"
)

// RenderedPage is a fully rendered page ready to persist.
type RenderedPage struct {
	Kind     string
	Route    string
	Output   string
	Template string
	HTML     string
	Hash     string
	Checksum string
	Duration time.Duration
}

// RenderDiagnostic records per-page render telemetry for the build result.
type RenderDiagnostic struct {
	Route    string
	Template string
	Duration time.Duration
	Skipped  bool
	Error    string
}

type renderOutcome struct {
	page       RenderedPage
	diagnostic RenderDiagnostic
	skipped    bool
	err        error
}

func (s *service) renderPage(ctx context.Context, buildCtx *BuildContext, page *PageData) renderOutcome {
	started := time.Now()
	diagnostic := RenderDiagnostic{Route: page.Route, Template: page.Template}

	if err := ctx.Err(); err != nil {
		diagnostic.Error = err.Error()
		return renderOutcome{diagnostic: diagnostic, err: err}
	}

	data := TemplateContext{
		Site: SiteMetadata{
			Title:       s.cfg.SiteTitle,
			Description: s.cfg.SiteDescription,
			BaseURL:     s.cfg.BaseURL,
			Author:      s.cfg.SiteAuthor,
			Language:    s.cfg.Language,
		},
		Page: page,
		Build: BuildMetadata{
			GeneratedAt: buildCtx.GeneratedAt,
			Options:     buildCtx.Options,
		},
		Helpers: newTemplateHelpers(s.cfg.BaseURL, s.deps.Permalinks.PostPath),
	}

	html, err := s.deps.Renderer.Render(page.Template, data)
	diagnostic.Duration = time.Since(started)
	if err != nil {
		wrapped := fmt.Errorf("generator: render %s: %w", page.Route, err)
		diagnostic.Error = wrapped.Error()
		return renderOutcome{diagnostic: diagnostic, err: wrapped}
	}

	rendered := RenderedPage{
		Kind:     page.Kind,
		Route:    page.Route,
		Output:   buildOutputPath(page.Route),
		Template: page.Template,
		HTML:     html,
		Hash:     page.Hash,
		Checksum: computeHash([]byte(html)),
		Duration: diagnostic.Duration,
	}
	return renderOutcome{page: rendered, diagnostic: diagnostic}
}
