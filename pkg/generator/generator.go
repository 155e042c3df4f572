// Package generator exposes the static site generation API for go-blog hosts.
// Use NewService with Config and Dependencies to render posts, listings,
// taxonomy pages, sitemaps, and feeds into a static output directory.
package generator

import internal "github.com/goliatone/go-blog/internal/generator"

type (
	Service          = internal.Service
	Config           = internal.Config
	BuildOptions     = internal.BuildOptions
	BuildResult      = internal.BuildResult
	RenderedPage     = internal.RenderedPage
	RenderDiagnostic = internal.RenderDiagnostic
	Dependencies     = internal.Dependencies
	HTMLRenderer     = internal.HTMLRenderer
)

var (
	ErrServiceDisabled    = internal.ErrServiceDisabled
	ErrPostsRequired      = internal.ErrPostsRequired
	ErrRendererRequired   = internal.ErrRendererRequired
	ErrPermalinksRequired = internal.ErrPermalinksRequired
	ErrOutputDirRequired  = internal.ErrOutputDirRequired
)

// NewService wires a static site generator with the supplied configuration and dependencies.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	return internal.NewService(cfg, deps)
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return internal.NewDisabledService()
}

// NewHTMLRenderer returns the embedded default theme renderer.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	return internal.NewHTMLRenderer()
}
