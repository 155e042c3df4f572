package blog

import (
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/permalinks"
	"github.com/goliatone/go-blog/lint"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/posts"
)

// PostService exports the post service contract for consumers of the blog package.
type PostService = posts.Service

// MarkdownService exports the markdown ingestion contract.
type MarkdownService = interfaces.MarkdownService

// LintService exports the corpus lint contract.
type LintService = lint.Service

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// BuildOptions exports the per-build flags accepted by the generator.
type BuildOptions = generator.BuildOptions

// BuildResult exports the summary returned by a site build.
type BuildResult = generator.BuildResult

// PermalinkResolver exports the URL resolver used for posts and taxonomies.
type PermalinkResolver = permalinks.Resolver

// Module represents the top level blog runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a blog module using the provided configuration and optional
// DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Module{container: di.NewContainer(cfg, opts...)}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Posts returns the configured post service.
func (m *Module) Posts() PostService {
	return m.container.PostService()
}

// Markdown returns the markdown service when the feature is enabled.
func (m *Module) Markdown() (MarkdownService, error) {
	return m.container.MarkdownService()
}

// Lint returns the corpus lint service when the feature is enabled.
func (m *Module) Lint() (LintService, error) {
	return m.container.LintService()
}

// Generator returns the configured generator service.
func (m *Module) Generator() (GeneratorService, error) {
	return m.container.GeneratorService()
}

// Permalinks returns the configured permalink resolver.
func (m *Module) Permalinks() (*PermalinkResolver, error) {
	return m.container.PermalinkResolver()
}

// Logger exposes the configured logger provider, nil when logging is disabled.
func (m *Module) Logger() interfaces.LoggerProvider {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.LoggerProvider()
}
