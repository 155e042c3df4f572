package di

import (
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/adapters/noop"
	"github.com/goliatone/go-blog/internal/generator"
	lintsvc "github.com/goliatone/go-blog/internal/lint"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/console"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/permalinks"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/lint"
	"github.com/goliatone/go-blog/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
)

var (
	ErrMarkdownDisabled = errors.New("di: markdown feature is disabled")
	ErrLintDisabled     = errors.New("di: lint feature is disabled")
)

// Container wires module dependencies. Repositories default to in-memory
// implementations and switch to bun-backed ones when a database is supplied.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	cache          interfaces.CacheProvider
	template       interfaces.TemplateRenderer

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	postRepo posts.PostRepository
	termRepo posts.TermRepository

	postSvc posts.Service

	markdownSvc interfaces.MarkdownService
	markdownErr error

	lintSvc lint.Service
	lintErr error

	generatorSvc generator.Service
	generatorErr error

	permalinkResolver *permalinks.Resolver
	permalinkErr      error
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds a database handle so repositories persist through bun.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithCacheProvider overrides the host-facing cache adapter.
func WithCacheProvider(cp interfaces.CacheProvider) Option {
	return func(c *Container) {
		c.cache = cp
	}
}

// WithLoggerProvider overrides the logger provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithTemplate overrides the default template renderer used for site builds.
func WithTemplate(tr interfaces.TemplateRenderer) Option {
	return func(c *Container) {
		c.template = tr
	}
}

// WithPostService overrides the default post service binding.
func WithPostService(svc posts.Service) Option {
	return func(c *Container) {
		c.postSvc = svc
	}
}

// WithMarkdownService overrides the lazily constructed markdown service.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		c.markdownSvc = svc
	}
}

// WithLintService overrides the lazily constructed lint service.
func WithLintService(svc lint.Service) Option {
	return func(c *Container) {
		c.lintSvc = svc
	}
}

// WithGeneratorService overrides the lazily constructed generator service.
func WithGeneratorService(svc generator.Service) Option {
	return func(c *Container) {
		c.generatorSvc = svc
	}
}

// NewContainer creates a container with the provided configuration. An
// invalid configuration panics so wiring mistakes surface at startup.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) *Container {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cache:    noop.Cache(),
		cacheTTL: cacheTTL,
		postRepo: posts.NewMemoryPostRepository(),
		termRepo: posts.NewMemoryTermRepository(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.configureLogging()
	c.configureCacheDefaults()
	c.configureRepositories()
	c.configureTemplate()

	if c.postSvc == nil {
		c.postSvc = posts.NewService(
			c.postRepo,
			c.termRepo,
			posts.WithLogger(logging.PostsLogger(c.loggerProvider)),
		)
	}

	return c
}

func (c *Container) configureLogging() {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err == nil {
			c.loggerProvider = provider
			return
		}
		c.loggerProvider = console.NewProvider(console.Options{})
	default:
		level := console.ParseLevel(c.Config.Logging.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &level})
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() {
	if c.bunDB == nil {
		return
	}

	c.bunDB.RegisterModel((*posts.PostTerm)(nil))

	c.postRepo = posts.NewBunPostRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
	c.termRepo = posts.NewBunTermRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
}

func (c *Container) configureTemplate() {
	if c.template != nil {
		return
	}

	renderer, err := generator.NewHTMLRenderer()
	if err != nil {
		c.template = noop.Template()
		return
	}
	c.template = renderer
}

// LoggerProvider exposes the configured logger provider, nil when logging is
// disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// CacheProvider exposes the host-facing cache adapter.
func (c *Container) CacheProvider() interfaces.CacheProvider {
	return c.cache
}

// TemplateRenderer exposes the configured template renderer.
func (c *Container) TemplateRenderer() interfaces.TemplateRenderer {
	return c.template
}

// PostRepository exposes the configured post repository.
func (c *Container) PostRepository() posts.PostRepository {
	return c.postRepo
}

// TermRepository exposes the configured term repository.
func (c *Container) TermRepository() posts.TermRepository {
	return c.termRepo
}

// PostService returns the configured post service.
func (c *Container) PostService() posts.Service {
	return c.postSvc
}

// MarkdownService returns the markdown ingestion service (lazy). The result
// is memoised, including construction failures.
func (c *Container) MarkdownService() (interfaces.MarkdownService, error) {
	if c.markdownSvc != nil || c.markdownErr != nil {
		return c.markdownSvc, c.markdownErr
	}

	if !c.Config.Features.Markdown || !c.Config.Markdown.Enabled {
		c.markdownErr = ErrMarkdownDisabled
		return nil, c.markdownErr
	}

	logger := logging.MarkdownLogger(c.loggerProvider)
	importer := markdown.NewImporter(markdown.ImporterConfig{
		Posts:  newPostServiceAdapter(c.postSvc),
		Logger: logger,
	})

	svc, err := markdown.NewService(markdown.Config{
		BasePath:      c.Config.Markdown.ContentDir,
		Pattern:       c.Config.Markdown.Pattern,
		Recursive:     c.Config.Markdown.Recursive,
		DefaultAuthor: c.Config.Markdown.DefaultAuthor,
		Parser: interfaces.ParseOptions{
			Extensions: c.Config.Markdown.Parser.Extensions,
			Sanitize:   c.Config.Markdown.Parser.Sanitize,
			HardWraps:  c.Config.Markdown.Parser.HardWraps,
			SafeMode:   c.Config.Markdown.Parser.SafeMode,
		},
	}, nil, markdown.WithImporter(importer), markdown.WithLogger(logger))
	if err != nil {
		c.markdownErr = err
		return nil, err
	}

	c.markdownSvc = svc
	return c.markdownSvc, nil
}

// LintService returns the corpus lint service (lazy).
func (c *Container) LintService() (lint.Service, error) {
	if c.lintSvc != nil || c.lintErr != nil {
		return c.lintSvc, c.lintErr
	}

	if !c.Config.Features.Lint || !c.Config.Lint.Enabled {
		c.lintErr = ErrLintDisabled
		return nil, c.lintErr
	}

	svc, err := lintsvc.NewService(lintsvc.Config{
		BasePath:      c.Config.Markdown.ContentDir,
		Pattern:       c.Config.Markdown.Pattern,
		Recursive:     c.Config.Markdown.Recursive,
		DisabledRules: c.Config.Lint.DisabledRules,
	}, lintsvc.WithLogger(logging.LintLogger(c.loggerProvider)))
	if err != nil {
		c.lintErr = err
		return nil, err
	}

	c.lintSvc = svc
	return c.lintSvc, nil
}

// PermalinkResolver returns the route resolver used for post and taxonomy
// URLs (lazy). When the host supplies no route table the Hugo-style default
// layout rooted at the site base URL is used.
func (c *Container) PermalinkResolver() (*permalinks.Resolver, error) {
	if c.permalinkResolver != nil || c.permalinkErr != nil {
		return c.permalinkResolver, c.permalinkErr
	}

	routeCfg := c.Config.Routes.RouteConfig
	if routeCfg == nil {
		routeCfg = permalinks.DefaultRouteConfig(c.Config.Site.BaseURL)
	}

	resolver, err := permalinks.NewResolver(routeCfg, c.Config.Routes.Group)
	if err != nil {
		c.permalinkErr = err
		return nil, err
	}

	c.permalinkResolver = resolver
	return c.permalinkResolver, nil
}

// GeneratorService returns the static site generator (lazy). When the
// feature is disabled a service that rejects builds is returned so callers
// can still register commands unconditionally.
func (c *Container) GeneratorService() (generator.Service, error) {
	if c.generatorSvc != nil || c.generatorErr != nil {
		return c.generatorSvc, c.generatorErr
	}

	if !c.Config.Features.Generator || !c.Config.Generator.Enabled {
		c.generatorSvc = generator.NewDisabledService()
		return c.generatorSvc, nil
	}

	resolver, err := c.PermalinkResolver()
	if err != nil {
		c.generatorErr = err
		return nil, err
	}

	gen := c.Config.Generator
	svc, err := generator.NewService(generator.Config{
		OutputDir:       gen.OutputDir,
		BaseURL:         c.Config.Site.BaseURL,
		SiteTitle:       c.Config.Site.Title,
		SiteDescription: c.Config.Site.Description,
		SiteAuthor:      c.Config.Site.Author,
		Language:        c.Config.Site.Language,
		CleanBuild:      gen.CleanBuild,
		Incremental:     gen.Incremental,
		GenerateSitemap: gen.GenerateSitemap,
		GenerateRobots:  gen.GenerateRobots,
		GenerateFeeds:   gen.GenerateFeeds,
		PostsPerPage:    gen.PostsPerPage,
		FeedLimit:       gen.FeedLimit,
		Workers:         gen.Workers,
	}, generator.Dependencies{
		Posts:      c.postSvc,
		Renderer:   c.template,
		Permalinks: resolver,
		Logger:     logging.GeneratorLogger(c.loggerProvider),
	})
	if err != nil {
		c.generatorErr = err
		return nil, err
	}

	c.generatorSvc = svc
	return c.generatorSvc, nil
}
