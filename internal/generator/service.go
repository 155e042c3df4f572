package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/goliatone/go-blog/internal/permalinks"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/posts"
)

// Sentinel errors returned by the generator service.
var (
	ErrServiceDisabled    = errors.New("generator: service disabled")
	ErrPostsRequired      = errors.New("generator: post service is required")
	ErrRendererRequired   = errors.New("generator: template renderer is required")
	ErrPermalinksRequired = errors.New("generator: permalink resolver is required")
	ErrOutputDirRequired  = errors.New("generator: output directory is required")
)

// Service builds the static site from the post store.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// BuildOptions tune a single build run.
type BuildOptions struct {
	// DryRun renders everything but writes nothing.
	DryRun bool
	// Force ignores the incremental manifest and re-renders every page.
	Force bool
}

// BuildResult summarises a build run.
type BuildResult struct {
	GeneratedAt time.Time
	Duration    time.Duration
	Pages       int
	Rendered    int
	Skipped     int
	Artifacts   []string
	Diagnostics []RenderDiagnostic
}

// Config controls site output.
type Config struct {
	OutputDir       string
	BaseURL         string
	SiteTitle       string
	SiteDescription string
	SiteAuthor      string
	Language        string

	CleanBuild      bool
	Incremental     bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool

	PostsPerPage int
	FeedLimit    int
	Workers      int
}

// Dependencies wires the collaborators a build needs.
type Dependencies struct {
	Posts      posts.Service
	Renderer   interfaces.TemplateRenderer
	Permalinks *permalinks.Resolver
	Writer     artifactWriter
	Logger     interfaces.Logger
	Clock      func() time.Time
}

type service struct {
	cfg  Config
	deps Dependencies
}

// NewService validates the wiring and returns a build service.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	if deps.Posts == nil {
		return nil, ErrPostsRequired
	}
	if deps.Renderer == nil {
		return nil, ErrRendererRequired
	}
	if deps.Permalinks == nil {
		return nil, ErrPermalinksRequired
	}
	if cfg.OutputDir == "" {
		return nil, ErrOutputDirRequired
	}
	if deps.Writer == nil {
		deps.Writer = NewFileWriter()
	}
	return &service{cfg: cfg, deps: deps}, nil
}

// NewDisabledService returns a service whose operations fail with
// ErrServiceDisabled. Containers use it when generation is switched off.
func NewDisabledService() Service {
	return disabledService{}
}

type disabledService struct{}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	started := time.Now()

	if s.cfg.CleanBuild && !opts.DryRun {
		if err := s.deps.Writer.RemoveAll(ctx, s.cfg.OutputDir); err != nil {
			return nil, fmt.Errorf("generator: clean output: %w", err)
		}
	}

	var previous *buildManifest
	if s.cfg.Incremental && !opts.Force && !s.cfg.CleanBuild {
		previous = s.loadManifest(ctx)
	}

	buildCtx, err := s.loadContext(ctx, opts)
	if err != nil {
		return nil, err
	}

	rendered, diagnostics, skipped, err := s.renderPages(ctx, buildCtx, previous)
	if err != nil {
		return nil, err
	}

	result := &BuildResult{
		GeneratedAt: buildCtx.GeneratedAt,
		Pages:       len(buildCtx.Pages),
		Rendered:    len(rendered),
		Skipped:     skipped,
		Diagnostics: diagnostics,
	}

	if !opts.DryRun {
		artifacts, err := s.persist(ctx, buildCtx, rendered, previous)
		if err != nil {
			return nil, err
		}
		result.Artifacts = artifacts
	}

	result.Duration = time.Since(started)
	s.log("build complete",
		"pages", result.Pages,
		"rendered", result.Rendered,
		"skipped", result.Skipped,
		"dry_run", opts.DryRun,
		"duration", result.Duration.String(),
	)
	return result, nil
}

// Clean removes the output directory and everything under it.
func (s *service) Clean(ctx context.Context) error {
	if err := s.deps.Writer.RemoveAll(ctx, s.cfg.OutputDir); err != nil {
		return fmt.Errorf("generator: clean output: %w", err)
	}
	s.log("output cleaned", "output_dir", s.cfg.OutputDir)
	return nil
}

func (s *service) renderPages(ctx context.Context, buildCtx *BuildContext, previous *buildManifest) ([]RenderedPage, []RenderDiagnostic, int, error) {
	var (
		mu          sync.Mutex
		rendered    []RenderedPage
		diagnostics []RenderDiagnostic
		errs        []error
		skipped     int
	)

	collect := func(outcome renderOutcome) {
		mu.Lock()
		defer mu.Unlock()
		diagnostics = append(diagnostics, outcome.diagnostic)
		switch {
		case outcome.err != nil:
			errs = append(errs, outcome.err)
		case outcome.skipped:
			skipped++
		default:
			rendered = append(rendered, outcome.page)
		}
	}

	jobs := make(chan *PageData)
	var wg sync.WaitGroup
	for i := 0; i < s.effectiveWorkerCount(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for page := range jobs {
				output := buildOutputPath(page.Route)
				if previous.shouldSkipPage(page.Route, page.Hash, output) {
					collect(renderOutcome{
						skipped: true,
						diagnostic: RenderDiagnostic{
							Route:    page.Route,
							Template: page.Template,
							Skipped:  true,
						},
					})
					continue
				}
				collect(s.renderPage(ctx, buildCtx, page))
			}
		}()
	}

	for _, page := range buildCtx.Pages {
		jobs <- page
	}
	close(jobs)
	wg.Wait()

	if len(errs) > 0 {
		return nil, diagnostics, skipped, errors.Join(errs...)
	}
	return rendered, diagnostics, skipped, nil
}

func (s *service) effectiveWorkerCount() int {
	if s.cfg.Workers > 0 {
		return s.cfg.Workers
	}
	return runtime.NumCPU()
}

func (s *service) persist(ctx context.Context, buildCtx *BuildContext, rendered []RenderedPage, previous *buildManifest) ([]string, error) {
	dirCache := map[string]bool{}
	manifest := newBuildManifest()
	manifest.GeneratedAt = buildCtx.GeneratedAt

	var artifacts []string
	for _, page := range rendered {
		target := joinOutputPath(s.cfg.OutputDir, page.Output)
		if err := s.ensureDir(ctx, dirCache, filepath.Dir(target)); err != nil {
			return nil, err
		}
		err := s.deps.Writer.WriteFile(ctx, writeFileRequest{
			Path:        target,
			Content:     bytes.NewReader([]byte(page.HTML)),
			Size:        int64(len(page.HTML)),
			Category:    page.Kind,
			ContentType: "text/html; charset=utf-8",
			Checksum:    page.Checksum,
		})
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, page.Output)
		manifest.setPage(manifestPage{
			Route:      page.Route,
			Output:     page.Output,
			Template:   page.Template,
			Hash:       page.Hash,
			Checksum:   page.Checksum,
			RenderedAt: buildCtx.GeneratedAt,
		})
	}

	// Skipped pages keep their previous manifest entry so the next run can
	// skip them again.
	if previous != nil {
		for _, page := range buildCtx.Pages {
			if _, ok := manifest.Pages[page.Route]; ok {
				continue
			}
			if entry, ok := previous.Pages[page.Route]; ok {
				manifest.setPage(entry)
			}
		}
	}

	extras, err := s.persistSiteArtifacts(ctx, buildCtx, dirCache)
	if err != nil {
		return nil, err
	}
	artifacts = append(artifacts, extras...)

	data, err := manifest.marshal()
	if err != nil {
		return nil, fmt.Errorf("generator: marshal manifest: %w", err)
	}
	if err := s.writeArtifact(ctx, dirCache, manifestFileName, data, "application/json"); err != nil {
		return nil, err
	}

	return artifacts, nil
}

func (s *service) persistSiteArtifacts(ctx context.Context, buildCtx *BuildContext, dirCache map[string]bool) ([]string, error) {
	var artifacts []string

	if s.cfg.GenerateSitemap {
		if err := s.writeArtifact(ctx, dirCache, "sitemap.xml", []byte(s.buildSitemap(buildCtx)), "application/xml"); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, "sitemap.xml")
	}

	if s.cfg.GenerateRobots {
		if err := s.writeArtifact(ctx, dirCache, "robots.txt", []byte(s.buildRobots()), "text/plain"); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, "robots.txt")
	}

	if s.cfg.GenerateFeeds {
		rss, err := s.buildRSSFeed(buildCtx)
		if err != nil {
			return nil, err
		}
		if err := s.writeArtifact(ctx, dirCache, "rss.xml", []byte(rss), "application/rss+xml"); err != nil {
			return nil, err
		}
		atom, err := s.buildAtomFeed(buildCtx)
		if err != nil {
			return nil, err
		}
		if err := s.writeArtifact(ctx, dirCache, "atom.xml", []byte(atom), "application/atom+xml"); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, "rss.xml", "atom.xml")
	}

	return artifacts, nil
}

func (s *service) writeArtifact(ctx context.Context, dirCache map[string]bool, rel string, content []byte, contentType string) error {
	target := joinOutputPath(s.cfg.OutputDir, rel)
	if err := s.ensureDir(ctx, dirCache, filepath.Dir(target)); err != nil {
		return err
	}
	return s.deps.Writer.WriteFile(ctx, writeFileRequest{
		Path:        target,
		Content:     bytes.NewReader(content),
		Size:        int64(len(content)),
		Category:    "site",
		ContentType: contentType,
		Checksum:    computeHash(content),
	})
}

func (s *service) ensureDir(ctx context.Context, dirCache map[string]bool, dir string) error {
	if dir == "" || dirCache[dir] {
		return nil
	}
	if err := s.deps.Writer.EnsureDir(ctx, dir); err != nil {
		return err
	}
	dirCache[dir] = true
	return nil
}

func (s *service) now() time.Time {
	if s.deps.Clock != nil {
		return s.deps.Clock()
	}
	return time.Now()
}

func (s *service) log(msg string, args ...any) {
	if s.deps.Logger == nil {
		return
	}
	s.deps.Logger.Info(msg, args...)
}
