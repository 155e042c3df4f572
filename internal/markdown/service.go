package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Config controls how the Markdown service discovers and parses files.
type Config struct {
	BasePath      string
	Pattern       string
	Recursive     bool
	DefaultAuthor string
	Parser        interfaces.ParseOptions
}

// Service implements interfaces.MarkdownService for filesystem-backed documents.
type Service struct {
	cfg      Config
	parser   interfaces.MarkdownParser
	loader   *Loader
	importer *Importer
	logger   interfaces.Logger
}

// ServiceOption customises an instantiated Service.
type ServiceOption func(*Service)

// WithImporter wires an Importer so Import, ImportDirectory, and Sync can
// persist documents as posts.
func WithImporter(importer *Importer) ServiceOption {
	return func(s *Service) {
		s.importer = importer
	}
}

// WithLogger attaches a logger used for import and sync reporting.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService constructs a Markdown service using an underlying loader. When
// parser is nil, a Goldmark parser with the provided default options is created.
func NewService(cfg Config, parser interfaces.MarkdownParser, opts ...ServiceOption) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}

	if parser == nil {
		parser = NewGoldmarkParser(cfg.Parser)
	}

	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
	})

	svc := &Service{
		cfg:    cfg,
		parser: parser,
		loader: loader,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}

	return svc, nil
}

// Load reads a single Markdown document relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Document, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}
	if err := s.renderDocument(ctx, result.Document, opts.Parser); err != nil {
		return nil, err
	}
	return result.Document, nil
}

// LoadDirectory reads every Markdown document within the supplied directory.
// Any file that fails to load or parse fails the whole call; import and sync
// use the tolerant corpus walk instead.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Document, error) {
	results, failures, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		return nil, failures[0].Err
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		if err := s.renderDocument(ctx, result.Document, opts.Parser); err != nil {
			return nil, err
		}
		docs = append(docs, result.Document)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].FilePath < docs[j].FilePath
	})
	return docs, nil
}

// loadCorpus walks dir collecting every document it can parse and render.
// Per-file problems come back as errors alongside the usable documents so
// one malformed file cannot abort an import or sync run.
func (s *Service) loadCorpus(ctx context.Context, dir string) ([]*interfaces.Document, []error, error) {
	results, failures, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), LoadParams{})
	if err != nil {
		return nil, nil, err
	}

	errs := make([]error, 0, len(failures))
	for _, failure := range failures {
		errs = append(errs, failure.Err)
		if s.logger != nil {
			s.logger.Warn("markdown.load.failed", "markdown_path", failure.Path, "error", failure.Err)
		}
	}

	docs := make([]*interfaces.Document, 0, len(results))
	for _, result := range results {
		if renderErr := s.renderDocument(ctx, result.Document, interfaces.ParseOptions{}); renderErr != nil {
			errs = append(errs, renderErr)
			continue
		}
		docs = append(docs, result.Document)
	}
	return docs, errs, nil
}

// Render parses Markdown bytes into HTML using the configured parser.
func (s *Service) Render(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return s.parser.ParseWithOptions(markdown, mergeParseOptions(s.cfg.Parser, opts))
}

// RenderDocument converts the document's Markdown body into HTML and stores it
// back on the document.
func (s *Service) RenderDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ParseOptions) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("markdown service: document is nil")
	}
	html, err := s.Render(ctx, doc.Body, opts)
	if err != nil {
		return nil, err
	}
	doc.BodyHTML = html
	return html, nil
}

// Import persists a single parsed document as a post.
func (s *Service) Import(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if s.importer == nil {
		return nil, ErrPostServiceRequired
	}
	if doc != nil && len(doc.BodyHTML) == 0 {
		if err := s.renderDocument(ctx, doc, interfaces.ParseOptions{}); err != nil {
			return nil, err
		}
	}
	return s.importer.ImportDocument(ctx, doc, s.applyImportDefaults(opts))
}

// ImportDirectory loads every Markdown document within dir and imports each as
// a post. Files that fail to load surface in the result's Errors while the
// rest of the corpus still imports.
func (s *Service) ImportDirectory(ctx context.Context, dir string, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if s.importer == nil {
		return nil, ErrPostServiceRequired
	}
	docs, loadErrs, err := s.loadCorpus(ctx, dir)
	if err != nil {
		return nil, err
	}
	result, importErr := s.importer.ImportDocuments(ctx, docs, s.applyImportDefaults(opts))
	if result == nil {
		return nil, importErr
	}
	result.Errors = append(loadErrs, result.Errors...)
	return result, firstError(result.Errors)
}

// Sync reconciles the post store against the documents found within dir.
// When any file fails to load, orphan deletion is skipped for the run since
// the corpus on disk could not be fully accounted for.
func (s *Service) Sync(ctx context.Context, dir string, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	if s.importer == nil {
		return nil, ErrPostServiceRequired
	}
	docs, loadErrs, err := s.loadCorpus(ctx, dir)
	if err != nil {
		return nil, err
	}
	opts.ImportOptions = s.applyImportDefaults(opts.ImportOptions)
	if len(loadErrs) > 0 {
		opts.DeleteOrphaned = false
	}
	result, syncErr := s.importer.SyncDocuments(ctx, docs, opts)
	if result == nil {
		return nil, syncErr
	}
	result.Errors = append(loadErrs, result.Errors...)
	return result, firstError(result.Errors)
}

func (s *Service) applyImportDefaults(opts interfaces.ImportOptions) interfaces.ImportOptions {
	if strings.TrimSpace(opts.DefaultAuthor) == "" {
		opts.DefaultAuthor = s.cfg.DefaultAuthor
	}
	return opts
}

func (s *Service) renderDocument(ctx context.Context, doc *interfaces.Document, overrides interfaces.ParseOptions) error {
	if doc == nil {
		return nil
	}
	html, err := s.Render(ctx, doc.Body, overrides)
	if err != nil {
		return fmt.Errorf("markdown render document %s: %w", doc.FilePath, err)
	}
	doc.BodyHTML = html
	return nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Sanitize {
		result.Sanitize = true
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	return result
}

func toLoaderParams(opts interfaces.LoadOptions) LoadParams {
	return LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	}
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("markdown service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
