package lint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/posts"
)

// Config controls corpus discovery for the lint service.
type Config struct {
	BasePath      string
	Pattern       string
	Recursive     bool
	DisabledRules []string
}

// Service validates Markdown front matter against the corpus rules.
type Service struct {
	cfg    Config
	fs     fs.FS
	schema *jsonschema.Schema
	logger interfaces.Logger
}

// ServiceOption customises an instantiated Service.
type ServiceOption func(*Service)

// WithLogger attaches a logger used to report run summaries.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService constructs a lint service rooted at the configured base path.
func NewService(cfg Config, opts ...ServiceOption) (*Service, error) {
	basePath := strings.TrimSpace(cfg.BasePath)
	if basePath == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("lint service: stat base path %s: %w", basePath, err)
	}

	if strings.TrimSpace(cfg.Pattern) == "" {
		cfg.Pattern = "*.md"
	}

	schema, err := compileFrontMatterSchema()
	if err != nil {
		return nil, err
	}

	svc := &Service{
		cfg:    cfg,
		fs:     os.DirFS(basePath),
		schema: schema,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}

	return svc, nil
}

// LintFile inspects a single file. Corpus rules that need the whole directory
// are skipped.
func (s *Service) LintFile(ctx context.Context, filePath string) (*Report, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, ErrPathRequired
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel := filepath.ToSlash(filepath.Clean(filePath))
	source, err := fs.ReadFile(s.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("lint read %s: %w", rel, err)
	}

	report := &Report{Files: []string{rel}}
	disabled := s.disabledSet(nil)
	s.lintSource(rel, source, disabled, report)
	s.logRun("lint.file", report)
	return report, nil
}

// LintDirectory inspects every matching file under dir, including the
// slug uniqueness and more_link resolution rules.
func (s *Service) LintDirectory(ctx context.Context, dir string, opts Options) (*Report, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	files, err := s.discover(ctx, dir, opts)
	if err != nil {
		return nil, err
	}

	report := &Report{Files: files}
	disabled := s.disabledSet(opts.DisabledRules)

	metas := make([]fileMeta, 0, len(files))
	for _, file := range files {
		source, err := fs.ReadFile(s.fs, file)
		if err != nil {
			return nil, fmt.Errorf("lint read %s: %w", file, err)
		}
		metas = append(metas, s.lintSource(file, source, disabled, report))
	}

	s.lintCorpus(metas, disabled, report)
	sortIssues(report.Issues)
	s.logRun("lint.directory", report)
	return report, nil
}

// fileMeta carries the identity fields a file contributes to corpus rules.
type fileMeta struct {
	path     string
	slug     string
	url      string
	moreLink string
	parsed   bool
}

func (s *Service) lintSource(file string, source []byte, disabled map[string]struct{}, report *Report) fileMeta {
	meta := fileMeta{path: file}

	block, err := extractFrontMatter(source)
	if s.ruleEnabled(RuleFrontMatterPresent, disabled, report) {
		if err != nil {
			report.Issues = append(report.Issues, Issue{
				Rule:     RuleFrontMatterPresent,
				Severity: SeverityError,
				Path:     file,
				Message:  "file does not begin with a YAML front matter block",
			})
		}
	}
	if err != nil {
		return meta
	}

	fields, err := decodeFrontMatter(block)
	if s.ruleEnabled(RuleFrontMatterYAML, disabled, report) {
		if err != nil {
			report.Issues = append(report.Issues, Issue{
				Rule:     RuleFrontMatterYAML,
				Severity: SeverityError,
				Path:     file,
				Message:  fmt.Sprintf("front matter is not valid YAML: %v", err),
			})
		}
	}
	if err != nil {
		return meta
	}

	if s.ruleEnabled(RuleFrontMatterSchema, disabled, report) {
		if err := s.schema.Validate(fields); err != nil {
			var validationErr *jsonschema.ValidationError
			if errors.As(err, &validationErr) {
				for _, issue := range collectSchemaIssues(validationErr) {
					report.Issues = append(report.Issues, Issue{
						Rule:     RuleFrontMatterSchema,
						Severity: SeverityError,
						Path:     file,
						Field:    strings.TrimPrefix(issue.location, "/"),
						Message:  issue.message,
					})
				}
			} else {
				report.Issues = append(report.Issues, Issue{
					Rule:     RuleFrontMatterSchema,
					Severity: SeverityError,
					Path:     file,
					Message:  err.Error(),
				})
			}
		}
	}

	if s.ruleEnabled(RuleDateRFC3339, disabled, report) {
		if date := stringField(fields, "date"); date != "" {
			if _, err := time.Parse(time.RFC3339, date); err != nil {
				report.Issues = append(report.Issues, Issue{
					Rule:     RuleDateRFC3339,
					Severity: SeverityError,
					Path:     file,
					Field:    "date",
					Message:  fmt.Sprintf("date %q is not RFC3339", date),
				})
			}
		}
	}

	meta.parsed = true
	meta.slug = deriveSlug(file, fields)
	meta.url = strings.TrimSpace(stringField(fields, "url"))
	meta.moreLink = stringField(fields, "more_link")
	return meta
}

func (s *Service) lintCorpus(metas []fileMeta, disabled map[string]struct{}, report *Report) {
	slugs := map[string]string{}
	urls := map[string]struct{}{}
	for _, meta := range metas {
		if !meta.parsed {
			continue
		}
		if meta.url != "" {
			urls[strings.Trim(meta.url, "/")] = struct{}{}
		}
	}

	checkUnique := s.ruleEnabled(RuleSlugUnique, disabled, report)
	for _, meta := range metas {
		if !meta.parsed || meta.slug == "" {
			continue
		}
		first, seen := slugs[meta.slug]
		if !seen {
			slugs[meta.slug] = meta.path
			continue
		}
		if checkUnique {
			report.Issues = append(report.Issues, Issue{
				Rule:     RuleSlugUnique,
				Severity: SeverityError,
				Path:     meta.path,
				Field:    "slug",
				Message:  fmt.Sprintf("slug %q already used by %s", meta.slug, first),
			})
		}
	}

	if !s.ruleEnabled(RuleLinkResolves, disabled, report) {
		return
	}
	for _, meta := range metas {
		if !meta.parsed || meta.moreLink == "" {
			continue
		}
		target := strings.Trim(meta.moreLink, "/")
		if _, ok := slugs[target]; ok {
			continue
		}
		if _, ok := urls[target]; ok {
			continue
		}
		if _, ok := slugs[normalizeSlug(path.Base(target))]; ok {
			continue
		}
		report.Issues = append(report.Issues, Issue{
			Rule:     RuleLinkResolves,
			Severity: SeverityError,
			Path:     meta.path,
			Field:    "more_link",
			Message:  fmt.Sprintf("more_link %q does not resolve to a known post", meta.moreLink),
		})
	}
}

func (s *Service) discover(ctx context.Context, dir string, opts Options) ([]string, error) {
	root := strings.TrimSpace(dir)
	if root == "" || root == "." {
		root = "."
	} else {
		root = filepath.ToSlash(filepath.Clean(root))
	}

	recursive := s.cfg.Recursive
	if opts.Recursive != nil {
		recursive = *opts.Recursive
	}

	pattern := strings.TrimSpace(opts.Pattern)
	if pattern == "" {
		pattern = s.cfg.Pattern
	}

	var files []string
	err := fs.WalkDir(s.fs, root, func(walkPath string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if !recursive && filepath.Clean(walkPath) != filepath.Clean(root) {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		match, err := path.Match(pattern, path.Base(walkPath))
		if err != nil {
			return err
		}
		if match {
			files = append(files, filepath.ToSlash(walkPath))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func (s *Service) disabledSet(extra []string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, rule := range s.cfg.DisabledRules {
		if rule = strings.TrimSpace(rule); rule != "" {
			out[rule] = struct{}{}
		}
	}
	for _, rule := range extra {
		if rule = strings.TrimSpace(rule); rule != "" {
			out[rule] = struct{}{}
		}
	}
	return out
}

// ruleEnabled reports whether a rule should run and counts the evaluation.
func (s *Service) ruleEnabled(rule string, disabled map[string]struct{}, report *Report) bool {
	if _, ok := disabled[rule]; ok {
		return false
	}
	report.Checked++
	return true
}

func (s *Service) logRun(msg string, report *Report) {
	if s.logger == nil {
		return
	}
	s.logger.Info(msg,
		"files", len(report.Files),
		"issues", len(report.Issues),
		"clean", report.Clean(),
	)
}

// deriveSlug mirrors the importer's precedence so lint and import agree on
// post identity: explicit slug, then the url's last segment, then the file
// name stem.
func deriveSlug(file string, fields map[string]any) string {
	if slug := normalizeSlug(stringField(fields, "slug")); slug != "" {
		return slug
	}
	if url := strings.Trim(stringField(fields, "url"), "/"); url != "" {
		if slug := normalizeSlug(path.Base(url)); slug != "" {
			return slug
		}
	}
	stem := strings.TrimSuffix(path.Base(file), path.Ext(file))
	return normalizeSlug(stem)
}

func normalizeSlug(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "." {
		return ""
	}
	normalized, err := posts.NormalizeSlug(trimmed)
	if err != nil {
		return ""
	}
	return normalized
}

func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		return issues[i].Rule < issues[j].Rule
	})
}
