package bootstrap

import (
	"fmt"
	"strings"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/internal/di"
	"github.com/goliatone/go-blog/internal/util"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Options captures configuration shared by the blog CLI entry points.
type Options struct {
	ContentDir    string
	Pattern       string
	Recursive     bool
	DefaultAuthor string

	SiteTitle string
	BaseURL   string
	OutputDir string

	Markdown  bool
	Lint      bool
	Generator bool

	LogLevel       string
	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the blog module alongside the provider used for CLI logging.
type Module struct {
	Blog   *blog.Module
	Logger interfaces.LoggerProvider
}

// BuildModule constructs a blog module configured for command line use.
func BuildModule(opts Options) (*Module, error) {
	cfg := blog.DefaultConfig()

	cfg.Markdown.ContentDir = util.FirstNonEmpty(strings.TrimSpace(opts.ContentDir), "content")
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Markdown.Pattern = trimmed
	}
	cfg.Markdown.Recursive = opts.Recursive
	if author := strings.TrimSpace(opts.DefaultAuthor); author != "" {
		cfg.Markdown.DefaultAuthor = author
	}

	if title := strings.TrimSpace(opts.SiteTitle); title != "" {
		cfg.Site.Title = title
	}
	cfg.Site.BaseURL = strings.TrimSpace(opts.BaseURL)
	if output := strings.TrimSpace(opts.OutputDir); output != "" {
		cfg.Generator.OutputDir = output
	}

	if opts.Markdown {
		cfg.Features.Markdown = true
		cfg.Markdown.Enabled = true
	}
	if opts.Lint {
		cfg.Features.Lint = true
		cfg.Lint.Enabled = true
	}
	if opts.Generator {
		cfg.Features.Generator = true
		cfg.Generator.Enabled = true
	}

	cfg.Features.Logger = true
	cfg.Logging.Provider = "console"
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := blog.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise blog module: %w", err)
	}

	return &Module{
		Blog:   module,
		Logger: module.Container().LoggerProvider(),
	}, nil
}

// SplitList parses a comma separated value list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
