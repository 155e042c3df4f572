package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

var ErrMarkdownFeatureRequired = errors.New("blog config: markdown feature must be enabled to configure markdown")
var ErrMarkdownContentDirRequired = errors.New("blog config: markdown content directory is required when markdown is enabled")
var ErrGeneratorOutputDirRequired = errors.New("blog config: generator output directory is required when generator is enabled")
var ErrGeneratorFeedLimitInvalid = errors.New("blog config: generator feed limit must be zero or positive")
var ErrGeneratorWorkersInvalid = errors.New("blog config: generator worker count must be zero or positive")
var ErrAdvancedCacheRequiresEnabledCache = errors.New("blog config: advanced cache feature requires cache to be enabled")
var ErrSiteBaseURLInvalid = errors.New("blog config: site base URL is invalid")
var ErrWatcherDebounceInvalid = errors.New("blog config: watcher debounce must be zero or positive")
var ErrLoggingProviderRequired = errors.New("blog config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("blog config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("blog config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("blog config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the blog module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled   bool
	Site      SiteConfig
	Storage   StorageConfig
	Cache     CacheConfig
	Routes    RoutesConfig
	Features  Features
	Commands  CommandsConfig
	Markdown  MarkdownConfig
	Lint      LintConfig
	Generator GeneratorConfig
	Watcher   WatcherConfig
	Logging   LoggingConfig
}

// SiteConfig describes the published site for feeds, sitemaps, and templates.
type SiteConfig struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
	Language    string
}

// StorageConfig lists identifiers for storage-related dependencies.
type StorageConfig struct {
	Provider string
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// RoutesConfig captures routing configuration for permalink resolution.
type RoutesConfig struct {
	RouteConfig *urlkit.Config
	Group       string
}

// Features toggles module functionality.
type Features struct {
	Markdown      bool
	Lint          bool
	Generator     bool
	Watcher       bool
	AdvancedCache bool
	Logger        bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// CommandsConfig captures optional command-layer behaviour.
type CommandsConfig struct {
	Enabled bool
}

// MarkdownConfig captures filesystem and parser behaviour for Markdown ingestion.
type MarkdownConfig struct {
	Enabled       bool
	ContentDir    string
	Pattern       string
	Recursive     bool
	DefaultAuthor string
	Parser        MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// LintConfig captures corpus lint behaviour.
type LintConfig struct {
	Enabled bool
	// FailOn controls the severity that makes a lint run fail: "error" or
	// "warning". Empty defaults to "error".
	FailOn string
	// DisabledRules lists rule identifiers to skip.
	DisabledRules []string
}

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig struct {
	Enabled         bool
	OutputDir       string
	CleanBuild      bool
	Incremental     bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool
	FeedLimit       int
	PostsPerPage    int
	Workers         int
	RenderTimeout   time.Duration
}

// WatcherConfig captures filesystem watch behaviour for rebuild-on-change.
type WatcherConfig struct {
	Enabled  bool
	Debounce time.Duration
}

// DefaultConfig returns opinionated defaults for a markdown-backed blog.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Site: SiteConfig{
			Title:    "blog",
			Language: "en",
		},
		Storage: StorageConfig{
			Provider: "bun",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Routes:   RoutesConfig{},
		Features: Features{},
		Commands: CommandsConfig{},
		Markdown: MarkdownConfig{
			ContentDir: "content",
			Pattern:    "*.md",
			Recursive:  true,
		},
		Lint: LintConfig{
			FailOn: "error",
		},
		Generator: GeneratorConfig{
			OutputDir:       "dist",
			CleanBuild:      true,
			Incremental:     false,
			GenerateSitemap: true,
			GenerateRobots:  false,
			GenerateFeeds:   true,
			FeedLimit:       100,
			PostsPerPage:    10,
			Workers:         0,
			RenderTimeout:   0,
		},
		Watcher: WatcherConfig{
			Debounce: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Features.AdvancedCache && !cfg.Cache.Enabled {
		return ErrAdvancedCacheRequiresEnabledCache
	}
	if cfg.Markdown.Enabled {
		if !cfg.Features.Markdown {
			return ErrMarkdownFeatureRequired
		}
		if strings.TrimSpace(cfg.Markdown.ContentDir) == "" {
			return ErrMarkdownContentDirRequired
		}
	}
	if cfg.Generator.Enabled {
		if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
			return ErrGeneratorOutputDirRequired
		}
		if cfg.Generator.FeedLimit < 0 {
			return ErrGeneratorFeedLimitInvalid
		}
		if cfg.Generator.Workers < 0 {
			return ErrGeneratorWorkersInvalid
		}
	}
	if base := strings.TrimSpace(cfg.Site.BaseURL); base != "" {
		parsed, err := url.Parse(base)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%w: %s", ErrSiteBaseURLInvalid, base)
		}
	}
	if cfg.Watcher.Enabled && cfg.Watcher.Debounce < 0 {
		return ErrWatcherDebounceInvalid
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
