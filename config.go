package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrMarkdownFeatureRequired           = runtimeconfig.ErrMarkdownFeatureRequired
	ErrMarkdownContentDirRequired        = runtimeconfig.ErrMarkdownContentDirRequired
	ErrGeneratorOutputDirRequired        = runtimeconfig.ErrGeneratorOutputDirRequired
	ErrGeneratorFeedLimitInvalid         = runtimeconfig.ErrGeneratorFeedLimitInvalid
	ErrGeneratorWorkersInvalid           = runtimeconfig.ErrGeneratorWorkersInvalid
	ErrAdvancedCacheRequiresEnabledCache = runtimeconfig.ErrAdvancedCacheRequiresEnabledCache
	ErrSiteBaseURLInvalid                = runtimeconfig.ErrSiteBaseURLInvalid
	ErrWatcherDebounceInvalid            = runtimeconfig.ErrWatcherDebounceInvalid
	ErrLoggingProviderRequired           = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown            = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid               = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid              = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config               = runtimeconfig.Config
	SiteConfig           = runtimeconfig.SiteConfig
	StorageConfig        = runtimeconfig.StorageConfig
	CacheConfig          = runtimeconfig.CacheConfig
	RoutesConfig         = runtimeconfig.RoutesConfig
	Features             = runtimeconfig.Features
	CommandsConfig       = runtimeconfig.CommandsConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
	LintConfig           = runtimeconfig.LintConfig
	GeneratorConfig      = runtimeconfig.GeneratorConfig
	WatcherConfig        = runtimeconfig.WatcherConfig
	LoggingConfig        = runtimeconfig.LoggingConfig
)

// DefaultConfig returns opinionated defaults for a markdown-backed blog.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
