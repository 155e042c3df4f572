package permalinks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-blog/posts"
)

// Route names registered in the default route group.
const (
	RouteHome     = "home"
	RoutePost     = "post"
	RouteTag      = "tag"
	RouteCategory = "category"
	RouteArchive  = "archive"
	RouteFeed     = "feed"
)

// DefaultGroup is the route group permalinks resolve against when the host
// does not supply one.
const DefaultGroup = "site"

var (
	ErrRouteConfigRequired = errors.New("permalinks: route config is required")
	ErrGroupNotFound       = errors.New("permalinks: route group not found")
)

// DefaultRouteConfig returns the Hugo-style year/month/slug layout used by
// the post corpus, rooted at the supplied base URL.
func DefaultRouteConfig(baseURL string) *urlkit.Config {
	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    DefaultGroup,
				BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
				Paths: map[string]string{
					RouteHome:     "/",
					RoutePost:     "/:year/:month/:slug/",
					RouteTag:      "/tags/:tag/",
					RouteCategory: "/categories/:category/",
					RouteArchive:  "/:year/",
					RouteFeed:     "/:feed",
				},
			},
		},
	}
}

// Resolver builds site URLs for posts and taxonomy pages through a go-urlkit
// route manager.
type Resolver struct {
	manager *urlkit.RouteManager
	group   *urlkit.Group
}

// NewResolver constructs a Resolver from routing configuration. An empty
// group falls back to DefaultGroup.
func NewResolver(cfg *urlkit.Config, group string) (*Resolver, error) {
	if cfg == nil {
		return nil, ErrRouteConfigRequired
	}
	if strings.TrimSpace(group) == "" {
		group = DefaultGroup
	}

	manager := urlkit.NewRouteManager(cfg)
	resolved, err := lookupGroup(manager, group)
	if err != nil {
		return nil, err
	}

	return &Resolver{
		manager: manager,
		group:   resolved,
	}, nil
}

// PostURL resolves the permalink for a post. An explicit permalink on the
// record wins over the routed layout.
func (r *Resolver) PostURL(post *posts.Post) (string, error) {
	if post == nil {
		return "", errors.New("permalinks: post is nil")
	}

	if post.Permalink != nil && strings.TrimSpace(*post.Permalink) != "" {
		return r.absolute(*post.Permalink), nil
	}

	date := postDate(post)
	return r.build(RoutePost, map[string]any{
		"year":  fmt.Sprintf("%04d", date.Year()),
		"month": fmt.Sprintf("%02d", int(date.Month())),
		"slug":  post.Slug,
	})
}

// TagURL resolves the index page URL for a tag.
func (r *Resolver) TagURL(slug string) (string, error) {
	return r.build(RouteTag, map[string]any{"tag": slug})
}

// CategoryURL resolves the index page URL for a category.
func (r *Resolver) CategoryURL(slug string) (string, error) {
	return r.build(RouteCategory, map[string]any{"category": slug})
}

// ArchiveURL resolves the URL of a year archive page.
func (r *Resolver) ArchiveURL(year int) (string, error) {
	return r.build(RouteArchive, map[string]any{"year": fmt.Sprintf("%04d", year)})
}

// HomeURL resolves the site root.
func (r *Resolver) HomeURL() (string, error) {
	return r.build(RouteHome, nil)
}

// FeedURL resolves the URL of a feed artifact such as rss.xml or atom.xml.
func (r *Resolver) FeedURL(name string) (string, error) {
	return r.build(RouteFeed, map[string]any{"feed": name})
}

// PostPath returns the site-relative path for a post, used when writing
// rendered pages to the output directory.
func (r *Resolver) PostPath(post *posts.Post) (string, error) {
	url, err := r.PostURL(post)
	if err != nil {
		return "", err
	}
	return r.relative(url), nil
}

func (r *Resolver) build(route string, params map[string]any) (string, error) {
	builder, err := r.safeBuilder(route)
	if err != nil {
		return "", err
	}
	for key, value := range params {
		builder.WithParam(key, value)
	}
	return builder.Build()
}

func (r *Resolver) safeBuilder(route string) (builder *urlkit.Builder, err error) {
	if r == nil || r.group == nil {
		return nil, ErrGroupNotFound
	}
	defer func() {
		if rec := recover(); rec != nil {
			builder = nil
			err = fmt.Errorf("permalinks: route %q not registered: %v", route, rec)
		}
	}()
	builder = r.group.Builder(route)
	return builder, nil
}

func (r *Resolver) absolute(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := ""
	if home, err := r.HomeURL(); err == nil {
		base = strings.TrimRight(home, "/")
	}
	return base + "/" + strings.TrimLeft(path, "/")
}

// relative strips the scheme and host so the generator can map a URL onto
// the output directory.
func (r *Resolver) relative(url string) string {
	trimmed := url
	if idx := strings.Index(trimmed, "://"); idx >= 0 {
		trimmed = trimmed[idx+3:]
		if slash := strings.Index(trimmed, "/"); slash >= 0 {
			trimmed = trimmed[slash:]
		} else {
			trimmed = "/"
		}
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return trimmed
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, ErrRouteConfigRequired
	}
	defer func() {
		if rec := recover(); rec != nil {
			group = nil
			err = fmt.Errorf("%w: %s", ErrGroupNotFound, name)
		}
	}()
	group = manager.Group(name)
	return group, nil
}

func postDate(post *posts.Post) time.Time {
	if post.PublishedAt != nil {
		return *post.PublishedAt
	}
	return post.CreatedAt
}
