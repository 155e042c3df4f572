package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-blog/posts"
)

// Page kinds produced by a build.
const (
	KindPost     = "post"
	KindIndex    = "index"
	KindTag      = "tag"
	KindCategory = "category"
	KindArchive  = "archive"
)

// Template names the renderer must provide.
const (
	TemplatePost    = "post"
	TemplateIndex   = "index"
	TemplateTerm    = "term"
	TemplateArchive = "archive"
)

// SiteMetadata exposes site-wide information to templates.
type SiteMetadata struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
	Language    string
}

// BuildMetadata surfaces high level build information to templates.
type BuildMetadata struct {
	GeneratedAt time.Time
	Options     BuildOptions
}

// PageData describes a single page to render: an individual post, or a
// listing page aggregating several posts.
type PageData struct {
	Kind     string
	Route    string
	Template string
	Title    string

	// Post is set for post pages.
	Post *posts.Post
	// Posts carries the members of a listing page, newest first.
	Posts []*posts.Post
	// Term is the tag or category slug for taxonomy pages.
	Term string
	// Year is set for archive pages.
	Year int
	// Page and TotalPages describe pagination position on index pages.
	Page       int
	TotalPages int

	// Hash fingerprints the page inputs for incremental builds.
	Hash         string
	LastModified time.Time
}

// TemplateContext is the data contract passed to template renderers.
type TemplateContext struct {
	Site    SiteMetadata
	Page    *PageData
	Build   BuildMetadata
	Helpers TemplateHelpers
}

// TemplateHelpers exposes convenience helpers to template authors.
type TemplateHelpers struct {
	baseURL  string
	postPath func(*posts.Post) (string, error)
}

func newTemplateHelpers(baseURL string, postPath func(*posts.Post) (string, error)) TemplateHelpers {
	return TemplateHelpers{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		postPath: postPath,
	}
}

// PostPath resolves the site-relative path for a post. Resolution failures
// degrade to "#" so a template never breaks the whole build over one link.
func (h TemplateHelpers) PostPath(post *posts.Post) string {
	if h.postPath == nil || post == nil {
		return "#"
	}
	route, err := h.postPath(post)
	if err != nil {
		return "#"
	}
	return route
}

// BaseURL returns the configured site base URL.
func (h TemplateHelpers) BaseURL() string {
	return h.baseURL
}

// WithBaseURL prefixes the provided path with the configured base URL.
func (h TemplateHelpers) WithBaseURL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return h.baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if h.baseURL == "" {
		return path
	}
	return h.baseURL + path
}

// BuildContext carries everything a build run needs: the visible posts and
// the pages derived from them.
type BuildContext struct {
	Posts       []*posts.Post
	Pages       []*PageData
	GeneratedAt time.Time
	Options     BuildOptions
}

func (s *service) loadContext(ctx context.Context, opts BuildOptions) (*BuildContext, error) {
	visible, err := s.deps.Posts.List(ctx, posts.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("generator: list posts: %w", err)
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return postSortDate(visible[i]).After(postSortDate(visible[j]))
	})

	buildCtx := &BuildContext{
		Posts:       visible,
		GeneratedAt: s.now().UTC(),
		Options:     opts,
	}

	pages, err := s.assemblePages(visible)
	if err != nil {
		return nil, err
	}
	buildCtx.Pages = pages
	return buildCtx, nil
}

func (s *service) assemblePages(visible []*posts.Post) ([]*PageData, error) {
	pages := make([]*PageData, 0, len(visible)+8)

	for _, post := range visible {
		route, err := s.deps.Permalinks.PostPath(post)
		if err != nil {
			return nil, fmt.Errorf("generator: resolve permalink for %s: %w", post.Slug, err)
		}
		pages = append(pages, &PageData{
			Kind:         KindPost,
			Route:        route,
			Template:     TemplatePost,
			Title:        post.Title,
			Post:         post,
			Hash:         postHash(post),
			LastModified: post.UpdatedAt,
		})
	}

	pages = append(pages, s.indexPages(visible)...)

	taxonomy, err := s.taxonomyPages(visible)
	if err != nil {
		return nil, err
	}
	pages = append(pages, taxonomy...)
	pages = append(pages, s.archivePages(visible)...)

	return pages, nil
}

func (s *service) indexPages(visible []*posts.Post) []*PageData {
	perPage := s.cfg.PostsPerPage
	if perPage <= 0 {
		perPage = len(visible)
		if perPage == 0 {
			perPage = 1
		}
	}

	total := (len(visible) + perPage - 1) / perPage
	if total == 0 {
		total = 1
	}

	pages := make([]*PageData, 0, total)
	for page := 1; page <= total; page++ {
		start := (page - 1) * perPage
		end := start + perPage
		if end > len(visible) {
			end = len(visible)
		}
		members := visible[start:end]

		route := "/"
		if page > 1 {
			route = fmt.Sprintf("/page/%d/", page)
		}
		pages = append(pages, &PageData{
			Kind:         KindIndex,
			Route:        route,
			Template:     TemplateIndex,
			Title:        indexTitle(page),
			Posts:        members,
			Page:         page,
			TotalPages:   total,
			Hash:         listingHash("index", fmt.Sprint(page), members),
			LastModified: newestUpdate(members),
		})
	}
	return pages
}

func (s *service) taxonomyPages(visible []*posts.Post) ([]*PageData, error) {
	tagged := groupByTerm(visible, posts.TermKindTag)
	categorised := groupByTerm(visible, posts.TermKindCategory)

	pages := make([]*PageData, 0, len(tagged)+len(categorised))

	for _, slug := range sortedKeys(tagged) {
		members := tagged[slug]
		url, err := s.deps.Permalinks.TagURL(slug)
		if err != nil {
			return nil, err
		}
		pages = append(pages, &PageData{
			Kind:         KindTag,
			Route:        relativeRoute(url),
			Template:     TemplateTerm,
			Title:        slug,
			Term:         slug,
			Posts:        members,
			Hash:         listingHash("tag", slug, members),
			LastModified: newestUpdate(members),
		})
	}

	for _, slug := range sortedKeys(categorised) {
		members := categorised[slug]
		url, err := s.deps.Permalinks.CategoryURL(slug)
		if err != nil {
			return nil, err
		}
		pages = append(pages, &PageData{
			Kind:         KindCategory,
			Route:        relativeRoute(url),
			Template:     TemplateTerm,
			Title:        slug,
			Term:         slug,
			Posts:        members,
			Hash:         listingHash("category", slug, members),
			LastModified: newestUpdate(members),
		})
	}

	return pages, nil
}

func (s *service) archivePages(visible []*posts.Post) []*PageData {
	byYear := map[int][]*posts.Post{}
	for _, post := range visible {
		year := postSortDate(post).Year()
		byYear[year] = append(byYear[year], post)
	}

	years := make([]int, 0, len(byYear))
	for year := range byYear {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	pages := make([]*PageData, 0, len(years))
	for _, year := range years {
		members := byYear[year]
		pages = append(pages, &PageData{
			Kind:         KindArchive,
			Route:        fmt.Sprintf("/%04d/", year),
			Template:     TemplateArchive,
			Title:        fmt.Sprint(year),
			Year:         year,
			Posts:        members,
			Hash:         listingHash("archive", fmt.Sprint(year), members),
			LastModified: newestUpdate(members),
		})
	}
	return pages
}

func groupByTerm(visible []*posts.Post, kind string) map[string][]*posts.Post {
	grouped := map[string][]*posts.Post{}
	for _, post := range visible {
		for _, term := range post.Terms {
			if term == nil || term.Kind != kind {
				continue
			}
			grouped[term.Slug] = append(grouped[term.Slug], post)
		}
	}
	return grouped
}

func sortedKeys(grouped map[string][]*posts.Post) []string {
	keys := make([]string, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func indexTitle(page int) string {
	if page <= 1 {
		return "Home"
	}
	return fmt.Sprintf("Home, page %d", page)
}

// postHash fingerprints the render inputs of a post page so unchanged posts
// can be skipped on incremental builds.
func postHash(post *posts.Post) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%d|%d",
		post.Slug,
		post.Title,
		post.UpdatedAt.UTC().Format(time.RFC3339Nano),
		len(post.BodyHTML),
		len(post.Terms),
	)
	return hex.EncodeToString(h.Sum(nil))
}

func listingHash(kind, key string, members []*posts.Post) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s", kind, key)
	for _, post := range members {
		fmt.Fprintf(h, "|%s@%s", post.Slug, post.UpdatedAt.UTC().Format(time.RFC3339Nano))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func newestUpdate(members []*posts.Post) time.Time {
	var newest time.Time
	for _, post := range members {
		if post.UpdatedAt.After(newest) {
			newest = post.UpdatedAt
		}
	}
	return newest
}

func postSortDate(post *posts.Post) time.Time {
	if post.PublishedAt != nil {
		return *post.PublishedAt
	}
	return post.CreatedAt
}

func relativeRoute(url string) string {
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
