package generator

import (
	"html"
	"strings"
	"time"

	"github.com/goliatone/go-blog/posts"
)

const defaultFeedLimit = 100

// feedPosts caps the newest-first post list for feed output.
func (s *service) feedPosts(buildCtx *BuildContext) []*posts.Post {
	limit := s.cfg.FeedLimit
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if len(buildCtx.Posts) <= limit {
		return buildCtx.Posts
	}
	return buildCtx.Posts[:limit]
}

func (s *service) buildRSSFeed(buildCtx *BuildContext) (string, error) {
	base := strings.TrimRight(s.cfg.BaseURL, "/")

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0">` + "\n")
	b.WriteString("  <channel>\n")
	b.WriteString("    <title>" + escapeXML(s.cfg.SiteTitle) + "</title>\n")
	b.WriteString("    <link>" + escapeXML(base+"/") + "</link>\n")
	b.WriteString("    <description>" + escapeXML(s.cfg.SiteDescription) + "</description>\n")
	b.WriteString("    <lastBuildDate>" + buildCtx.GeneratedAt.Format(time.RFC1123Z) + "</lastBuildDate>\n")

	for _, post := range s.feedPosts(buildCtx) {
		url, err := s.deps.Permalinks.PostURL(post)
		if err != nil {
			return "", err
		}
		b.WriteString("    <item>\n")
		b.WriteString("      <title>" + escapeXML(post.Title) + "</title>\n")
		b.WriteString("      <link>" + escapeXML(url) + "</link>\n")
		b.WriteString("      <guid>" + escapeXML(url) + "</guid>\n")
		if post.Description != nil && *post.Description != "" {
			b.WriteString("      <description>" + escapeXML(*post.Description) + "</description>\n")
		}
		b.WriteString("      <pubDate>" + postSortDate(post).UTC().Format(time.RFC1123Z) + "</pubDate>\n")
		b.WriteString("    </item>\n")
	}

	b.WriteString("  </channel>\n")
	b.WriteString("</rss>\n")
	return b.String(), nil
}

func (s *service) buildAtomFeed(buildCtx *BuildContext) (string, error) {
	base := strings.TrimRight(s.cfg.BaseURL, "/")

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom">` + "\n")
	b.WriteString("  <title>" + escapeXML(s.cfg.SiteTitle) + "</title>\n")
	b.WriteString("  <id>" + escapeXML(base+"/atom.xml") + "</id>\n")
	b.WriteString(`  <link href="` + escapeXML(base+"/") + `"/>` + "\n")
	b.WriteString(`  <link rel="self" href="` + escapeXML(base+"/atom.xml") + `"/>` + "\n")
	b.WriteString("  <updated>" + buildCtx.GeneratedAt.Format(time.RFC3339) + "</updated>\n")

	for _, post := range s.feedPosts(buildCtx) {
		url, err := s.deps.Permalinks.PostURL(post)
		if err != nil {
			return "", err
		}
		b.WriteString("  <entry>\n")
		b.WriteString("    <title>" + escapeXML(post.Title) + "</title>\n")
		b.WriteString("    <id>" + escapeXML(url) + "</id>\n")
		b.WriteString(`    <link href="` + escapeXML(url) + `"/>` + "\n")
		b.WriteString("    <updated>" + post.UpdatedAt.UTC().Format(time.RFC3339) + "</updated>\n")
		b.WriteString("    <published>" + postSortDate(post).UTC().Format(time.RFC3339) + "</published>\n")
		if post.Author != "" {
			b.WriteString("    <author><name>" + escapeXML(post.Author) + "</name></author>\n")
		}
		if post.Description != nil && *post.Description != "" {
			b.WriteString("    <summary>" + escapeXML(*post.Description) + "</summary>\n")
		}
		b.WriteString("  </entry>\n")
	}

	b.WriteString("</feed>\n")
	return b.String(), nil
}

func escapeXML(value string) string {
	return html.EscapeString(value)
}
