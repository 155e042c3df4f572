package generator

import (
	"strings"
	"time"
)

// buildSitemap emits a sitemap covering every rendered page, routes sorted by
// the page assembly order which is already deterministic.
func (s *service) buildSitemap(buildCtx *BuildContext) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	base := strings.TrimRight(s.cfg.BaseURL, "/")
	for _, page := range buildCtx.Pages {
		b.WriteString("  <url>\n")
		b.WriteString("    <loc>" + escapeXML(base+page.Route) + "</loc>\n")
		if !page.LastModified.IsZero() {
			b.WriteString("    <lastmod>" + page.LastModified.UTC().Format(time.RFC3339) + "</lastmod>\n")
		}
		b.WriteString("  </url>\n")
	}

	b.WriteString("</urlset>\n")
	return b.String()
}

func (s *service) buildRobots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	base := strings.TrimRight(s.cfg.BaseURL, "/")
	if base != "" {
		b.WriteString("Sitemap: " + base + "/sitemap.xml\n")
	}
	return b.String()
}
