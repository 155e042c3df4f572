// Package generator renders the post store into a static site: one page per
// post plus paginated index, tag, category and year archive listings, with
// optional sitemap, robots.txt and RSS/Atom feeds. Builds run a worker pool
// and can skip unchanged pages using a manifest from the previous run.
package generator
