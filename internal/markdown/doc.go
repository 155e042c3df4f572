// Package markdown implements the Markdown ingestion workflows: front matter
// parsing, filesystem discovery, HTML rendering through goldmark, and the
// import/sync pipeline that turns documents into post records.
package markdown
