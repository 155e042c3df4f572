package markdown

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/goliatone/go-blog/internal/domain"
	"github.com/goliatone/go-blog/internal/util"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/posts"
)

var (
	ErrPostServiceRequired = errors.New("markdown importer: post service is required")
	ErrSlugMissing         = errors.New("markdown importer: document slug could not be determined")
)

// ImporterConfig encapsulates dependencies required to persist markdown documents.
type ImporterConfig struct {
	Posts  interfaces.PostService
	Logger interfaces.Logger
}

// Importer converts markdown documents into post records, creating new posts
// and updating existing ones by slug.
type Importer struct {
	posts  interfaces.PostService
	logger interfaces.Logger
}

// NewImporter builds an Importer from the supplied configuration.
func NewImporter(cfg ImporterConfig) *Importer {
	return &Importer{
		posts:  cfg.Posts,
		logger: cfg.Logger,
	}
}

// ImportDocument imports a single markdown document.
func (i *Importer) ImportDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.posts == nil {
		return nil, ErrPostServiceRequired
	}

	acc := newImportAccumulator()
	if err := i.applyDocument(ctx, doc, opts, importBehaviour{updateExisting: true}, acc); err != nil {
		acc.addError(err)
	}
	return acc.result(), firstError(acc.errors)
}

// ImportDocuments imports an arbitrary slice of documents. Individual failures
// are collected so a single malformed file does not abort the whole run.
func (i *Importer) ImportDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.ImportOptions) (*interfaces.ImportResult, error) {
	if i.posts == nil {
		return nil, ErrPostServiceRequired
	}

	acc := newImportAccumulator()
	seen := make(map[string]string, len(docs))
	for _, doc := range docs {
		if dup := duplicateSlugError(seen, doc); dup != nil {
			acc.addError(dup)
			continue
		}
		if err := i.applyDocument(ctx, doc, opts, importBehaviour{updateExisting: true}, acc); err != nil {
			acc.addError(err)
		}
	}
	return acc.result(), firstError(acc.errors)
}

// SyncDocuments imports all provided documents and optionally deletes posts
// that were previously imported from markdown but are no longer on disk.
func (i *Importer) SyncDocuments(ctx context.Context, docs []*interfaces.Document, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	if i.posts == nil {
		return nil, ErrPostServiceRequired
	}

	acc := newSyncAccumulator()
	seen := make(map[string]string, len(docs))

	for _, doc := range docs {
		if dup := duplicateSlugError(seen, doc); dup != nil {
			acc.addError(dup)
			continue
		}
		res := newImportAccumulator()
		behaviour := importBehaviour{updateExisting: opts.UpdateExisting}
		if err := i.applyDocument(ctx, doc, opts.ImportOptions, behaviour, res); err != nil {
			res.addError(err)
		}
		acc.merge(res.result())
	}

	if opts.DeleteOrphaned {
		if err := i.deleteOrphaned(ctx, seen, opts, acc); err != nil {
			acc.addError(err)
		}
	}

	return acc.result(), firstError(acc.errors)
}

type importBehaviour struct {
	updateExisting bool
}

func (i *Importer) applyDocument(ctx context.Context, doc *interfaces.Document, opts interfaces.ImportOptions, behaviour importBehaviour, acc *importAccumulator) error {
	if doc == nil {
		return errors.New("markdown importer: nil document")
	}

	slug := documentSlug(doc)
	if slug == "" {
		return ErrSlugMissing
	}

	title := strings.TrimSpace(doc.FrontMatter.Title)
	if title == "" {
		title = fallbackTitle(slug)
	}

	author := strings.TrimSpace(doc.FrontMatter.Author)
	if author == "" {
		author = strings.TrimSpace(opts.DefaultAuthor)
	}

	status := selectStatus(doc, opts)
	publishedAt := selectPublishedAt(doc)
	if doc.FrontMatter.Date.IsZero() && publishedAt != nil {
		i.warn("markdown.import.date_fallback", slug, doc.FilePath)
	}
	metadata := documentMetadata(doc)

	existing, err := i.posts.GetBySlug(ctx, slug)
	if err != nil && !errors.Is(err, posts.ErrNotFound) {
		return fmt.Errorf("markdown importer: post lookup %s: %w", slug, err)
	}

	if existing == nil {
		if opts.DryRun {
			acc.skip(slug)
			return nil
		}

		record, createErr := i.posts.Create(ctx, interfaces.PostCreateRequest{
			Slug:        slug,
			Title:       title,
			Description: strings.TrimSpace(doc.FrontMatter.Description),
			Body:        string(doc.Body),
			BodyHTML:    string(doc.BodyHTML),
			Status:      status,
			PublishedAt: publishedAt,
			Author:      author,
			Tags:        doc.FrontMatter.Tags,
			Categories:  doc.FrontMatter.Categories,
			MoreLink:    strings.TrimSpace(doc.FrontMatter.MoreLink),
			Permalink:   strings.TrimSpace(doc.FrontMatter.URL),
			Metadata:    metadata,
		})
		if createErr != nil {
			return fmt.Errorf("markdown importer: create post %s: %w", slug, createErr)
		}
		acc.created(record.ID.String())
		i.log("markdown.import.created", slug, doc.FilePath)
		return nil
	}

	if !behaviour.updateExisting {
		acc.skip(existing.ID.String())
		return nil
	}

	if !documentChanged(existing, doc) {
		acc.skip(existing.ID.String())
		return nil
	}

	if opts.DryRun {
		acc.skip(existing.ID.String())
		return nil
	}

	body := string(doc.Body)
	bodyHTML := string(doc.BodyHTML)
	description := strings.TrimSpace(doc.FrontMatter.Description)
	moreLink := strings.TrimSpace(doc.FrontMatter.MoreLink)
	permalink := strings.TrimSpace(doc.FrontMatter.URL)

	updateReq := interfaces.PostUpdateRequest{
		ID:          existing.ID,
		Title:       &title,
		Description: &description,
		Body:        &body,
		BodyHTML:    &bodyHTML,
		Status:      &status,
		PublishedAt: publishedAt,
		Tags:        doc.FrontMatter.Tags,
		Categories:  doc.FrontMatter.Categories,
		MoreLink:    &moreLink,
		Permalink:   &permalink,
		Metadata:    metadata,
	}
	if author != "" {
		updateReq.Author = &author
	}

	updated, updateErr := i.posts.Update(ctx, updateReq)
	if updateErr != nil {
		return fmt.Errorf("markdown importer: update post %s: %w", slug, updateErr)
	}
	acc.updated(updated.ID.String())
	i.log("markdown.import.updated", slug, doc.FilePath)
	return nil
}

func (i *Importer) deleteOrphaned(ctx context.Context, seen map[string]string, opts interfaces.SyncOptions, acc *syncAccumulator) error {
	existing, err := i.posts.List(ctx, interfaces.PostListOptions{
		IncludeDrafts:   true,
		IncludeArchived: true,
	})
	if err != nil {
		return fmt.Errorf("markdown importer: list posts: %w", err)
	}

	for _, record := range existing {
		if _, ok := seen[record.Slug]; ok {
			continue
		}
		if !markdownSourced(record) {
			continue
		}
		if opts.DryRun {
			acc.deleted++
			continue
		}
		if err := i.posts.Delete(ctx, interfaces.PostDeleteRequest{
			ID:         record.ID,
			HardDelete: true,
		}); err != nil {
			return fmt.Errorf("markdown importer: delete post %s: %w", record.Slug, err)
		}
		acc.deleted++
		i.log("markdown.sync.deleted", record.Slug, "")
	}

	return nil
}

func (i *Importer) log(msg, slug, path string) {
	if i.logger == nil {
		return
	}
	args := []any{"slug", slug}
	if path != "" {
		args = append(args, "markdown_path", path)
	}
	i.logger.Info(msg, args...)
}

func (i *Importer) warn(msg, slug, path string) {
	if i.logger == nil {
		return
	}
	i.logger.Warn(msg, "slug", slug, "markdown_path", path)
}

// duplicateSlugError claims doc's slug in seen and reports a conflict when
// another file in the same run already holds it. The first file to claim a
// slug wins; later conflicting files are skipped with an error.
func duplicateSlugError(seen map[string]string, doc *interfaces.Document) error {
	slug := documentSlug(doc)
	if slug == "" {
		return nil
	}
	if first, ok := seen[slug]; ok {
		return fmt.Errorf("markdown importer: slug %q in %s already claimed by %s", slug, doc.FilePath, first)
	}
	seen[slug] = doc.FilePath
	return nil
}

// documentSlug resolves the post slug from front matter, falling back to the
// last segment of an explicit URL and finally the file name stem.
func documentSlug(doc *interfaces.Document) string {
	if doc == nil {
		return ""
	}
	if slug := normalizeSlug(doc.FrontMatter.Slug); slug != "" {
		return slug
	}
	if url := strings.Trim(strings.TrimSpace(doc.FrontMatter.URL), "/"); url != "" {
		if slug := normalizeSlug(path.Base(url)); slug != "" {
			return slug
		}
	}
	stem := strings.TrimSuffix(path.Base(doc.FilePath), path.Ext(doc.FilePath))
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

func fallbackTitle(slug string) string {
	if slug == "" {
		return "Untitled"
	}
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for idx, word := range words {
		if word == "" {
			continue
		}
		words[idx] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func selectStatus(doc *interfaces.Document, opts interfaces.ImportOptions) string {
	if opts.PublishOverride {
		return string(domain.StatusPublished)
	}
	if doc.FrontMatter.Draft {
		return string(domain.StatusDraft)
	}
	return string(domain.StatusPublished)
}

func selectPublishedAt(doc *interfaces.Document) *time.Time {
	if !doc.FrontMatter.Date.IsZero() {
		date := doc.FrontMatter.Date
		return &date
	}
	if !doc.LastModified.IsZero() {
		modified := doc.LastModified
		return &modified
	}
	return nil
}

func documentMetadata(doc *interfaces.Document) map[string]any {
	return map[string]any{
		"source": "markdown",
		"markdown": map[string]any{
			"path":        doc.FilePath,
			"checksum":    hex.EncodeToString(doc.Checksum),
			"frontmatter": util.CloneAnyMap(doc.FrontMatter.Raw),
			"modified":    doc.LastModified,
		},
	}
}

// documentChanged compares the stored markdown checksum against the incoming
// document so unchanged files are skipped on repeated runs.
func documentChanged(record *interfaces.PostRecord, doc *interfaces.Document) bool {
	stored := checksumFromMetadata(record.Metadata)
	if stored == "" {
		return true
	}
	return stored != hex.EncodeToString(doc.Checksum)
}

func checksumFromMetadata(metadata map[string]any) string {
	markdown, ok := metadata["markdown"].(map[string]any)
	if !ok {
		return ""
	}
	checksum, _ := markdown["checksum"].(string)
	return checksum
}

func markdownSourced(record *interfaces.PostRecord) bool {
	source, _ := record.Metadata["source"].(string)
	return source == "markdown"
}

type importAccumulator struct {
	createdIDs []string
	updatedIDs []string
	skippedIDs []string
	errors     []error
}

func newImportAccumulator() *importAccumulator {
	return &importAccumulator{
		createdIDs: []string{},
		updatedIDs: []string{},
		skippedIDs: []string{},
		errors:     []error{},
	}
}

func (a *importAccumulator) created(id string) {
	if id != "" {
		a.createdIDs = append(a.createdIDs, id)
	}
}

func (a *importAccumulator) updated(id string) {
	if id != "" {
		a.updatedIDs = append(a.updatedIDs, id)
	}
}

func (a *importAccumulator) skip(id string) {
	if id != "" {
		a.skippedIDs = append(a.skippedIDs, id)
	}
}

func (a *importAccumulator) addError(err error) {
	if err != nil {
		a.errors = append(a.errors, err)
	}
}

func (a *importAccumulator) result() *interfaces.ImportResult {
	return &interfaces.ImportResult{
		CreatedPostIDs: a.createdIDs,
		UpdatedPostIDs: a.updatedIDs,
		SkippedPostIDs: a.skippedIDs,
		Errors:         a.errors,
	}
}

type syncAccumulator struct {
	created int
	updated int
	deleted int
	skipped int
	errors  []error
}

func newSyncAccumulator() *syncAccumulator {
	return &syncAccumulator{
		errors: []error{},
	}
}

func (s *syncAccumulator) merge(res *interfaces.ImportResult) {
	if res == nil {
		return
	}
	s.created += len(res.CreatedPostIDs)
	s.updated += len(res.UpdatedPostIDs)
	s.skipped += len(res.SkippedPostIDs)
	s.errors = append(s.errors, res.Errors...)
}

func (s *syncAccumulator) addError(err error) {
	if err != nil {
		s.errors = append(s.errors, err)
	}
}

func (s *syncAccumulator) result() *interfaces.SyncResult {
	return &interfaces.SyncResult{
		Created: s.created,
		Updated: s.updated,
		Deleted: s.deleted,
		Skipped: s.skipped,
		Errors:  s.errors,
	}
}

func firstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
