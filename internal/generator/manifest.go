package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"
)

const (
	manifestFileName = ".generator-manifest.json"
	manifestVersion  = 1
)

// buildManifest records what the previous build produced so incremental runs
// can skip pages whose inputs did not change.
type buildManifest struct {
	Version     int
	GeneratedAt time.Time
	Pages       map[string]manifestPage
}

// manifestPage is the persisted record for a rendered page, keyed by route.
type manifestPage struct {
	Route      string    `json:"route"`
	Output     string    `json:"output"`
	Template   string    `json:"template"`
	Hash       string    `json:"hash"`
	Checksum   string    `json:"checksum"`
	RenderedAt time.Time `json:"rendered_at"`
}

type manifestDocument struct {
	Version     int            `json:"version"`
	GeneratedAt time.Time      `json:"generated_at"`
	Pages       []manifestPage `json:"pages"`
}

func newBuildManifest() *buildManifest {
	return &buildManifest{
		Version: manifestVersion,
		Pages:   map[string]manifestPage{},
	}
}

// shouldSkipPage reports whether the page at route can be reused from the
// previous build: same input hash and same output location.
func (m *buildManifest) shouldSkipPage(route, hash, output string) bool {
	if m == nil || hash == "" {
		return false
	}
	entry, ok := m.Pages[route]
	if !ok {
		return false
	}
	return entry.Hash == hash && entry.Output == output
}

func (m *buildManifest) setPage(page manifestPage) {
	if m.Pages == nil {
		m.Pages = map[string]manifestPage{}
	}
	m.Pages[page.Route] = page
}

func (m *buildManifest) marshal() ([]byte, error) {
	doc := manifestDocument{
		Version:     m.Version,
		GeneratedAt: m.GeneratedAt,
		Pages:       make([]manifestPage, 0, len(m.Pages)),
	}
	for _, page := range m.Pages {
		doc.Pages = append(doc.Pages, page)
	}
	sort.Slice(doc.Pages, func(i, j int) bool {
		return doc.Pages[i].Route < doc.Pages[j].Route
	})
	return json.MarshalIndent(doc, "", "  ")
}

func parseManifest(data []byte) (*buildManifest, error) {
	var doc manifestDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}
	if doc.Version != manifestVersion {
		return nil, fmt.Errorf("generator: unsupported manifest version %d", doc.Version)
	}
	manifest := newBuildManifest()
	manifest.GeneratedAt = doc.GeneratedAt
	for _, page := range doc.Pages {
		manifest.setPage(page)
	}
	return manifest, nil
}

func (s *service) loadManifest(ctx context.Context) *buildManifest {
	path := joinOutputPath(s.cfg.OutputDir, manifestFileName)
	data, err := s.deps.Writer.ReadFile(ctx, path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log("manifest unreadable, rebuilding everything", "error", err)
		}
		return nil
	}
	manifest, err := parseManifest(data)
	if err != nil {
		s.log("manifest invalid, rebuilding everything", "error", err)
		return nil
	}
	return manifest
}
