package generator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// writeFileRequest captures everything the writer needs to persist a build
// artifact.
type writeFileRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Category    string
	ContentType string
	Checksum    string
	Metadata    map[string]string
}

// artifactWriter persists build output. The default implementation writes to
// the local filesystem; tests swap in an in-memory writer.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req writeFileRequest) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	RemoveAll(ctx context.Context, path string) error
}

type osWriter struct{}

// NewFileWriter returns an artifact writer backed by the local filesystem.
func NewFileWriter() artifactWriter {
	return osWriter{}
}

func (osWriter) EnsureDir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("generator: ensure dir %s: %w", path, err)
	}
	return nil
}

func (osWriter) WriteFile(ctx context.Context, req writeFileRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	file, err := os.Create(req.Path)
	if err != nil {
		return fmt.Errorf("generator: create %s: %w", req.Path, err)
	}
	if _, err := io.Copy(file, req.Content); err != nil {
		file.Close()
		return fmt.Errorf("generator: write %s: %w", req.Path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("generator: close %s: %w", req.Path, err)
	}
	return nil
}

func (osWriter) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

func (osWriter) RemoveAll(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.RemoveAll(path)
}

// memoryWriter keeps artifacts in memory. It backs tests and dry runs that
// still want to inspect output.
type memoryWriter struct {
	mu    sync.Mutex
	files map[string][]byte
	dirs  map[string]bool
}

func newMemoryWriter() *memoryWriter {
	return &memoryWriter{
		files: map[string][]byte{},
		dirs:  map[string]bool{},
	}
}

func (w *memoryWriter) EnsureDir(_ context.Context, path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirs[filepath.Clean(path)] = true
	return nil
}

func (w *memoryWriter) WriteFile(_ context.Context, req writeFileRequest) error {
	data, err := io.ReadAll(req.Content)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[filepath.Clean(req.Path)] = data
	return nil
}

func (w *memoryWriter) ReadFile(_ context.Context, path string) ([]byte, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[filepath.Clean(path)]
	if !ok {
		return nil, os.ErrNotExist
	}
	return bytes.Clone(data), nil
}

func (w *memoryWriter) RemoveAll(_ context.Context, path string) error {
	prefix := filepath.Clean(path)
	w.mu.Lock()
	defer w.mu.Unlock()
	for name := range w.files {
		if name == prefix || hasPathPrefix(name, prefix) {
			delete(w.files, name)
		}
	}
	for name := range w.dirs {
		if name == prefix || hasPathPrefix(name, prefix) {
			delete(w.dirs, name)
		}
	}
	return nil
}

func (w *memoryWriter) paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files))
	for name := range w.files {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func hasPathPrefix(name, prefix string) bool {
	rel, err := filepath.Rel(prefix, name)
	if err != nil {
		return false
	}
	return rel != ".." && !hasDotDot(rel)
}

func hasDotDot(rel string) bool {
	return rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator)
}
