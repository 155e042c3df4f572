package noop

import (
	"context"
	"io"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Cache returns an interfaces.CacheProvider that does nothing.
func Cache() interfaces.CacheProvider {
	return cacheAdapter{}
}

type cacheAdapter struct{}

func (cacheAdapter) Get(context.Context, string) (any, error) {
	return nil, nil
}

func (cacheAdapter) Set(context.Context, string, any, time.Duration) error {
	return nil
}

func (cacheAdapter) Delete(context.Context, string) error {
	return nil
}

func (cacheAdapter) Clear(context.Context) error {
	return nil
}

// Template returns a template renderer that bypasses rendering and echoes
// its input. Useful for dry-run builds and tests.
func Template() interfaces.TemplateRenderer {
	return templateAdapter{}
}

type templateAdapter struct{}

func (templateAdapter) Render(name string, _ any, out ...io.Writer) (string, error) {
	return writeThrough(name, out)
}

func (templateAdapter) RenderString(templateContent string, _ any, out ...io.Writer) (string, error) {
	return writeThrough(templateContent, out)
}

func writeThrough(content string, out []io.Writer) (string, error) {
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := io.WriteString(w, content); err != nil {
			return "", err
		}
	}
	return content, nil
}
