package generator

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// HTMLRenderer renders the built-in site templates. It satisfies
// interfaces.TemplateRenderer so hosts can swap in their own theme.
type HTMLRenderer struct {
	templates *template.Template
}

// NewHTMLRenderer parses the embedded default templates.
func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.New("blog").Funcs(templateFuncs()).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("generator: parse templates: %w", err)
	}
	return &HTMLRenderer{templates: tmpl}, nil
}

var _ interfaces.TemplateRenderer = (*HTMLRenderer)(nil)

// Render executes the named template. Output is returned and, when writers
// are supplied, copied to each of them.
func (r *HTMLRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	target := r.templates.Lookup(name)
	if target == nil {
		target = r.templates.Lookup(name + ".tmpl")
	}
	if target == nil {
		return "", fmt.Errorf("generator: template %q not found", name)
	}

	var buf bytes.Buffer
	if err := target.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("generator: execute template %q: %w", name, err)
	}
	if err := copyToWriters(buf.Bytes(), out); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderString parses and executes an inline template.
func (r *HTMLRenderer) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	tmpl, err := template.New("inline").Funcs(templateFuncs()).Parse(templateContent)
	if err != nil {
		return "", fmt.Errorf("generator: parse inline template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("generator: execute inline template: %w", err)
	}
	if err := copyToWriters(buf.Bytes(), out); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func copyToWriters(content []byte, out []io.Writer) error {
	for _, w := range out {
		if w == nil {
			continue
		}
		if _, err := w.Write(content); err != nil {
			return fmt.Errorf("generator: copy rendered output: %w", err)
		}
	}
	return nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"safeHTML": func(value string) template.HTML {
			return template.HTML(value)
		},
		"formatDate": func(value any) string {
			switch t := value.(type) {
			case time.Time:
				return t.Format("January 2, 2006")
			case *time.Time:
				if t == nil {
					return ""
				}
				return t.Format("January 2, 2006")
			default:
				return ""
			}
		},
	}
}
