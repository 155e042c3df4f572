package interfaces

import "io"

// TemplateRenderer renders named templates for the static site generator.
// Implementations must be safe for concurrent use by build workers.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}
