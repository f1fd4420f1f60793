// Package render formats assessment reports for output.
package render

import (
	"fmt"

	"github.com/MikeSquared-Agency/Biotope/internal/report"
)

// Renderer formats a Report into bytes for output.
type Renderer interface {
	Render(r *report.Report) ([]byte, error)
}

// NewRenderer returns a Renderer for the given format string.
// Supported formats: "json", "md", "text".
func NewRenderer(format string) (Renderer, error) {
	switch format {
	case "json":
		return &jsonRenderer{}, nil
	case "md":
		return &markdownRenderer{}, nil
	case "text":
		return newTextRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown format %q: supported formats are json, md, text", format)
	}
}
