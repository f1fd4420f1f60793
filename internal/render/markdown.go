package render

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/MikeSquared-Agency/Biotope/internal/report"
	"github.com/MikeSquared-Agency/Biotope/internal/scoring"
)

type markdownRenderer struct{}

var mdFuncs = template.FuncMap{
	"stars": func(sr scoring.StarRating) string { return Glyphs(sr).String() },
	"f2":    func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"f4":    func(v float64) string { return fmt.Sprintf("%.4f", v) },
	"num":   func(v float64) string { return fmt.Sprintf("%g", v) },
}

var mdTemplate = template.Must(template.New("report").Funcs(mdFuncs).Parse(`# {{ .Title }}

## Final score: {{ f2 .Assessment.Final.Value }} / 5 {{ stars .Assessment.Final.Stars }}

**Richness (S):** {{ .Assessment.Richness }} | **Abundance (N):** {{ num .Assessment.Abundance }}
{{- with .Input.Hash }} | **Input:** ` + "`" + `{{ . }}` + "`" + `{{ end }}

| Index | Value | Theoretical max | Stars | Rating |
|---|---|---|---|---|
{{ range .Assessment.Ratings.All }}| {{ .Index }} | {{ f4 .Value }} | {{ f4 .Max }} | {{ f2 .Stars.Value }} | {{ stars .Stars }} |
{{ end }}{{ if .Assessment.Notes }}
## Notes
{{ range .Assessment.Notes }}
- {{ . }}{{ end }}
{{ end }}
## Species{{ with .Input.Groups }} ({{ range $i, $g := . }}{{ if $i }}, {{ end }}{{ $g }}{{ end }}){{ end }}

| Group | Specie | Count |
|---|---|---|
{{ range .Species }}| {{ .Group }} | {{ .Specie }} | {{ num .Count }} |
{{ end }}
---
*Generated by {{ .Tool }} {{ .Version }} at {{ .GeneratedAt.Format "2006-01-02T15:04:05Z07:00" }} ({{ .ID }})*
`))

func (r *markdownRenderer) Render(rep *report.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, rep); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}
