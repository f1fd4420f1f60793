package render

import (
	"encoding/json"

	"github.com/MikeSquared-Agency/Biotope/internal/report"
)

type jsonRenderer struct{}

func (r *jsonRenderer) Render(rep *report.Report) ([]byte, error) {
	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
