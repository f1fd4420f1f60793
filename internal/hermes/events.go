package hermes

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type AssessmentCompletedEvent struct {
	AssessmentID string    `json:"assessment_id"`
	InputHash    string    `json:"input_hash,omitempty"`
	Format       string    `json:"format,omitempty"`
	Richness     int       `json:"richness"`
	Abundance    float64   `json:"abundance"`
	FinalScore   float64   `json:"final_score"`
	Overflow     bool      `json:"overflow,omitempty"`
	Degenerate   []string  `json:"degenerate,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

type AssessmentRejectedEvent struct {
	AssessmentID string    `json:"assessment_id"`
	InputHash    string    `json:"input_hash,omitempty"`
	Error        string    `json:"error"`
	Timestamp    time.Time `json:"timestamp"`
}

// DecodeEvent unmarshals data into the event type its subject carries.
func DecodeEvent(subject string, data []byte) (any, error) {
	var v any
	switch {
	case strings.HasSuffix(subject, ".completed"):
		v = &AssessmentCompletedEvent{}
	case strings.HasSuffix(subject, ".rejected"):
		v = &AssessmentRejectedEvent{}
	default:
		return nil, fmt.Errorf("hermes: no event type for subject %q", subject)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("hermes: decode %s: %w", subject, err)
	}
	return v, nil
}
