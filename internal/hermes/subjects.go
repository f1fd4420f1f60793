package hermes

import "strings"

const (
	SubjectAssessmentAll = "biotope.assessment.>"

	StreamName   = "BIOTOPE_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectAssessmentCompleted(id string) string { return "biotope.assessment." + id + ".completed" }
func SubjectAssessmentRejected(id string) string  { return "biotope.assessment." + id + ".rejected" }

// AssessmentID extracts the id from an assessment subject, or "" when the
// subject is not one.
func AssessmentID(subject string) string {
	parts := strings.Split(subject, ".")
	if len(parts) != 4 || parts[0] != "biotope" || parts[1] != "assessment" {
		return ""
	}
	return parts[2]
}
