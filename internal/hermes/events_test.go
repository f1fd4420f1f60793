package hermes

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjects(t *testing.T) {
	assert.Equal(t, "biotope.assessment.abc.completed", SubjectAssessmentCompleted("abc"))
	assert.Equal(t, "biotope.assessment.abc.rejected", SubjectAssessmentRejected("abc"))

	assert.Equal(t, "abc", AssessmentID(SubjectAssessmentCompleted("abc")))
	assert.Equal(t, "", AssessmentID("swarm.task.abc.completed"))
	assert.Equal(t, "", AssessmentID("biotope.assessment"))
}

func TestDecodeEvent(t *testing.T) {
	ts := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	data, err := json.Marshal(AssessmentCompletedEvent{AssessmentID: "abc", Richness: 4, FinalScore: 2.47, Timestamp: ts})
	require.NoError(t, err)

	v, err := DecodeEvent(SubjectAssessmentCompleted("abc"), data)
	require.NoError(t, err)
	completed, ok := v.(*AssessmentCompletedEvent)
	require.True(t, ok)
	assert.Equal(t, 2.47, completed.FinalScore)
	assert.True(t, ts.Equal(completed.Timestamp))

	data, err = json.Marshal(AssessmentRejectedEvent{AssessmentID: "def", Error: "empty table"})
	require.NoError(t, err)
	v, err = DecodeEvent(SubjectAssessmentRejected("def"), data)
	require.NoError(t, err)
	assert.Equal(t, "empty table", v.(*AssessmentRejectedEvent).Error)

	_, err = DecodeEvent("biotope.assessment.x.unknown", data)
	assert.Error(t, err)
	_, err = DecodeEvent(SubjectAssessmentCompleted("x"), []byte("{"))
	assert.Error(t, err)
}
