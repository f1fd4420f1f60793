package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Biotope/internal/hermes"
	"github.com/MikeSquared-Agency/Biotope/internal/report"
	"github.com/MikeSquared-Agency/Biotope/internal/scoring"
	"github.com/MikeSquared-Agency/Biotope/internal/survey"
)

type AssessmentsHandler struct {
	engine   *scoring.Engine
	hermes   hermes.Client
	maxBytes int64
	logger   *slog.Logger
}

func NewAssessmentsHandler(e *scoring.Engine, h hermes.Client, maxBytes int64, logger *slog.Logger) *AssessmentsHandler {
	return &AssessmentsHandler{engine: e, hermes: h, maxBytes: maxBytes, logger: logger}
}

// Create scores the survey in the request body. The body format follows
// Content-Type; repeated ?group= parameters filter the species echoed back
// without changing the score.
func (h *AssessmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	format, err := survey.FormatForMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		assessmentsTotal.WithLabelValues(outcomeBadRequest).Inc()
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
		return
	}

	body := r.Body
	if h.maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}
	s, err := survey.Parse(body, format)
	if err != nil {
		assessmentsTotal.WithLabelValues(outcomeBadRequest).Inc()
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "survey body too large")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.engine.Assess(s.Table())
	if err != nil {
		if errors.Is(err, scoring.ErrInvalidInput) {
			h.reject(s, err)
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		h.logger.Error("assessment failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	rep := report.New(s, a, r.URL.Query()["group"])
	assessmentsTotal.WithLabelValues(outcomeCompleted).Inc()
	finalScoreStars.Observe(a.Final.Value)
	assessmentSpecies.Observe(float64(a.Richness))

	if h.hermes != nil {
		if err := h.hermes.Publish(hermes.SubjectAssessmentCompleted(rep.ID.String()), completedEvent(rep)); err != nil {
			h.logger.Warn("publish assessment event", "id", rep.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusCreated, rep)
}

func (h *AssessmentsHandler) reject(s *survey.Survey, cause error) {
	assessmentsTotal.WithLabelValues(outcomeRejected).Inc()
	if h.hermes == nil {
		return
	}
	id := uuid.New().String()
	err := h.hermes.Publish(hermes.SubjectAssessmentRejected(id), hermes.AssessmentRejectedEvent{
		AssessmentID: id,
		InputHash:    s.Hash,
		Error:        cause.Error(),
		Timestamp:    time.Now().UTC(),
	})
	if err != nil {
		h.logger.Warn("publish rejection event", "id", id, "error", err)
	}
}

func completedEvent(rep *report.Report) hermes.AssessmentCompletedEvent {
	a := rep.Assessment
	var degenerate []string
	for _, res := range a.Ratings.All() {
		if res.Degenerate {
			degenerate = append(degenerate, string(res.Index))
		}
	}
	return hermes.AssessmentCompletedEvent{
		AssessmentID: rep.ID.String(),
		InputHash:    rep.Input.Hash,
		Format:       string(rep.Input.Format),
		Richness:     a.Richness,
		Abundance:    a.Abundance,
		FinalScore:   a.Final.Value,
		Overflow:     a.Final.Overflow,
		Degenerate:   degenerate,
		Timestamp:    rep.GeneratedAt,
	}
}
