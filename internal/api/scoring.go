package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/Biotope/internal/scoring"
)

type ScoringHandler struct {
	engine *scoring.Engine
}

func NewScoringHandler(e *scoring.Engine) *ScoringHandler {
	return &ScoringHandler{engine: e}
}

type StarsRequest struct {
	Index    string  `json:"index"`
	Value    float64 `json:"value"`
	Richness int     `json:"richness"`
}

// Stars rates a single index value.
func (h *ScoringHandler) Stars(w http.ResponseWriter, r *http.Request) {
	var req StarsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.engine.Rate(scoring.Index(req.Index), req.Value, req.Richness)
	if err != nil {
		writeScoringError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type FinalRequest struct {
	MargalefStars *float64 `json:"margalef_stars"`
	PielouStars   *float64 `json:"pielou_stars"`
}

// Final combines two star values into the final score.
func (h *ScoringHandler) Final(w http.ResponseWriter, r *http.Request) {
	var req FinalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MargalefStars == nil || req.PielouStars == nil {
		writeError(w, http.StatusBadRequest, "margalef_stars and pielou_stars required")
		return
	}
	if *req.MargalefStars < 0 || *req.PielouStars < 0 {
		writeError(w, http.StatusUnprocessableEntity, "star values must not be negative")
		return
	}
	writeJSON(w, http.StatusOK, h.engine.Combine(*req.MargalefStars, *req.PielouStars))
}

type ConfigResponse struct {
	Weights         scoring.WeightSet                `json:"weights"`
	MargalefCeiling float64                          `json:"margalef_ceiling"`
	ClampStars      bool                             `json:"clamp_stars"`
	MaxStars        float64                          `json:"max_stars"`
	Policies        map[scoring.Index]scoring.Policy `json:"policies"`
}

// Config reports the active scoring configuration.
func (h *ScoringHandler) Config(w http.ResponseWriter, r *http.Request) {
	opts := h.engine.Options()
	policies := make(map[scoring.Index]scoring.Policy)
	for _, idx := range scoring.Indexes() {
		policies[idx] = idx.Policy()
	}
	writeJSON(w, http.StatusOK, ConfigResponse{
		Weights:         opts.Weights,
		MargalefCeiling: opts.MargalefCeiling,
		ClampStars:      opts.ClampStars,
		MaxStars:        scoring.MaxStars,
		Policies:        policies,
	})
}

func writeScoringError(w http.ResponseWriter, err error) {
	if errors.Is(err, scoring.ErrInvalidInput) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
