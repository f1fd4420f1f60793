package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeCompleted  = "completed"
	outcomeRejected   = "rejected"
	outcomeBadRequest = "bad_request"
)

var (
	assessmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biotope_assessments_total",
		Help: "Assessment requests by outcome.",
	}, []string{"outcome"})

	finalScoreStars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "biotope_final_score_stars",
		Help:    "Final star score of completed assessments.",
		Buckets: []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5, 6},
	})

	assessmentSpecies = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "biotope_assessment_species",
		Help:    "Species richness of completed assessments.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
)
