package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	guessDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wordlebot_guess_decisions_total",
		Help: "Guesses chosen, by the strategy that chose them",
	}, []string{"strategy"})

	decisionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordlebot_guess_decision_seconds",
		Help:    "Time taken to choose a guess",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
	})

	synthesizedWords = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordlebot_synthesized_words",
		Help:    "Words produced by one beam search, before validation",
		Buckets: prometheus.LinearBuckets(0, 25, 9),
	})

	validationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wordlebot_validation_failures_total",
		Help: "Dictionary validation rounds that failed and fell back to assuming words are valid",
	})
)
