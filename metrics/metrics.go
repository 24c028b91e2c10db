package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CompletionsRecorded counts first-time challenge completions.
	CompletionsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "techmastery_completions_recorded_total",
		Help: "Number of first-time challenge completions credited.",
	})

	// CodeExecutions counts sandbox runs by language.
	CodeExecutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "techmastery_code_executions_total",
		Help: "Number of code execution requests run in the sandbox.",
	}, []string{"language"})

	// ChallengesSeeded reports the catalog size after startup seeding.
	ChallengesSeeded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "techmastery_challenges_seeded",
		Help: "Number of challenges present in the catalog.",
	})
)
