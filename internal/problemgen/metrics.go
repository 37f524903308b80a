package problemgen

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// generatedTotal counts generated items by resolution path.
	generatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mathquest_content_generated_total",
		Help: "Generated content items by resolution (exact, prefix, placeholder)",
	}, []string{"resolution"})

	// validationFailures counts invalid items by the validator that rejected them.
	validationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mathquest_content_validation_failures_total",
		Help: "Generated content that failed validation, by validator",
	}, []string{"validator"})
)
