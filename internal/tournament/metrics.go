package tournament

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// rejectionsTotal counts refused requests by kind and reason.
	rejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mathquest_tournament_rejections_total",
		Help: "Tournament requests refused, by kind and reason",
	}, []string{"kind", "reason"})

	// submissionsTotal counts graded submissions.
	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mathquest_tournament_submissions_total",
		Help: "Graded tournament submissions, by stage and whether they were flagged",
	}, []string{"stage", "flagged"})

	// finalistsPromoted counts finalists created by qualifier locks.
	finalistsPromoted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mathquest_tournament_finalists_promoted_total",
		Help: "Finalists promoted from locked qualifiers",
	})
)
