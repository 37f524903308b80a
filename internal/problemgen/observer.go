package problemgen

import "github.com/abhisek/mathquest/internal/logger"

// Observer is notified when generated content fails validation.
type Observer interface {
	ObserveInvalid(p Params, c Content, r Report)
}

// NopObserver discards reports.
type NopObserver struct{}

func (NopObserver) ObserveInvalid(Params, Content, Report) {}

// LogObserver logs invalid content as a warning.
type LogObserver struct {
	Log *logger.Logger
}

func (o LogObserver) ObserveInvalid(p Params, c Content, r Report) {
	o.Log.Warn("generated content failed validation",
		"skill_id", p.SkillID,
		"difficulty", p.Difficulty,
		"seed", p.Seed,
		"validator", r.Validator,
		"reason", r.Reason,
		"question", c.Question,
	)
}
