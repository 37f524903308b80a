package problemgen

import "time"

// Generator produces validated content from a skill id, a difficulty and an
// optional seed. It holds no mutable state; one instance serves all callers.
type Generator struct {
	registry   *Registry
	validators []Validator
	observer   Observer
	now        func() time.Time
}

// New builds a Generator from cfg, filling unset fields with defaults.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.Registry == nil {
		cfg.Registry = def.Registry
	}
	if cfg.Validators == nil {
		cfg.Validators = def.Validators
	}
	if cfg.Observer == nil {
		cfg.Observer = def.Observer
	}
	if cfg.Now == nil {
		cfg.Now = def.Now
	}
	return &Generator{
		registry:   cfg.Registry,
		validators: cfg.Validators,
		observer:   cfg.Observer,
		now:        cfg.Now,
	}
}

// Registry returns the registry the generator resolves skills against.
func (g *Generator) Registry() *Registry { return g.registry }

// Generate produces content for p and validates it. Content is returned even
// when the report is invalid; invalid reports go to the observer.
func (g *Generator) Generate(p Params) Result {
	c := g.content(p)
	report := Validate(c, g.validators)
	if !report.Valid {
		validationFailures.WithLabelValues(report.Validator).Inc()
		g.observer.ObserveInvalid(p, c, report)
	}
	return Result{Content: c, Report: report}
}

// Content is Generate without validation.
func (g *Generator) Content(p Params) Content {
	return g.content(p)
}

func (g *Generator) content(p Params) Content {
	fn, ok := g.registry.Resolve(p.SkillID)
	if !ok {
		generatedTotal.WithLabelValues("placeholder").Inc()
		return placeholderContent(p.SkillID, p.Difficulty)
	}
	if _, exact := g.registry.exact[p.SkillID]; exact {
		generatedTotal.WithLabelValues("exact").Inc()
	} else {
		generatedTotal.WithLabelValues("prefix").Inc()
	}
	return fn(p.Difficulty, g.stream(p.Seed))
}

func (g *Generator) stream(seed string) *Stream {
	if seed == "" {
		return NewStreamFromState(uint32(g.now().UnixNano()))
	}
	return NewStream(seed)
}
