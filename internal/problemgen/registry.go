package problemgen

import (
	"sort"
	"strings"
)

// SkillFunc generates content for one skill from a difficulty and a stream.
// It must be pure: everything random comes from the stream.
type SkillFunc func(difficulty float64, s *Stream) Content

type prefixRule struct {
	prefix string
	skill  string
}

// Registry maps skill ids to generators. It is built once at process start
// and is read-only afterwards, so one instance may be shared freely.
type Registry struct {
	exact    map[string]SkillFunc
	prefixes []prefixRule
}

// DefaultRegistry returns the registry of built-in skill generators.
func DefaultRegistry() *Registry {
	return &Registry{
		exact: map[string]SkillFunc{
			SkillAddition:       generateAddition,
			SkillSubtraction:    generateSubtraction,
			SkillMultiplication: generateMultiplication,
			SkillDivision:       generateDivision,
			SkillFractions:      generateFractionAddition,
			SkillLinearEquation: generateLinearEquation,
		},
		prefixes: []prefixRule{
			{prefix: "math-add", skill: SkillAddition},
			{prefix: "math-sub", skill: SkillSubtraction},
			{prefix: "math-mul", skill: SkillMultiplication},
		},
	}
}

// Resolve returns the generator for skillID: an exact match first, then the
// first matching prefix rule. ok is false when neither applies.
func (r *Registry) Resolve(skillID string) (fn SkillFunc, ok bool) {
	if fn, ok := r.exact[skillID]; ok {
		return fn, true
	}
	for _, rule := range r.prefixes {
		if strings.HasPrefix(skillID, rule.prefix) {
			return r.exact[rule.skill], true
		}
	}
	return nil, false
}

// SkillIDs returns the ids with a dedicated generator, sorted.
func (r *Registry) SkillIDs() []string {
	ids := make([]string, 0, len(r.exact))
	for id := range r.exact {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
