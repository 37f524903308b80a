package problemgen

// Content is one generated question, ready for the presentation layer.
type Content struct {
	// Question is the rendered prompt, e.g. "7 + 5 = ?".
	Question string `json:"question"`

	// CorrectAnswer is the canonical answer string, e.g. "12" or "3/4".
	CorrectAnswer string `json:"correctAnswer"`

	// Distractors are plausible wrong answers. Only some skills emit them.
	Distractors []string `json:"distractors,omitempty"`

	// Explanation is an optional worked solution.
	Explanation string `json:"explanation,omitempty"`

	// Hints are progressive hints, most general first.
	Hints []string `json:"hints"`

	// Difficulty echoes the requested difficulty.
	Difficulty float64 `json:"difficulty"`

	// MisconceptionTag optionally names the misconception a question probes.
	MisconceptionTag string `json:"misconceptionTag,omitempty"`
}

// Params is one question request.
type Params struct {
	// SkillID selects the skill generator, e.g. "math-add-1".
	SkillID string

	// Difficulty is continuous and unbounded above; negative values are
	// treated like any other number by the generators.
	Difficulty float64

	// Seed makes generation reproducible. Empty means unseeded: the stream is
	// started from the wall clock and the output is not reproducible.
	Seed string
}

// Result pairs generated content with its validation report. Content is
// returned even when the report is invalid.
type Result struct {
	Content Content `json:"content"`
	Report  Report  `json:"report"`
}
