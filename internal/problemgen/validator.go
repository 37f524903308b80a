package problemgen

import "fmt"

// Validator checks generated content.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator (for reports
	// and logging), e.g. "structural", "safety", "math-check".
	Name() string

	// Validate returns nil if the content passes.
	Validate(c Content) *ValidationError
}

// ValidationError describes why content failed validation.
type ValidationError struct {
	Validator string // Name of the validator that failed
	Message   string // Human-readable description of the failure
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// Report is the outcome of running a validator chain.
type Report struct {
	Valid     bool   `json:"valid"`
	Validator string `json:"validator,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Validate runs the chain in order; the first failure stops it.
func Validate(c Content, chain []Validator) Report {
	for _, v := range chain {
		if err := v.Validate(c); err != nil {
			return Report{Valid: false, Validator: err.Validator, Reason: err.Message}
		}
	}
	return Report{Valid: true}
}

// DefaultValidators returns the standard chain: structural, safety,
// readability, math-check.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&SafetyValidator{},
		&ReadabilityValidator{},
		&MathCheckValidator{},
	}
}
