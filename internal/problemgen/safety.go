package problemgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// forbiddenTerms are matched as lowercase substrings of the question and
// explanation.
var forbiddenTerms = []string{"kill", "hate", "stupid", "dummy"}

// MaxQuestionLength is the readability limit on question length, in
// characters.
const MaxQuestionLength = 150

// SafetyValidator rejects content containing a forbidden term.
type SafetyValidator struct{}

func (v *SafetyValidator) Name() string { return "safety" }

func (v *SafetyValidator) Validate(c Content) *ValidationError {
	text := strings.ToLower(c.Question + " " + c.Explanation)
	for _, term := range forbiddenTerms {
		if strings.Contains(text, term) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   "forbidden terms",
			}
		}
	}
	return nil
}

// ReadabilityValidator rejects questions longer than MaxQuestionLength.
type ReadabilityValidator struct{}

func (v *ReadabilityValidator) Name() string { return "readability" }

func (v *ReadabilityValidator) Validate(c Content) *ValidationError {
	if n := utf8.RuneCountInString(c.Question); n > MaxQuestionLength {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("question too long: %d characters (max %d)", n, MaxQuestionLength),
		}
	}
	return nil
}
