package problemgen

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// mathTolerance absorbs rounding in division answers.
const mathTolerance = 0.01

// simpleArithRe matches the only question shape the checker recomputes:
// "A op B = ?" with non-negative integer operands.
var simpleArithRe = regexp.MustCompile(`^(\d+)\s*([+\-×÷])\s*(\d+)\s*=\s*\?$`)

// leadingNumberRe extracts the numeric prefix of an answer, so "3/4" reads
// as 3 and "12 apples" as 12.
var leadingNumberRe = regexp.MustCompile(`^\s*[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// MathCheckValidator recomputes simple arithmetic questions and compares
// the result with the stated answer. Any other question passes.
type MathCheckValidator struct{}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(c Content) *ValidationError {
	m := simpleArithRe.FindStringSubmatch(c.Question)
	if m == nil {
		return nil
	}

	a, errA := strconv.ParseFloat(m[1], 64)
	b, errB := strconv.ParseFloat(m[3], 64)
	if errA != nil || errB != nil {
		return nil
	}

	var calc float64
	switch m[2] {
	case "+":
		calc = a + b
	case "-":
		calc = a - b
	case "×":
		calc = a * b
	case "÷":
		calc = a / b
	}
	if math.IsNaN(calc) {
		// 0 ÷ 0 has no answer to compare against.
		return nil
	}

	ans, ok := parseLeadingNumber(c.CorrectAnswer)
	if !ok {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("math mismatch: %s answer %q is not a number", c.Question, c.CorrectAnswer),
		}
	}
	if math.Abs(calc-ans) > mathTolerance {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("math mismatch: %s expect %s, got %s", c.Question, formatNumber(calc), c.CorrectAnswer),
		}
	}
	return nil
}

func parseLeadingNumber(s string) (float64, bool) {
	prefix := leadingNumberRe.FindString(s)
	if prefix == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(prefix), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
