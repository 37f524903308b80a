package problemgen

import (
	"fmt"
	"math"
	"strconv"
)

// Skill ids with a dedicated generator.
const (
	SkillAddition       = "math-add-1"
	SkillSubtraction    = "math-sub-1"
	SkillMultiplication = "math-mul-1"
	SkillDivision       = "math-div-1"
	SkillFractions      = "math-fractions-calc"
	SkillLinearEquation = "math-algebra-x"
)

// multiplicationTiers lists the eligible tables per difficulty tier.
var multiplicationTiers = [4][]int{
	{2, 5, 10},
	{2, 3, 4, 5, 10},
	{2, 3, 4, 5, 6, 7, 8, 9, 10},
	{2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
}

var (
	divisionDivisors     = []int{2, 5, 10, 3, 4}
	fractionDenominators = []int{2, 3, 4, 5, 6, 8, 10}
)

// The draw order inside each generator is fixed: reordering draws changes
// the content produced for every existing seed.

func generateAddition(d float64, s *Stream) Content {
	limit := 5 + d*2
	a := s.Range(1, limit)
	b := s.Range(1, limit)
	ans := a + b
	return Content{
		Question:      fmt.Sprintf("%d + %d = ?", a, b),
		CorrectAnswer: strconv.Itoa(ans),
		Distractors:   []string{strconv.Itoa(ans + 1), strconv.Itoa(ans - 1), strconv.Itoa(ans + 2)},
		Hints:         []string{fmt.Sprintf("Start at %d and count up %d", a, b), "Combine the two numbers"},
		Difficulty:    d,
		Explanation:   fmt.Sprintf("%d plus %d equals %d.", a, b, ans),
	}
}

func generateSubtraction(d float64, s *Stream) Content {
	limit := 5 + d*2
	a := s.Range(2, limit+5)
	b := s.Range(1, float64(a-1))
	return Content{
		Question:      fmt.Sprintf("%d - %d = ?", a, b),
		CorrectAnswer: strconv.Itoa(a - b),
		Hints:         []string{fmt.Sprintf("Take %d away from %d", b, a), fmt.Sprintf("Count backwards from %d", a)},
		Difficulty:    d,
	}
}

func generateMultiplication(d float64, s *Stream) Content {
	tier := int(math.Floor(d)) - 1
	tier = max(0, min(tier, len(multiplicationTiers)-1))
	a := Pick(s, multiplicationTiers[tier])
	b := s.Range(1, 10+math.Floor(d/2))
	return Content{
		Question:      fmt.Sprintf("%d × %d = ?", a, b),
		CorrectAnswer: strconv.Itoa(a * b),
		Hints:         []string{fmt.Sprintf("%d groups of %d", b, a), fmt.Sprintf("Skip count by %d", a)},
		Difficulty:    d,
	}
}

// generateDivision builds the dividend from divisor × quotient so the
// quotient is always an integer.
func generateDivision(d float64, s *Stream) Content {
	divisor := Pick(s, divisionDivisors)
	quotient := s.Range(1, 10)
	dividend := divisor * quotient
	return Content{
		Question:      fmt.Sprintf("%d ÷ %d = ?", dividend, divisor),
		CorrectAnswer: strconv.Itoa(quotient),
		Hints: []string{
			fmt.Sprintf("How many %ds go into %d?", divisor, dividend),
			fmt.Sprintf("Think: ? × %d = %d", divisor, dividend),
		},
		Difficulty: d,
	}
}

func generateFractionAddition(d float64, s *Stream) Content {
	denom := Pick(s, fractionDenominators)
	n1 := s.Range(1, float64(denom-1))
	n2 := s.Range(1, float64(denom-n1))
	diff := n1 - n2
	if diff < 0 {
		diff = -diff
	}
	return Content{
		Question:      fmt.Sprintf("%d/%d + %d/%d = ?", n1, denom, n2, denom),
		CorrectAnswer: fmt.Sprintf("%d/%d", n1+n2, denom),
		Distractors: []string{
			fmt.Sprintf("%d/%d", n1+n2, denom*2),
			fmt.Sprintf("%d/%d", diff, denom),
		},
		Hints:      []string{fmt.Sprintf("Keep the bottom number (%d) the same", denom), "Add the top numbers"},
		Difficulty: d,
	}
}

func generateLinearEquation(d float64, s *Stream) Content {
	a := s.Range(1, 10+d)
	x := s.Range(1, 10+d)
	b := a + x
	return Content{
		Question:      fmt.Sprintf("x + %d = %d. What is x?", a, b),
		CorrectAnswer: strconv.Itoa(x),
		Hints:         []string{fmt.Sprintf("Opposite of +%d is -%d", a, a), fmt.Sprintf("Subtract %d from %d", a, b)},
		Difficulty:    d,
	}
}

// placeholderContent is returned for skills with no generator at all.
func placeholderContent(skillID string, d float64) Content {
	return Content{
		Question:      fmt.Sprintf("Mock Question for %s", skillID),
		CorrectAnswer: "1",
		Hints:         []string{"This is a mock hint"},
		Difficulty:    d,
	}
}
