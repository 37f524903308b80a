package problemgen

import (
	"fmt"
	"strings"
	"testing"
)

func TestSkills_Golden(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		skill      string
		difficulty float64
		seed       string
		question   string
		answer     string
	}{
		{SkillAddition, 1, "S1", "1 + 1 = ?", "2"},
		{SkillAddition, 3, "golden", "4 + 3 = ?", "7"},
		{SkillSubtraction, 2, "golden", "6 - 2 = ?", "4"},
		{SkillMultiplication, 4, "golden", "5 × 4 = ?", "20"},
		{SkillMultiplication, 2.5, "Q_q3", "4 × 11 = ?", "44"},
		{SkillMultiplication, 3.5, "Q_q3", "6 × 11 = ?", "66"},
		{SkillDivision, 1, "golden", "15 ÷ 5 = ?", "3"},
		{SkillFractions, 1, "golden", "1/4 + 3/4 = ?", "4/4"},
		{SkillLinearEquation, 2, "golden", "x + 5 = 9. What is x?", "4"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v/%s", tt.skill, tt.difficulty, tt.seed), func(t *testing.T) {
			fn, ok := reg.Resolve(tt.skill)
			if !ok {
				t.Fatalf("Resolve(%q) not found", tt.skill)
			}
			c := fn(tt.difficulty, NewStream(tt.seed))
			if c.Question != tt.question {
				t.Errorf("question = %q, want %q", c.Question, tt.question)
			}
			if c.CorrectAnswer != tt.answer {
				t.Errorf("answer = %q, want %q", c.CorrectAnswer, tt.answer)
			}
			if c.Difficulty != tt.difficulty {
				t.Errorf("difficulty = %v, want %v", c.Difficulty, tt.difficulty)
			}
		})
	}
}

func TestSkills_AdditionShape(t *testing.T) {
	c := generateAddition(3, NewStream("golden"))
	want := []string{"8", "6", "9"}
	if strings.Join(c.Distractors, ",") != strings.Join(want, ",") {
		t.Errorf("distractors = %v, want %v", c.Distractors, want)
	}
	if c.Explanation != "4 plus 3 equals 7." {
		t.Errorf("explanation = %q", c.Explanation)
	}
	if len(c.Hints) != 2 || c.Hints[0] != "Start at 4 and count up 3" {
		t.Errorf("hints = %v", c.Hints)
	}
}

// Every built-in generator must pass the full chain for ordinary
// difficulties, whatever the seed.
func TestSkills_MathTruth(t *testing.T) {
	reg := DefaultRegistry()
	chain := DefaultValidators()
	for _, skill := range reg.SkillIDs() {
		fn, _ := reg.Resolve(skill)
		for d := 1.0; d <= 10; d += 0.5 {
			for i := range 50 {
				seed := fmt.Sprintf("%s_%v_%d", skill, d, i)
				c := fn(d, NewStream(seed))
				if r := Validate(c, chain); !r.Valid {
					t.Fatalf("%s d=%v seed=%q: %q invalid (%s: %s)", skill, d, seed, c.Question, r.Validator, r.Reason)
				}
			}
		}
	}
}

func TestSubtraction_NeverNegative(t *testing.T) {
	for i := range 500 {
		c := generateSubtraction(float64(i%12), NewStream(fmt.Sprint(i)))
		if strings.HasPrefix(c.CorrectAnswer, "-") || c.CorrectAnswer == "0" {
			t.Fatalf("seed %d: %q has answer %s", i, c.Question, c.CorrectAnswer)
		}
	}
}

func TestRegistry_Resolve(t *testing.T) {
	reg := DefaultRegistry()
	tests := []struct {
		id     string
		want   string
		wantOK bool
	}{
		{"math-add-1", "+", true},
		{"math-add-3digit", "+", true},
		{"math-sub-borrow", "-", true},
		{"math-mul-table-7", "×", true},
		{"math-div-1", "÷", true},
		{"geometry-area", "", false},
	}
	for _, tt := range tests {
		fn, ok := reg.Resolve(tt.id)
		if ok != tt.wantOK {
			t.Errorf("Resolve(%q) ok = %v, want %v", tt.id, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if q := fn(2, NewStream("r")).Question; !strings.Contains(q, tt.want) {
			t.Errorf("Resolve(%q) question %q lacks %q", tt.id, q, tt.want)
		}
	}
}

func TestRegistry_SkillIDs(t *testing.T) {
	ids := DefaultRegistry().SkillIDs()
	if len(ids) != 6 {
		t.Fatalf("got %d skills, want 6", len(ids))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("SkillIDs not sorted: %v", ids)
		}
	}
}

// A fractional difficulty uses the table tier of its integer part.
func TestMultiplication_FractionalDifficultyTier(t *testing.T) {
	for _, seed := range []string{"Q_q3", "golden", "S1", "tier"} {
		for d := 1.0; d <= 4; d++ {
			whole := generateMultiplication(d, NewStream(seed))
			half := generateMultiplication(d+0.5, NewStream(seed))
			if whole.Question != half.Question {
				t.Errorf("seed %q: d=%v gives %q, d=%v gives %q", seed, d, whole.Question, d+0.5, half.Question)
			}
		}
	}
}
