package tournament

import (
	"fmt"
	"time"

	"github.com/abhisek/mathquest/internal/problemgen"
)

// Stage is a competition stage with its own question set and scoring.
type Stage struct {
	Name          string
	Questions     int
	CorrectPoints int
	WrongPoints   int
	// MinDuration rejects faster submissions as impossible.
	MinDuration time.Duration
	// MaxDuration flags slower submissions; they are still graded.
	MaxDuration time.Duration
	// EventPrefix prefixes safety event types, e.g. QUALIFIER_.
	EventPrefix string
}

// Policy holds the tournament rules.
type Policy struct {
	Qualifier Stage
	Final     Stage

	// Speed bonus: BonusPerCorrect per correct answer when the qualifier is
	// finished within BonusWindow with more than BonusMinCorrect correct.
	BonusWindow     time.Duration
	BonusMinCorrect int
	BonusPerCorrect int

	MaxFinalDifficulty    float64
	FinalDifficultyOffset float64

	FinalistsPerQualifier int
	QualifierBoardSize    int
	FinalBoardSize        int

	// Finals created by a lock open FinalStartDelay from now and run for
	// FinalLength.
	FinalStartDelay time.Duration
	FinalLength     time.Duration

	QualifierLength time.Duration
}

// DefaultPolicy returns the standard rules.
func DefaultPolicy() Policy {
	return Policy{
		Qualifier: Stage{
			Name:          "qualifier",
			Questions:     10,
			CorrectPoints: 10,
			WrongPoints:   -3,
			MinDuration:   10 * time.Second,
			MaxDuration:   6*time.Minute + 30*time.Second,
			EventPrefix:   "QUALIFIER_",
		},
		Final: Stage{
			Name:          "final",
			Questions:     15,
			CorrectPoints: 20,
			WrongPoints:   -5,
			MinDuration:   10 * time.Second,
			MaxDuration:   10 * time.Minute,
			EventPrefix:   "FINAL_",
		},
		BonusWindow:           180 * time.Second,
		BonusMinCorrect:       5,
		BonusPerCorrect:       2,
		MaxFinalDifficulty:    20,
		FinalDifficultyOffset: 5,
		FinalistsPerQualifier: 50,
		QualifierBoardSize:    50,
		FinalBoardSize:        100,
		FinalStartDelay:       7 * 24 * time.Hour,
		FinalLength:           7 * 24 * time.Hour,
		QualifierLength:       7 * 24 * time.Hour,
	}
}

// QualifierSeed is the seed of question i (1-based) of a qualifier.
func QualifierSeed(qualifierID string, i int) string {
	return fmt.Sprintf("%s_q%d", qualifierID, i)
}

// FinalSeed is the seed of question i (1-based) of a final.
func FinalSeed(finalID string, i int) string {
	return fmt.Sprintf("%s_final_q%d", finalID, i)
}

// QualifierQuestions derives the qualifier's questions: difficulty ramps 1..N.
func (p Policy) QualifierQuestions(gen *problemgen.Generator, q Qualifier) []Question {
	out := make([]Question, 0, p.Qualifier.Questions)
	for i := 1; i <= p.Qualifier.Questions; i++ {
		out = append(out, derive(gen, q.SkillID, QualifierSeed(q.ID, i), float64(i), i))
	}
	return out
}

// FinalQuestions derives the final's questions at min(i+offset, max).
func (p Policy) FinalQuestions(gen *problemgen.Generator, f Final) []Question {
	out := make([]Question, 0, p.Final.Questions)
	for i := 1; i <= p.Final.Questions; i++ {
		d := min(float64(i)+p.FinalDifficultyOffset, p.MaxFinalDifficulty)
		out = append(out, derive(gen, f.SkillID, FinalSeed(f.ID, i), d, i))
	}
	return out
}

func derive(gen *problemgen.Generator, skillID, seed string, d float64, i int) Question {
	return Question{
		Index:      i,
		Seed:       seed,
		Difficulty: d,
		Result:     gen.Generate(problemgen.Params{SkillID: skillID, Difficulty: d, Seed: seed}),
	}
}

// Grade compares answers (keyed by 1-based index) with the derived questions.
// Answers are compared exactly; a missing answer counts as wrong.
func Grade(stage Stage, questions []Question, answers map[int]string) (score, correct int) {
	for _, q := range questions {
		if ans, ok := answers[q.Index]; ok && ans == q.Content.CorrectAnswer {
			score += stage.CorrectPoints
			correct++
		} else {
			score += stage.WrongPoints
		}
	}
	return score, correct
}

// SpeedBonus returns the qualifier speed bonus.
func (p Policy) SpeedBonus(elapsed time.Duration, correct int) int {
	if elapsed < p.BonusWindow && correct > p.BonusMinCorrect {
		return p.BonusPerCorrect * correct
	}
	return 0
}

// Timing is the anti-cheat verdict on a submission's duration.
type Timing int

const (
	TimingOK Timing = iota
	TimingTooFast
	TimingExceeded
)

// CheckTiming judges elapsed against the stage window.
func (s Stage) CheckTiming(elapsed time.Duration) Timing {
	switch {
	case elapsed < s.MinDuration:
		return TimingTooFast
	case elapsed > s.MaxDuration:
		return TimingExceeded
	default:
		return TimingOK
	}
}

// WeekStart returns Monday 00:00 UTC of t's week.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
