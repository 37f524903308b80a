package tournament

import (
	"testing"
	"time"

	"github.com/abhisek/mathquest/internal/problemgen"
)

func TestWeekStart(t *testing.T) {
	monday := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		at   time.Time
	}{
		{"monday midnight", monday},
		{"wednesday", time.Date(2026, 10, 14, 15, 4, 0, 0, time.UTC)},
		{"sunday night", time.Date(2026, 10, 18, 23, 59, 59, 0, time.UTC)},
		{"non-UTC zone", time.Date(2026, 10, 19, 3, 0, 0, 0, time.FixedZone("IST", 5*3600+1800))},
	}
	for _, tt := range tests {
		if got := WeekStart(tt.at); !got.Equal(monday) {
			t.Errorf("%s: WeekStart = %v, want %v", tt.name, got, monday)
		}
	}
}

func TestSeeds(t *testing.T) {
	if got := QualifierSeed("abc", 3); got != "abc_q3" {
		t.Errorf("QualifierSeed = %q", got)
	}
	if got := FinalSeed("fin", 15); got != "fin_final_q15" {
		t.Errorf("FinalSeed = %q", got)
	}
}

func TestQuestions_Ramp(t *testing.T) {
	gen := problemgen.New(problemgen.DefaultConfig())
	p := DefaultPolicy()

	qs := p.QualifierQuestions(gen, Qualifier{ID: "q1", SkillID: problemgen.SkillAddition})
	if len(qs) != 10 {
		t.Fatalf("got %d qualifier questions, want 10", len(qs))
	}
	for i, q := range qs {
		if q.Index != i+1 || q.Difficulty != float64(i+1) || q.Seed != QualifierSeed("q1", i+1) {
			t.Errorf("qualifier question %d = index %d difficulty %v seed %q", i, q.Index, q.Difficulty, q.Seed)
		}
	}

	fs := p.FinalQuestions(gen, Final{ID: "f1", SkillID: problemgen.SkillMultiplication})
	if len(fs) != 15 {
		t.Fatalf("got %d final questions, want 15", len(fs))
	}
	want := []float64{6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	for i, q := range fs {
		if q.Difficulty != want[i] {
			t.Errorf("final question %d difficulty = %v, want %v", i+1, q.Difficulty, want[i])
		}
	}

	again := p.QualifierQuestions(gen, Qualifier{ID: "q1", SkillID: problemgen.SkillAddition})
	for i := range qs {
		if qs[i].Content.Question != again[i].Content.Question {
			t.Fatalf("question %d not reproducible", i+1)
		}
	}
}

func TestGrade(t *testing.T) {
	qs := []Question{
		{Index: 1, Result: problemgen.Result{Content: problemgen.Content{CorrectAnswer: "4"}}},
		{Index: 2, Result: problemgen.Result{Content: problemgen.Content{CorrectAnswer: "9"}}},
		{Index: 3, Result: problemgen.Result{Content: problemgen.Content{CorrectAnswer: "1/2"}}},
	}
	stage := DefaultPolicy().Qualifier
	score, correct := Grade(stage, qs, map[int]string{1: "4", 2: "8"})
	if score != 10-3-3 || correct != 1 {
		t.Errorf("Grade = %d/%d, want 4/1", score, correct)
	}
}

func TestSpeedBonus(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		elapsed time.Duration
		correct int
		want    int
	}{
		{2 * time.Minute, 6, 12},
		{2 * time.Minute, 5, 0},
		{180 * time.Second, 10, 0},
		{179 * time.Second, 10, 20},
	}
	for _, tt := range tests {
		if got := p.SpeedBonus(tt.elapsed, tt.correct); got != tt.want {
			t.Errorf("SpeedBonus(%v, %d) = %d, want %d", tt.elapsed, tt.correct, got, tt.want)
		}
	}
}

func TestCheckTiming(t *testing.T) {
	s := DefaultPolicy().Qualifier
	tests := []struct {
		elapsed time.Duration
		want    Timing
	}{
		{9 * time.Second, TimingTooFast},
		{10 * time.Second, TimingOK},
		{390 * time.Second, TimingOK},
		{391 * time.Second, TimingExceeded},
	}
	for _, tt := range tests {
		if got := s.CheckTiming(tt.elapsed); got != tt.want {
			t.Errorf("CheckTiming(%v) = %d, want %d", tt.elapsed, got, tt.want)
		}
	}
}
