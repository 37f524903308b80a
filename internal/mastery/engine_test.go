package mastery

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdate_FirstCorrect(t *testing.T) {
	got := Update(DefaultState(), ItemResult{IsCorrect: true, TimeTakenMs: 3000, Difficulty: 1})

	assert.Equal(t, 1, got.Streak)
	assert.Equal(t, 1, got.Stability)
	assert.InDelta(t, 1.35, got.CurrentDifficulty, 1e-9)
	assert.InDelta(t, 1.35, got.HighestDifficultySolved, 1e-9)
	// 1 * 1.5 * 1.2 (fast) * 1.1 (streak 1)
	assert.InDelta(t, 1.98, got.Score, 1e-9)
	assert.Equal(t, 0.0, got.Frustration)
	assert.Equal(t, 50.0, got.Confidence)
}

func TestUpdate_WrongAtHighMastery(t *testing.T) {
	s := State{Score: 80, Stability: 6, Streak: 4, CurrentDifficulty: 3, HighestDifficultySolved: 3.5, Confidence: 50}
	got := Update(s, ItemResult{IsCorrect: false, TimeTakenMs: 1500, Difficulty: 4})

	assert.Equal(t, 0, got.Streak)
	assert.Equal(t, 5, got.Stability)
	assert.InDelta(t, 2.5, got.CurrentDifficulty, 1e-9)
	assert.Equal(t, 3.5, got.HighestDifficultySolved, "highest never decreases")
	// penalty max(1, 80/20)=4, times max(1, 4*0.5)=2
	assert.InDelta(t, 72.0, got.Score, 1e-9)
	assert.Equal(t, 10.0, got.Frustration)
}

func TestUpdate_HintsStallDifficulty(t *testing.T) {
	s := State{CurrentDifficulty: 2, Confidence: 50}
	got := Update(s, ItemResult{IsCorrect: true, TimeTakenMs: 6000, HintsUsed: 3, Difficulty: 1})

	assert.Equal(t, 2.0, got.CurrentDifficulty)
	// 1.5 * 1.0 * 1.1 - 3*0.5
	assert.InDelta(t, 0.15, got.Score, 1e-9)
}

func TestUpdate_SlowWrongKeepsFrustration(t *testing.T) {
	s := State{Frustration: 30, CurrentDifficulty: 0.2}
	got := Update(s, ItemResult{IsCorrect: false, TimeTakenMs: 9000, Difficulty: 1})

	assert.Equal(t, 30.0, got.Frustration)
	assert.Equal(t, 0.0, got.CurrentDifficulty, "difficulty floors at 0")
	assert.Equal(t, 0.0, got.Score)
}

func TestUpdate_CorrectRelievesFrustration(t *testing.T) {
	tests := []struct {
		before, want float64
	}{
		{30, 25},
		{3, 0},
		{0, 0},
	}
	for _, tt := range tests {
		got := Update(State{Frustration: tt.before}, ItemResult{IsCorrect: true, TimeTakenMs: 8000, Difficulty: 1})
		if got.Frustration != tt.want {
			t.Errorf("frustration %v -> %v, want %v", tt.before, got.Frustration, tt.want)
		}
	}
}

func TestUpdate_ScoreCapsAt100(t *testing.T) {
	s := State{Score: 99, Streak: 20, Stability: 20}
	got := Update(s, ItemResult{IsCorrect: true, TimeTakenMs: 100, Difficulty: 10})
	assert.Equal(t, 100.0, got.Score)
}

func TestUpdate_ClampProperty(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for run := range 200 {
		s := DefaultState()
		for step := range 200 {
			res := ItemResult{
				IsCorrect:   r.IntN(3) > 0,
				TimeTakenMs: r.Int64N(12000),
				HintsUsed:   r.IntN(4),
				Difficulty:  r.Float64() * 20,
			}
			prevHighest := s.HighestDifficultySolved
			s = Update(s, res)
			if s.Score < 0 || s.Score > 100 {
				t.Fatalf("run %d step %d: score %v out of range", run, step, s.Score)
			}
			if s.Frustration < 0 || s.Frustration > 100 {
				t.Fatalf("run %d step %d: frustration %v out of range", run, step, s.Frustration)
			}
			if s.Stability < 0 || s.CurrentDifficulty < 0 {
				t.Fatalf("run %d step %d: negative stability or difficulty: %+v", run, step, s)
			}
			if s.HighestDifficultySolved < prevHighest {
				t.Fatalf("run %d step %d: highest decreased %v -> %v", run, step, prevHighest, s.HighestDifficultySolved)
			}
		}
	}
}

func TestCanUnlock(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  bool
	}{
		{"all gates met", State{Score: 85, Stability: 5, Frustration: 49}, true},
		{"score short", State{Score: 84.9, Stability: 5}, false},
		{"unstable", State{Score: 90, Stability: 4}, false},
		{"frustrated", State{Score: 90, Stability: 9, Frustration: 50}, false},
	}
	for _, tt := range tests {
		if got := CanUnlock(tt.state); got != tt.want {
			t.Errorf("%s: CanUnlock = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNextDifficulty(t *testing.T) {
	tests := []struct {
		current float64
		want    int
	}{
		{0, 1},
		{1.35, 1},
		{1.5, 2},
		{2.49, 2},
		{7.8, 8},
	}
	for _, tt := range tests {
		if got := NextDifficulty(State{CurrentDifficulty: tt.current}); got != tt.want {
			t.Errorf("NextDifficulty(%v) = %d, want %d", tt.current, got, tt.want)
		}
	}
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Tier
	}{
		{0, TierNovice},
		{0.1, TierBronze},
		{39.9, TierBronze},
		{40, TierSilver},
		{65, TierGold},
		{85, TierPlatinum},
		{94.9, TierPlatinum},
		{95, TierMaster},
		{100, TierMaster},
	}
	for _, tt := range tests {
		if got := TierFor(tt.score); got != tt.want {
			t.Errorf("TierFor(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
