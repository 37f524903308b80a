package mastery

import "math"

const (
	// Clamp bounds.
	MaxScore       = 100.0
	MaxFrustration = 100.0
	MaxConfidence  = 100.0

	// Unlock gate.
	UnlockScore       = 85.0
	UnlockStability   = 5
	UnlockFrustration = 50.0

	// Answers faster than this earn the confidence bonus when correct.
	fastAnswerMs = 5000
	// Wrong answers faster than this count as rage-tapping.
	rageTapMs = 2000

	frustrationStep   = 10.0
	frustrationRelief = 5.0

	difficultyBase      = 0.3
	difficultyPerStreak = 0.05
	difficultyPerHint   = 0.2
	difficultyOnMiss    = 0.5
	hintScorePenalty    = 0.5
	confidenceBonus     = 1.2
	correctScoreFactor  = 1.5
)

// Update applies one item result to s and returns the new state. It is pure
// and total.
func Update(s State, r ItemResult) State {
	next := s

	if r.IsCorrect {
		next.Streak++
		next.Stability++
	} else {
		next.Streak = 0
		next.Stability = max(0, next.Stability-1)
	}

	if r.IsCorrect {
		inc := difficultyBase + difficultyPerStreak*float64(next.Streak) - difficultyPerHint*float64(r.HintsUsed)
		next.CurrentDifficulty = math.Max(0, s.CurrentDifficulty+math.Max(0, inc))
		next.HighestDifficultySolved = math.Max(next.HighestDifficultySolved, next.CurrentDifficulty)
	} else {
		next.CurrentDifficulty = math.Max(0, s.CurrentDifficulty-difficultyOnMiss)
	}

	var delta float64
	if r.IsCorrect {
		bonus := 1.0
		if r.TimeTakenMs < fastAnswerMs {
			bonus = confidenceBonus
		}
		delta = math.Max(1, r.Difficulty)*correctScoreFactor*bonus*(1+float64(next.Streak)/10) -
			float64(r.HintsUsed)*hintScorePenalty
	} else {
		// Higher mastery regresses harder.
		penalty := math.Max(1, s.Score/20)
		delta = -penalty * math.Max(1, r.Difficulty*0.5)
	}
	next.Score = clamp(s.Score+delta, 0, MaxScore)

	switch {
	case !r.IsCorrect && r.TimeTakenMs < rageTapMs:
		next.Frustration = math.Min(MaxFrustration, next.Frustration+frustrationStep)
	case r.IsCorrect:
		next.Frustration = math.Max(0, next.Frustration-frustrationRelief)
	}
	next.Frustration = clamp(next.Frustration, 0, MaxFrustration)
	next.Confidence = clamp(next.Confidence, 0, MaxConfidence)

	return next
}

// CanUnlock reports whether s is strong enough to advance to the next skill.
func CanUnlock(s State) bool {
	return s.Score >= UnlockScore && s.Stability >= UnlockStability && s.Frustration < UnlockFrustration
}

// NextDifficulty is the difficulty of the next practice item: the current
// difficulty rounded half up, never below 1.
func NextDifficulty(s State) int {
	return max(1, int(math.Floor(s.CurrentDifficulty+0.5)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
