// Package rating implements the competitive rating (CR): ELO updates,
// division brackets and match outcomes.
package rating

import "math"

const (
	MinRating     = 0
	MaxRating     = 3000
	DefaultRating = 1000

	// PlacementGames is the number of games played at the placement K-factor.
	PlacementGames = 20
	// HighTierRating is where K drops to its most stable value.
	HighTierRating = 2000
)

// Result is the outcome of one rating update.
type Result struct {
	NewRating int     `json:"newRating"`
	Change    int     `json:"ratingChange"`
	Expected  float64 `json:"expectedScore"`
}

// ExpectedScore is the win probability of a player rated a against one rated b.
func ExpectedScore(a, b int) float64 {
	return 1 / (1 + math.Pow(10, float64(b-a)/400))
}

// KFactor returns the update weight for a player.
func KFactor(rating, gamesPlayed int) int {
	switch {
	case gamesPlayed < PlacementGames:
		return 40
	case rating < HighTierRating:
		return 20
	default:
		return 10
	}
}

// Calculate applies one match to current. actual is 1 for a win, 0.5 for a
// draw and 0 for a loss. The reported change is re-derived after clamping,
// so it never exceeds what was applied.
func Calculate(current, opponent int, actual float64, gamesPlayed int) Result {
	k := KFactor(current, gamesPlayed)
	expected := ExpectedScore(current, opponent)
	change := roundHalfUp(float64(k) * (actual - expected))

	next := max(MinRating, min(current+change, MaxRating))
	return Result{
		NewRating: next,
		Change:    next - current,
		Expected:  expected,
	}
}

// roundHalfUp rounds ties toward positive infinity, so -2.5 becomes -2.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
