package progression

import (
	"errors"
	"time"

	"github.com/abhisek/mathquest/internal/rating"
)

// A daily challenge scored at or above DailyBonusThreshold also grants
// DailyCRBonus.
const (
	DailyCRBonus        = 10
	DailyBonusThreshold = 0.8
)

// ErrDuplicate is returned by stores when an event that may happen once
// per period, such as a daily challenge completion, is recorded again.
var ErrDuplicate = errors.New("duplicate")

// DailyScore is a graded daily challenge.
type DailyScore struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// EarnsBonus reports whether the score reaches the CR bonus threshold.
func (s DailyScore) EarnsBonus() bool {
	return s.Total > 0 && float64(s.Correct)/float64(s.Total) >= DailyBonusThreshold
}

// ApplyDailyChallenge grants the daily challenge XP and, for a high score,
// the CR bonus. The bonus is not a rated game: games played and wins are
// unchanged.
func ApplyDailyChallenge(p Profile, score DailyScore, now time.Time, catalog *Catalog) Update {
	next := clone(p)
	u := Update{XPGained: XPFor(EventDailyChallengeComplete)}

	if score.EarnsBonus() {
		next.CR = max(rating.MinRating, min(p.CR+DailyCRBonus, rating.MaxRating))
		u.CRGained = next.CR - p.CR
		if promo := rating.CheckPromotion(p.CR, next.CR); promo.IsNewDivision {
			u.Promotion = &promo
		}
	}

	return finish(p, next, u, now, catalog)
}
