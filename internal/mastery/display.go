package mastery

// Tier is the visible mastery tier derived from a score. It is presentation
// only and never stored.
type Tier string

const (
	TierNovice   Tier = "NOVICE"
	TierBronze   Tier = "BRONZE"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
	TierMaster   Tier = "MASTER"
)

// TierFor maps a mastery score to its visible tier.
func TierFor(score float64) Tier {
	switch {
	case score >= 95:
		return TierMaster
	case score >= 85:
		return TierPlatinum
	case score >= 65:
		return TierGold
	case score >= 40:
		return TierSilver
	case score > 0:
		return TierBronze
	default:
		return TierNovice
	}
}

// Summary is the per-answer feedback handed to the presentation layer.
type Summary struct {
	IsCorrect    bool    `json:"isCorrect"`
	MasteryScore float64 `json:"masteryScore"`
	Streak       int     `json:"streak"`
}

// Summarize builds the presentation summary for an answer.
func Summarize(correct bool, s State) Summary {
	return Summary{IsCorrect: correct, MasteryScore: s.Score, Streak: s.Streak}
}
