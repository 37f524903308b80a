// Package progression composes XP, levels, the daily practice streak and
// badges with the rating engine into one profile update.
package progression

// Event is an XP-granting event.
type Event string

const (
	EventPracticeWin            Event = "PRACTICE_WIN"
	EventRankedWin              Event = "RANKED_WIN"
	EventDailyChallengeComplete Event = "DAILY_CHALLENGE_COMPLETE"
)

// XP granted per event.
const (
	XPPracticeWin            = 5
	XPRankedWin              = 15
	XPDailyChallengeComplete = 20

	// XPPerLevel is the width of every level.
	XPPerLevel = 100
)

// XPFor returns the XP granted for e, or 0 for an unknown event.
func XPFor(e Event) int {
	switch e {
	case EventPracticeWin:
		return XPPracticeWin
	case EventRankedWin:
		return XPRankedWin
	case EventDailyChallengeComplete:
		return XPDailyChallengeComplete
	default:
		return 0
	}
}

// Level returns the level for a total XP amount. Levels start at 1.
func Level(xp int) int {
	return xp/XPPerLevel + 1
}

// Progress is the position within the current level.
type Progress struct {
	Current int     `json:"current"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// LevelProgress returns how far xp is into its level.
func LevelProgress(xp int) Progress {
	cur := xp - (Level(xp)-1)*XPPerLevel
	return Progress{
		Current: cur,
		Total:   XPPerLevel,
		Percent: float64(cur) / XPPerLevel * 100,
	}
}
