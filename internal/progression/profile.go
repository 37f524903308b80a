package progression

import (
	"slices"
	"time"

	"github.com/abhisek/mathquest/internal/rating"
)

// Profile is a player's competitive and progression record. Division and
// level are derived, never stored.
type Profile struct {
	UserID         string     `json:"userId"`
	CR             int        `json:"cr"`
	GamesPlayed    int        `json:"gamesPlayed"`
	Wins           int        `json:"wins"`
	WinStreak      int        `json:"winStreak"`
	XP             int        `json:"xp"`
	DailyStreak    int        `json:"dailyStreak"`
	LastPracticeAt *time.Time `json:"lastPracticeAt,omitempty"`
	Badges         []string   `json:"badges"`
}

// NewProfile returns the profile of a player who has never played.
func NewProfile(userID string) Profile {
	return Profile{UserID: userID, CR: rating.DefaultRating, Badges: []string{}}
}

// Division is derived from CR.
func (p Profile) Division() rating.Division { return rating.DivisionFor(p.CR) }

// Level is derived from XP.
func (p Profile) Level() int { return Level(p.XP) }

func (p Profile) facts() Facts {
	return Facts{Wins: p.Wins, WinStreak: p.WinStreak, Division: p.Division(), XP: p.XP}
}

// MatchInput is one finished match from the player's side.
type MatchInput struct {
	SkillID    string
	OpponentCR int
	Outcome    rating.Outcome
	// Ranked matches move CR; unranked ones only grant practice XP.
	Ranked bool
}

// Update is the composed result of one progression event. Profile is the
// complete new profile; the other fields describe what changed.
type Update struct {
	Profile   Profile           `json:"profile"`
	Rating    *rating.Result    `json:"rating,omitempty"`
	Promotion *rating.Promotion `json:"promotion,omitempty"`
	CRGained  int               `json:"crGained"`
	XPGained  int               `json:"xpGained"`
	LevelUp   bool              `json:"levelUp"`
	NewBadges []string          `json:"newBadges"`
}

// ApplyMatch folds a match into p. The store persists the returned profile
// in one transaction.
func ApplyMatch(p Profile, in MatchInput, now time.Time, catalog *Catalog) Update {
	next := clone(p)
	u := Update{}

	if in.Ranked {
		res := rating.Calculate(p.CR, in.OpponentCR, in.Outcome.Score(), p.GamesPlayed)
		promo := rating.CheckPromotion(p.CR, res.NewRating)
		next.CR = res.NewRating
		next.GamesPlayed++
		if in.Outcome == rating.Win {
			next.Wins++
			next.WinStreak++
		} else {
			next.WinStreak = 0
		}
		u.Rating, u.Promotion = &res, &promo
	}

	if in.Outcome == rating.Win {
		if in.Ranked {
			u.XPGained = XPFor(EventRankedWin)
		} else {
			u.XPGained = XPFor(EventPracticeWin)
		}
	}

	return finish(p, next, u, now, catalog)
}

// ApplyPractice records a practice session without granting XP.
func ApplyPractice(p Profile, now time.Time, catalog *Catalog) Update {
	return finish(p, clone(p), Update{}, now, catalog)
}

func finish(prev, next Profile, u Update, now time.Time, catalog *Catalog) Update {
	next.XP += u.XPGained
	next.DailyStreak = NextDailyStreak(prev.DailyStreak, prev.LastPracticeAt, now)
	at := now.UTC()
	next.LastPracticeAt = &at

	u.NewBadges = catalog.Evaluate(next.facts(), next.Badges)
	next.Badges = append(next.Badges, u.NewBadges...)
	u.LevelUp = next.Level() > prev.Level()
	u.Profile = next
	return u
}

func clone(p Profile) Profile {
	c := p
	c.Badges = slices.Clone(p.Badges)
	if c.Badges == nil {
		c.Badges = []string{}
	}
	return c
}
