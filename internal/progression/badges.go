package progression

import "github.com/abhisek/mathquest/internal/rating"

// Badge ids.
const (
	BadgeFirstWin  = "first_win"
	BadgeStreak5   = "streak_5"
	BadgeReachGold = "reach_gold"
	BadgeXP100     = "xp_100"
)

// Facts is the accumulated player state badges are judged on.
type Facts struct {
	Wins      int
	WinStreak int
	Division  rating.Division
	XP        int
}

// Badge is one unlockable achievement.
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`

	earned func(Facts) bool
}

// Earned reports whether f satisfies the badge's predicate.
func (b Badge) Earned(f Facts) bool { return b.earned(f) }

// Catalog is the immutable badge table. Build it once with DefaultCatalog
// and share it.
type Catalog struct {
	badges []Badge
}

// DefaultCatalog returns the built-in badges in evaluation order.
func DefaultCatalog() *Catalog {
	return &Catalog{badges: []Badge{
		{
			ID: BadgeFirstWin, Name: "First Blood", Description: "Win your first ranked match", Icon: "⚔️",
			earned: func(f Facts) bool { return f.Wins >= 1 },
		},
		{
			ID: BadgeStreak5, Name: "On Fire", Description: "Win 5 games in a row", Icon: "🔥",
			earned: func(f Facts) bool { return f.WinStreak >= 5 },
		},
		{
			ID: BadgeReachGold, Name: "Gold Standard", Description: "Reach Gold Division", Icon: "🏆",
			earned: func(f Facts) bool { return f.Division.AtLeast(rating.Gold) },
		},
		{
			ID: BadgeXP100, Name: "Veteran", Description: "Reach 100 XP", Icon: "⭐",
			earned: func(f Facts) bool { return f.XP >= 100 },
		},
	}}
}

// All returns a copy of the catalog's badges.
func (c *Catalog) All() []Badge {
	return append([]Badge(nil), c.badges...)
}

// Lookup returns the badge with id.
func (c *Catalog) Lookup(id string) (Badge, bool) {
	for _, b := range c.badges {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}

// Evaluate returns the ids of badges f earns that are not already owned.
// Calling it again with the result merged into owned returns nothing.
func (c *Catalog) Evaluate(f Facts, owned []string) []string {
	has := make(map[string]bool, len(owned))
	for _, id := range owned {
		has[id] = true
	}
	var unlocked []string
	for _, b := range c.badges {
		if !has[b.ID] && b.Earned(f) {
			unlocked = append(unlocked, b.ID)
		}
	}
	return unlocked
}
