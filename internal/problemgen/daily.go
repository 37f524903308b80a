package problemgen

import (
	"fmt"
	"time"
	"unicode/utf16"
)

// Daily challenge shape: the same questions for every player on a given UTC
// date.
const (
	DailyQuestionCount = 5
	DailyDifficulty    = 2
)

var dailySkills = []string{SkillAddition, SkillSubtraction, SkillMultiplication}

// DailyItem is one question of the daily challenge.
type DailyItem struct {
	Index   int    `json:"id"`
	SkillID string `json:"skillId"`
	Seed    string `json:"seed"`
	Result
}

// DailySeed returns the seed of question i on date's UTC day.
func DailySeed(date time.Time, i int) string {
	return fmt.Sprintf("%s-daily-%d", date.UTC().Format(time.DateOnly), i)
}

// dailySkill picks the skill from the seed's first and last UTF-16 code units.
func dailySkill(seed string) string {
	units := utf16.Encode([]rune(seed))
	v := int(units[0]) + int(units[len(units)-1])
	return dailySkills[v%len(dailySkills)]
}

// DailyChallenge generates the daily challenge for date.
func DailyChallenge(g *Generator, date time.Time) []DailyItem {
	items := make([]DailyItem, 0, DailyQuestionCount)
	for i := range DailyQuestionCount {
		seed := DailySeed(date, i)
		skill := dailySkill(seed)
		items = append(items, DailyItem{
			Index:   i,
			SkillID: skill,
			Seed:    seed,
			Result:  g.Generate(Params{SkillID: skill, Difficulty: DailyDifficulty, Seed: seed}),
		})
	}
	return items
}
