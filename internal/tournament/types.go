// Package tournament coordinates weekly qualifiers and seasonal finals.
// Questions are never stored: they are re-derived from per-question seeds
// at start and again at grading time.
package tournament

import (
	"time"

	"github.com/abhisek/mathquest/internal/problemgen"
)

// QualifierStatus moves OPEN → LOCKED only.
type QualifierStatus string

const (
	QualifierOpen   QualifierStatus = "OPEN"
	QualifierLocked QualifierStatus = "LOCKED"
)

// FinalStatus moves UPCOMING → LIVE → ENDED only.
type FinalStatus string

const (
	FinalUpcoming FinalStatus = "UPCOMING"
	FinalLive     FinalStatus = "LIVE"
	FinalEnded    FinalStatus = "ENDED"
)

// Qualifier is one weekly competition for a (season, skill, region).
type Qualifier struct {
	ID        string          `json:"id"`
	SeasonID  string          `json:"seasonId"`
	SkillID   string          `json:"skillId"`
	Region    string          `json:"region"`
	WeekStart time.Time       `json:"weekStart"`
	WeekEnd   time.Time       `json:"weekEnd"`
	Status    QualifierStatus `json:"status"`
}

// Entry is a user's single attempt at a qualifier.
type Entry struct {
	ID            string     `json:"id"`
	QualifierID   string     `json:"qualifierId"`
	UserID        string     `json:"userId"`
	SkillID       string     `json:"skillId"`
	Region        string     `json:"region"`
	RatingAtEntry int        `json:"ratingAtEntry"`
	StartedAt     time.Time  `json:"startedAt"`
	Score         int        `json:"score"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	Flagged       bool       `json:"flagged"`
}

// Final is the season-ending competition for a skill.
type Final struct {
	ID       string      `json:"id"`
	SeasonID string      `json:"seasonId"`
	SkillID  string      `json:"skillId"`
	Status   FinalStatus `json:"status"`
	StartAt  time.Time   `json:"startAt"`
	EndAt    time.Time   `json:"endAt"`
}

// Finalist is a user promoted from a qualifier into a final.
type Finalist struct {
	ID            string     `json:"id"`
	FinalID       string     `json:"finalId"`
	UserID        string     `json:"userId"`
	QualifierID   string     `json:"qualifierId"`
	Region        string     `json:"region"`
	QualifierRank int        `json:"qualifierRank"`
	StartedAt     *time.Time `json:"startedAt,omitempty"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
	FinalScore    *int       `json:"finalScore,omitempty"`
	Flagged       bool       `json:"flagged"`
}

// SafetyEvent is an anti-cheat finding kept for out-of-band review.
type SafetyEvent struct {
	UserID    string         `json:"userId"`
	EventType string         `json:"eventType"`
	Details   map[string]any `json:"details"`
	At        time.Time      `json:"at"`
}

// Question is one derived tournament question.
type Question struct {
	Index      int     `json:"id"`
	Seed       string  `json:"seed"`
	Difficulty float64 `json:"difficulty"`
	problemgen.Result
}

// Standing is one leaderboard row.
type Standing struct {
	Rank    int    `json:"rank"`
	UserID  string `json:"userId"`
	Region  string `json:"region"`
	Score   int    `json:"score"`
	Flagged bool   `json:"flagged"`
}
