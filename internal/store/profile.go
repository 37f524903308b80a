package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"

	"github.com/abhisek/mathquest/internal/progression"
	"github.com/abhisek/mathquest/internal/rating"
)

// ProfileRepo persists player profiles together with their badges, ladder
// history and daily skill aggregates.
type ProfileRepo struct {
	db *sql.DB
}

// Activity is one progression event to persist.
type Activity struct {
	Update  progression.Update
	SkillID string

	// Match is set for arena matches and adds a ladder entry.
	Match *progression.MatchInput

	// Challenge is set for daily challenge completions. A second completion
	// on the same UTC day fails with progression.ErrDuplicate.
	Challenge *progression.DailyScore

	// Attempts and Correct are added to the (user, skill, day) aggregate.
	Attempts int
	Correct  int

	At time.Time
}

// LadderEntry is one recorded arena match.
type LadderEntry struct {
	UserID       string         `json:"userId"`
	SkillID      string         `json:"skillId"`
	Ranked       bool           `json:"ranked"`
	Outcome      rating.Outcome `json:"outcome"`
	OpponentCR   int            `json:"opponentCr"`
	RatingBefore int            `json:"ratingBefore"`
	RatingAfter  int            `json:"ratingAfter"`
	XPGained     int            `json:"xpGained"`
	PlayedAt     time.Time      `json:"playedAt"`
}

// DailyAggregate counts a user's attempts at a skill on one UTC day.
type DailyAggregate struct {
	UserID   string `json:"userId"`
	SkillID  string `json:"skillId"`
	Day      string `json:"day"`
	Attempts int    `json:"attempts"`
	Correct  int    `json:"correct"`
}

var profileFields = []string{
	"user_id", "cr", "games_played", "wins", "win_streak", "xp", "daily_streak", "last_practice_at",
}

// Get returns the user's profile, or a fresh one if the user has none.
func (r *ProfileRepo) Get(ctx context.Context, userID string) (progression.Profile, error) {
	return getProfile(ctx, r.db, userID)
}

// Apply reads the profile, lets fn derive the activity from it, and persists
// the result, all in one transaction. fn must be pure; it may run again if
// the caller retries.
func (r *ProfileRepo) Apply(ctx context.Context, userID string, fn func(progression.Profile) Activity) (progression.Update, error) {
	var u progression.Update
	err := inTx(ctx, r.db, func(tx *sql.Tx) error {
		prev, err := getProfile(ctx, tx, userID)
		if err != nil {
			return err
		}
		a := fn(prev)
		if err := saveActivity(ctx, tx, prev, a); err != nil {
			return err
		}
		u = a.Update
		return nil
	})
	if err != nil {
		return progression.Update{}, err
	}
	return u, nil
}

// History returns the user's most recent matches, newest first.
func (r *ProfileRepo) History(ctx context.Context, userID string, limit int) ([]LadderEntry, error) {
	sel := builder.Select("user_id", "skill_id", "ranked", "outcome", "opponent_cr",
		"rating_before", "rating_after", "xp_gained", "played_at").
		From(builder.Table(tableLadder)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("played_at"), entsql.Desc("id"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	rows, err := queryRows(ctx, r.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query ladder: %w", err)
	}
	defer rows.Close()

	var out []LadderEntry
	for rows.Next() {
		var e LadderEntry
		var outcome string
		err := rows.Scan(&e.UserID, &e.SkillID, &e.Ranked, &outcome, &e.OpponentCR,
			&e.RatingBefore, &e.RatingAfter, &e.XPGained, &e.PlayedAt)
		if err != nil {
			return nil, fmt.Errorf("scan ladder entry: %w", err)
		}
		e.Outcome = rating.Outcome(outcome)
		e.PlayedAt = utc(e.PlayedAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Daily returns the user's per-skill aggregates for the UTC day containing day.
func (r *ProfileRepo) Daily(ctx context.Context, userID string, day time.Time) ([]DailyAggregate, error) {
	rows, err := queryRows(ctx, r.db, builder.Select("user_id", "skill_id", "day", "attempts", "correct").
		From(builder.Table(tableDaily)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("day", dayKey(day)),
		)).
		OrderBy(entsql.Asc("skill_id")))
	if err != nil {
		return nil, fmt.Errorf("query daily aggregates: %w", err)
	}
	defer rows.Close()

	var out []DailyAggregate
	for rows.Next() {
		var a DailyAggregate
		if err := rows.Scan(&a.UserID, &a.SkillID, &a.Day, &a.Attempts, &a.Correct); err != nil {
			return nil, fmt.Errorf("scan daily aggregate: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// DailyCompleted reports whether the user completed the daily challenge on
// the UTC day containing day.
func (r *ProfileRepo) DailyCompleted(ctx context.Context, userID string, day time.Time) (bool, error) {
	var n int
	err := queryRow(ctx, r.db, builder.Select(entsql.Count("*")).
		From(builder.Table(tableChallenges)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("day", dayKey(day)),
		))).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query daily challenge log: %w", err)
	}
	return n > 0, nil
}

func getProfile(ctx context.Context, q querier, userID string) (progression.Profile, error) {
	p := progression.NewProfile(userID)
	var last sql.NullTime
	err := queryRow(ctx, q, builder.Select(profileFields...).
		From(builder.Table(tableProfiles)).
		Where(entsql.EQ("user_id", userID))).
		Scan(&p.UserID, &p.CR, &p.GamesPlayed, &p.Wins, &p.WinStreak, &p.XP, &p.DailyStreak, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return progression.NewProfile(userID), nil
	}
	if err != nil {
		return progression.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	p.LastPracticeAt = timePtr(last)

	rows, err := queryRows(ctx, q, builder.Select("badge_id").
		From(builder.Table(tableBadges)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Asc("id")))
	if err != nil {
		return progression.Profile{}, fmt.Errorf("query badges: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return progression.Profile{}, fmt.Errorf("scan badge: %w", err)
		}
		p.Badges = append(p.Badges, id)
	}
	return p, rows.Err()
}

func saveActivity(ctx context.Context, tx *sql.Tx, prev progression.Profile, a Activity) error {
	p := a.Update.Profile
	at := utc(a.At)

	if c := a.Challenge; c != nil {
		_, err := exec(ctx, tx, builder.Insert(tableChallenges).
			Columns("user_id", "day", "correct", "total", "completed_at").
			Values(p.UserID, dayKey(at), c.Correct, c.Total, at))
		if sqlgraph.IsUniqueConstraintError(err) {
			return fmt.Errorf("%w: daily challenge already completed on %s", progression.ErrDuplicate, dayKey(at))
		}
		if err != nil {
			return fmt.Errorf("save daily challenge: %w", err)
		}
	}

	_, err := exec(ctx, tx, builder.Insert(tableProfiles).
		Columns(append(profileFields, "updated_at")...).
		Values(p.UserID, p.CR, p.GamesPlayed, p.Wins, p.WinStreak, p.XP, p.DailyStreak,
			nullTime(p.LastPracticeAt), at).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWithNewValues(),
		))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	for _, id := range a.Update.NewBadges {
		_, err := exec(ctx, tx, builder.Insert(tableBadges).
			Columns("user_id", "badge_id", "earned_at").
			Values(p.UserID, id, at).
			OnConflict(
				entsql.ConflictColumns("user_id", "badge_id"),
				entsql.DoNothing(),
			))
		if err != nil {
			return fmt.Errorf("save badge %s: %w", id, err)
		}
	}

	if m := a.Match; m != nil {
		_, err := exec(ctx, tx, builder.Insert(tableLadder).
			Columns("user_id", "skill_id", "ranked", "outcome", "opponent_cr",
				"rating_before", "rating_after", "xp_gained", "played_at").
			Values(p.UserID, a.SkillID, m.Ranked, string(m.Outcome), m.OpponentCR,
				prev.CR, p.CR, a.Update.XPGained, at))
		if err != nil {
			return fmt.Errorf("save ladder entry: %w", err)
		}
	}

	if a.Attempts > 0 && a.SkillID != "" {
		return addDaily(ctx, tx, p.UserID, a.SkillID, at, a.Attempts, a.Correct)
	}
	return nil
}

// addDaily adds attempts to the (user, skill, day) aggregate.
func addDaily(ctx context.Context, q querier, userID, skillID string, at time.Time, attempts, correct int) error {
	_, err := exec(ctx, q, builder.Insert(tableDaily).
		Columns("user_id", "skill_id", "day", "attempts", "correct").
		Values(userID, skillID, dayKey(at), attempts, correct).
		OnConflict(
			entsql.ConflictColumns("user_id", "skill_id", "day"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.Add("attempts", attempts)
				u.Add("correct", correct)
			}),
		))
	if err != nil {
		return fmt.Errorf("upsert daily aggregate: %w", err)
	}
	return nil
}
