package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/sqlgraph"

	"github.com/abhisek/mathquest/internal/tournament"
)

// TournamentRepo implements tournament.Repository over SQLite. Unique
// indexes and conditional updates carry the exactly-once guarantees.
type TournamentRepo struct {
	db *sql.DB
}

var _ tournament.Repository = (*TournamentRepo)(nil)

var qualifierFields = []string{"id", "season_id", "skill_id", "region", "week_start", "week_end", "status"}

func scanQualifier(row interface{ Scan(...any) error }) (tournament.Qualifier, error) {
	var q tournament.Qualifier
	var status string
	if err := row.Scan(&q.ID, &q.SeasonID, &q.SkillID, &q.Region, &q.WeekStart, &q.WeekEnd, &status); err != nil {
		return tournament.Qualifier{}, err
	}
	q.WeekStart, q.WeekEnd = utc(q.WeekStart), utc(q.WeekEnd)
	q.Status = tournament.QualifierStatus(status)
	return q, nil
}

func (r *TournamentRepo) FindQualifier(ctx context.Context, seasonID, skillID, region string, weekStart time.Time) (tournament.Qualifier, error) {
	q, err := scanQualifier(queryRow(ctx, r.db, builder.Select(qualifierFields...).
		From(builder.Table(tableQualifiers)).
		Where(entsql.And(
			entsql.EQ("season_id", seasonID),
			entsql.EQ("skill_id", skillID),
			entsql.EQ("region", region),
			entsql.EQ("week_start", utc(weekStart)),
		))))
	return q, notFound(err, "find qualifier")
}

func (r *TournamentRepo) GetQualifier(ctx context.Context, id string) (tournament.Qualifier, error) {
	q, err := scanQualifier(queryRow(ctx, r.db, builder.Select(qualifierFields...).
		From(builder.Table(tableQualifiers)).
		Where(entsql.EQ("id", id))))
	return q, notFound(err, "get qualifier")
}

func (r *TournamentRepo) CreateQualifier(ctx context.Context, q tournament.Qualifier) error {
	_, err := exec(ctx, r.db, builder.Insert(tableQualifiers).
		Columns(qualifierFields...).
		Values(q.ID, q.SeasonID, q.SkillID, q.Region, utc(q.WeekStart), utc(q.WeekEnd), string(q.Status)))
	return duplicate(err, "create qualifier")
}

func (r *TournamentRepo) TransitionQualifier(ctx context.Context, id string, from, to tournament.QualifierStatus) error {
	return r.transition(ctx, tableQualifiers, id, string(from), string(to))
}

var entryFields = []string{
	"id", "qualifier_id", "user_id", "skill_id", "region", "rating_at_entry",
	"started_at", "score", "completed_at", "flagged",
}

func scanEntry(row interface{ Scan(...any) error }) (tournament.Entry, error) {
	var e tournament.Entry
	var completed sql.NullTime
	err := row.Scan(&e.ID, &e.QualifierID, &e.UserID, &e.SkillID, &e.Region, &e.RatingAtEntry,
		&e.StartedAt, &e.Score, &completed, &e.Flagged)
	if err != nil {
		return tournament.Entry{}, err
	}
	e.StartedAt = utc(e.StartedAt)
	e.CompletedAt = timePtr(completed)
	return e, nil
}

func (r *TournamentRepo) GetEntry(ctx context.Context, qualifierID, userID string) (tournament.Entry, error) {
	e, err := scanEntry(queryRow(ctx, r.db, builder.Select(entryFields...).
		From(builder.Table(tableEntries)).
		Where(entsql.And(
			entsql.EQ("qualifier_id", qualifierID),
			entsql.EQ("user_id", userID),
		))))
	return e, notFound(err, "get entry")
}

func (r *TournamentRepo) CreateEntry(ctx context.Context, e tournament.Entry) error {
	_, err := exec(ctx, r.db, builder.Insert(tableEntries).
		Columns(entryFields...).
		Values(e.ID, e.QualifierID, e.UserID, e.SkillID, e.Region, e.RatingAtEntry,
			utc(e.StartedAt), e.Score, nullTime(e.CompletedAt), e.Flagged))
	return duplicate(err, "create entry")
}

// CompleteEntry sets the entry's score and completion time and adds the
// attempts to the user's daily aggregate, both in one transaction.
func (r *TournamentRepo) CompleteEntry(ctx context.Context, c tournament.Completion) error {
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		n, err := exec(ctx, tx, builder.Update(tableEntries).
			Set("score", c.Score).
			Set("flagged", c.Flagged).
			Set("completed_at", utc(c.At)).
			Where(entsql.And(
				entsql.EQ("id", c.EntryID),
				entsql.IsNull("completed_at"),
			)))
		if err != nil {
			return fmt.Errorf("complete entry: %w", err)
		}
		if n == 0 {
			ok, err := exists(ctx, tx, tableEntries, "id", c.EntryID)
			if err != nil {
				return fmt.Errorf("complete entry: %w", err)
			}
			if !ok {
				return tournament.ErrNotFound
			}
			return tournament.ErrAlreadyCompleted
		}
		return addDaily(ctx, tx, c.UserID, c.SkillID, c.At, c.Attempts, c.Correct)
	})
}

func (r *TournamentRepo) TopEntries(ctx context.Context, qualifierID string, limit int) ([]tournament.Entry, error) {
	rows, err := queryRows(ctx, r.db, builder.Select(entryFields...).
		From(builder.Table(tableEntries)).
		Where(entsql.And(
			entsql.EQ("qualifier_id", qualifierID),
			entsql.NotNull("completed_at"),
		)).
		OrderBy(entsql.Desc("score"), entsql.Asc("completed_at"), entsql.Asc("user_id")).
		Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("top entries: %w", err)
	}
	defer rows.Close()

	var out []tournament.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

var finalFields = []string{"id", "season_id", "skill_id", "status", "start_at", "end_at"}

func scanFinal(row interface{ Scan(...any) error }) (tournament.Final, error) {
	var f tournament.Final
	var status string
	if err := row.Scan(&f.ID, &f.SeasonID, &f.SkillID, &status, &f.StartAt, &f.EndAt); err != nil {
		return tournament.Final{}, err
	}
	f.Status = tournament.FinalStatus(status)
	f.StartAt, f.EndAt = utc(f.StartAt), utc(f.EndAt)
	return f, nil
}

func (r *TournamentRepo) FindFinal(ctx context.Context, seasonID, skillID string) (tournament.Final, error) {
	f, err := scanFinal(queryRow(ctx, r.db, builder.Select(finalFields...).
		From(builder.Table(tableFinals)).
		Where(entsql.And(
			entsql.EQ("season_id", seasonID),
			entsql.EQ("skill_id", skillID),
		))))
	return f, notFound(err, "find final")
}

func (r *TournamentRepo) GetFinal(ctx context.Context, id string) (tournament.Final, error) {
	f, err := scanFinal(queryRow(ctx, r.db, builder.Select(finalFields...).
		From(builder.Table(tableFinals)).
		Where(entsql.EQ("id", id))))
	return f, notFound(err, "get final")
}

func (r *TournamentRepo) CreateFinal(ctx context.Context, f tournament.Final) error {
	_, err := exec(ctx, r.db, builder.Insert(tableFinals).
		Columns(finalFields...).
		Values(f.ID, f.SeasonID, f.SkillID, string(f.Status), utc(f.StartAt), utc(f.EndAt)))
	return duplicate(err, "create final")
}

func (r *TournamentRepo) TransitionFinal(ctx context.Context, id string, from, to tournament.FinalStatus) error {
	return r.transition(ctx, tableFinals, id, string(from), string(to))
}

var finalistFields = []string{
	"id", "final_id", "user_id", "qualifier_id", "region", "qualifier_rank",
	"started_at", "completed_at", "final_score", "flagged",
}

func scanFinalist(row interface{ Scan(...any) error }) (tournament.Finalist, error) {
	var f tournament.Finalist
	var started, completed sql.NullTime
	var score sql.NullInt64
	err := row.Scan(&f.ID, &f.FinalID, &f.UserID, &f.QualifierID, &f.Region, &f.QualifierRank,
		&started, &completed, &score, &f.Flagged)
	if err != nil {
		return tournament.Finalist{}, err
	}
	f.StartedAt = timePtr(started)
	f.CompletedAt = timePtr(completed)
	if score.Valid {
		s := int(score.Int64)
		f.FinalScore = &s
	}
	return f, nil
}

func (r *TournamentRepo) GetFinalist(ctx context.Context, finalID, userID string) (tournament.Finalist, error) {
	f, err := scanFinalist(queryRow(ctx, r.db, builder.Select(finalistFields...).
		From(builder.Table(tableFinalists)).
		Where(entsql.And(
			entsql.EQ("final_id", finalID),
			entsql.EQ("user_id", userID),
		))))
	return f, notFound(err, "get finalist")
}

func (r *TournamentRepo) CreateFinalist(ctx context.Context, f tournament.Finalist) error {
	var score any
	if f.FinalScore != nil {
		score = *f.FinalScore
	}
	_, err := exec(ctx, r.db, builder.Insert(tableFinalists).
		Columns(finalistFields...).
		Values(f.ID, f.FinalID, f.UserID, f.QualifierID, f.Region, f.QualifierRank,
			nullTime(f.StartedAt), nullTime(f.CompletedAt), score, f.Flagged))
	return duplicate(err, "create finalist")
}

// StartFinalist records the first start only; a restart keeps it.
func (r *TournamentRepo) StartFinalist(ctx context.Context, id string, at time.Time) error {
	n, err := exec(ctx, r.db, builder.Update(tableFinalists).
		Set("started_at", utc(at)).
		Where(entsql.And(
			entsql.EQ("id", id),
			entsql.IsNull("started_at"),
		)))
	if err != nil {
		return fmt.Errorf("start finalist: %w", err)
	}
	if n > 0 {
		return nil
	}
	ok, err := exists(ctx, r.db, tableFinalists, "id", id)
	if err != nil {
		return fmt.Errorf("start finalist: %w", err)
	}
	if !ok {
		return tournament.ErrNotFound
	}
	return nil
}

func (r *TournamentRepo) CompleteFinalist(ctx context.Context, id string, score int, flagged bool, at time.Time) error {
	n, err := exec(ctx, r.db, builder.Update(tableFinalists).
		Set("final_score", score).
		Set("flagged", flagged).
		Set("completed_at", utc(at)).
		Where(entsql.And(
			entsql.EQ("id", id),
			entsql.IsNull("completed_at"),
		)))
	if err != nil {
		return fmt.Errorf("complete finalist: %w", err)
	}
	if n > 0 {
		return nil
	}
	ok, err := exists(ctx, r.db, tableFinalists, "id", id)
	if err != nil {
		return fmt.Errorf("complete finalist: %w", err)
	}
	if !ok {
		return tournament.ErrNotFound
	}
	return tournament.ErrAlreadyCompleted
}

func (r *TournamentRepo) TopFinalists(ctx context.Context, finalID string, limit int) ([]tournament.Finalist, error) {
	rows, err := queryRows(ctx, r.db, builder.Select(finalistFields...).
		From(builder.Table(tableFinalists)).
		Where(entsql.And(
			entsql.EQ("final_id", finalID),
			entsql.NotNull("completed_at"),
		)).
		OrderBy(entsql.Desc("final_score"), entsql.Asc("completed_at"), entsql.Asc("user_id")).
		Limit(limit))
	if err != nil {
		return nil, fmt.Errorf("top finalists: %w", err)
	}
	defer rows.Close()

	var out []tournament.Finalist
	for rows.Next() {
		f, err := scanFinalist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan finalist: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// transition is a status compare-and-set.
func (r *TournamentRepo) transition(ctx context.Context, table, id, from, to string) error {
	n, err := exec(ctx, r.db, builder.Update(table).
		Set("status", to).
		Where(entsql.And(
			entsql.EQ("id", id),
			entsql.EQ("status", from),
		)))
	if err != nil {
		return fmt.Errorf("transition %s %s: %w", table, id, err)
	}
	if n == 0 {
		return tournament.ErrConflict
	}
	return nil
}

func notFound(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return tournament.ErrNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func duplicate(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case sqlgraph.IsUniqueConstraintError(err):
		return tournament.ErrDuplicate
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
