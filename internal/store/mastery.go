package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/mathquest/internal/mastery"
)

// MasteryRepo implements mastery.Repository.
type MasteryRepo struct {
	db *sql.DB
}

var _ mastery.Repository = (*MasteryRepo)(nil)

var masteryFields = []string{
	"score", "stability", "frustration", "confidence", "streak",
	"current_difficulty", "highest_difficulty_solved",
}

func (r *MasteryRepo) GetMastery(ctx context.Context, userID, skillID string) (mastery.State, error) {
	return getMastery(ctx, r.db, userID, skillID)
}

func (r *MasteryRepo) ApplyMastery(ctx context.Context, userID, skillID string, fn func(mastery.State) mastery.State) (prev, next mastery.State, err error) {
	err = inTx(ctx, r.db, func(tx *sql.Tx) error {
		p, err := getMastery(ctx, tx, userID, skillID)
		if errors.Is(err, mastery.ErrNotFound) {
			p = mastery.DefaultState()
		} else if err != nil {
			return err
		}
		n := fn(p)
		if err := saveMastery(ctx, tx, userID, skillID, n); err != nil {
			return err
		}
		prev, next = p, n
		return nil
	})
	if err != nil {
		return mastery.State{}, mastery.State{}, err
	}
	return prev, next, nil
}

func getMastery(ctx context.Context, q querier, userID, skillID string) (mastery.State, error) {
	var s mastery.State
	err := queryRow(ctx, q, builder.Select(masteryFields...).
		From(builder.Table(tableMastery)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("skill_id", skillID),
		))).Scan(&s.Score, &s.Stability, &s.Frustration, &s.Confidence, &s.Streak,
		&s.CurrentDifficulty, &s.HighestDifficultySolved)
	if errors.Is(err, sql.ErrNoRows) {
		return mastery.State{}, mastery.ErrNotFound
	}
	if err != nil {
		return mastery.State{}, fmt.Errorf("get mastery: %w", err)
	}
	return s, nil
}

func saveMastery(ctx context.Context, q querier, userID, skillID string, s mastery.State) error {
	cols := append([]string{"user_id", "skill_id"}, masteryFields...)
	cols = append(cols, "updated_at")
	_, err := exec(ctx, q, builder.Insert(tableMastery).
		Columns(cols...).
		Values(userID, skillID, s.Score, s.Stability, s.Frustration, s.Confidence, s.Streak,
			s.CurrentDifficulty, s.HighestDifficultySolved, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("user_id", "skill_id"),
			entsql.ResolveWithNewValues(),
		))
	if err != nil {
		return fmt.Errorf("save mastery: %w", err)
	}
	return nil
}
