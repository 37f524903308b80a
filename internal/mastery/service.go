package mastery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/mathquest/internal/logger"
	"github.com/abhisek/mathquest/internal/problemgen"
)

// ErrNotFound is returned by a Repository when no state exists yet.
var ErrNotFound = errors.New("mastery state not found")

// Repository persists mastery state per (user, skill).
type Repository interface {
	// GetMastery returns ErrNotFound (possibly wrapped) when the user has not
	// practiced the skill.
	GetMastery(ctx context.Context, userID, skillID string) (State, error)

	// ApplyMastery replaces the stored state with fn(prev) atomically, so
	// concurrent answers for one (user, skill) never overwrite each other.
	// prev is DefaultState when nothing is stored. fn must be pure.
	ApplyMastery(ctx context.Context, userID, skillID string, fn func(prev State) State) (prev, next State, err error)
}

// Outcome is the result of recording one practice answer.
type Outcome struct {
	State          State   `json:"state"`
	Summary        Summary `json:"summary"`
	Unlocked       bool    `json:"unlocked"`
	Tier           Tier    `json:"tier"`
	NextDifficulty int     `json:"nextDifficulty"`
}

// Answer is a practice answer for an item that was generated from a seed.
// The item is regenerated to grade the answer; nothing about it is stored.
type Answer struct {
	UserID      string
	SkillID     string
	Seed        string
	Difficulty  float64
	Given       string
	TimeTakenMs int64
	HintsUsed   int
}

// Service runs the practice flow over the pure engine.
type Service struct {
	repo Repository
	gen  *problemgen.Generator
	log  *logger.Logger
}

// NewService creates a practice service. log may be nil.
func NewService(repo Repository, gen *problemgen.Generator, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, gen: gen, log: log}
}

// Get returns the user's state for a skill, or DefaultState if none exists.
func (s *Service) Get(ctx context.Context, userID, skillID string) (State, error) {
	st, err := s.repo.GetMastery(ctx, userID, skillID)
	if errors.Is(err, ErrNotFound) {
		return DefaultState(), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("load mastery %s/%s: %w", userID, skillID, err)
	}
	return st, nil
}

// RecordAnswer applies r to the stored state and saves the result in one
// atomic step.
func (s *Service) RecordAnswer(ctx context.Context, userID, skillID string, r ItemResult) (Outcome, error) {
	prev, next, err := s.repo.ApplyMastery(ctx, userID, skillID, func(prev State) State {
		return Update(prev, r)
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("update mastery %s/%s: %w", userID, skillID, err)
	}

	out := Outcome{
		State:          next,
		Summary:        Summarize(r.IsCorrect, next),
		Unlocked:       CanUnlock(next),
		Tier:           TierFor(next.Score),
		NextDifficulty: NextDifficulty(next),
	}
	if out.Unlocked && !CanUnlock(prev) {
		s.log.Info("skill unlocked", "user_id", userID, "skill_id", skillID, "score", next.Score)
	}
	s.log.Debug("mastery updated",
		"user_id", userID,
		"skill_id", skillID,
		"correct", r.IsCorrect,
		"score", next.Score,
		"difficulty", next.CurrentDifficulty,
	)
	return out, nil
}

// Submit grades a seeded practice answer and records it.
func (s *Service) Submit(ctx context.Context, a Answer) (Outcome, error) {
	if a.Seed == "" {
		return Outcome{}, errors.New("practice answer requires the item seed")
	}
	c := s.gen.Content(problemgen.Params{SkillID: a.SkillID, Difficulty: a.Difficulty, Seed: a.Seed})
	correct := strings.TrimSpace(a.Given) == c.CorrectAnswer
	return s.RecordAnswer(ctx, a.UserID, a.SkillID, ItemResult{
		IsCorrect:   correct,
		TimeTakenMs: a.TimeTakenMs,
		HintsUsed:   a.HintsUsed,
		Difficulty:  a.Difficulty,
	})
}

// NextItem generates the user's next practice item for a skill at the
// adaptive difficulty.
func (s *Service) NextItem(ctx context.Context, userID, skillID, seed string) (problemgen.Params, problemgen.Result, error) {
	st, err := s.Get(ctx, userID, skillID)
	if err != nil {
		return problemgen.Params{}, problemgen.Result{}, err
	}
	p := problemgen.Params{SkillID: skillID, Difficulty: float64(NextDifficulty(st)), Seed: seed}
	return p, s.gen.Generate(p), nil
}
