package tournament

import (
	"context"
	"time"
)

// Completion is a graded qualifier entry. The repository marks the entry
// complete and adds the attempts to the user's daily aggregate atomically.
type Completion struct {
	EntryID  string
	UserID   string
	SkillID  string
	Score    int
	Correct  int
	Attempts int
	Flagged  bool
	At       time.Time
}

// Repository is the persistence boundary of the coordinator. Exactly-once
// guarantees live here: creates fail with ErrDuplicate on a unique key,
// completions fail with ErrAlreadyCompleted when already set, and status
// transitions fail with ErrConflict when the current status is not from.
type Repository interface {
	FindQualifier(ctx context.Context, seasonID, skillID, region string, weekStart time.Time) (Qualifier, error)
	GetQualifier(ctx context.Context, id string) (Qualifier, error)
	CreateQualifier(ctx context.Context, q Qualifier) error
	TransitionQualifier(ctx context.Context, id string, from, to QualifierStatus) error

	GetEntry(ctx context.Context, qualifierID, userID string) (Entry, error)
	CreateEntry(ctx context.Context, e Entry) error
	CompleteEntry(ctx context.Context, c Completion) error
	// TopEntries returns completed entries by score, highest first.
	TopEntries(ctx context.Context, qualifierID string, limit int) ([]Entry, error)

	FindFinal(ctx context.Context, seasonID, skillID string) (Final, error)
	GetFinal(ctx context.Context, id string) (Final, error)
	CreateFinal(ctx context.Context, f Final) error
	TransitionFinal(ctx context.Context, id string, from, to FinalStatus) error

	GetFinalist(ctx context.Context, finalID, userID string) (Finalist, error)
	CreateFinalist(ctx context.Context, f Finalist) error
	// StartFinalist records the first start time only; later calls keep it.
	StartFinalist(ctx context.Context, id string, at time.Time) error
	CompleteFinalist(ctx context.Context, id string, score int, flagged bool, at time.Time) error
	// TopFinalists returns completed finalists by score, highest first.
	TopFinalists(ctx context.Context, finalID string, limit int) ([]Finalist, error)
}

// SafetyLog records anti-cheat events.
type SafetyLog interface {
	Record(ctx context.Context, e SafetyEvent) error
}
