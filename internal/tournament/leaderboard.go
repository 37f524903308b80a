package tournament

import (
	"context"
	"fmt"
)

// QualifierLeaderboard returns completed entries by score. limit <= 0 uses
// the policy's board size.
func (c *Coordinator) QualifierLeaderboard(ctx context.Context, qualifierID string, limit int) ([]Standing, error) {
	if qualifierID == "" {
		return nil, fmt.Errorf("%w: qualifier id is required", ErrInvalidRequest)
	}
	if limit <= 0 {
		limit = c.cfg.Policy.QualifierBoardSize
	}
	entries, err := c.repo.TopEntries(ctx, qualifierID, limit)
	if err != nil {
		return nil, fmt.Errorf("top entries: %w", err)
	}
	out := make([]Standing, 0, len(entries))
	for i, e := range entries {
		out = append(out, Standing{Rank: i + 1, UserID: e.UserID, Region: e.Region, Score: e.Score, Flagged: e.Flagged})
	}
	return out, nil
}

// FinalLeaderboard returns completed finalists by score. limit <= 0 uses the
// policy's board size.
func (c *Coordinator) FinalLeaderboard(ctx context.Context, finalID string, limit int) ([]Standing, error) {
	if finalID == "" {
		return nil, fmt.Errorf("%w: final id is required", ErrInvalidRequest)
	}
	if limit <= 0 {
		limit = c.cfg.Policy.FinalBoardSize
	}
	finalists, err := c.repo.TopFinalists(ctx, finalID, limit)
	if err != nil {
		return nil, fmt.Errorf("top finalists: %w", err)
	}
	out := make([]Standing, 0, len(finalists))
	for i, f := range finalists {
		var score int
		if f.FinalScore != nil {
			score = *f.FinalScore
		}
		out = append(out, Standing{Rank: i + 1, UserID: f.UserID, Region: f.Region, Score: score, Flagged: f.Flagged})
	}
	return out, nil
}
