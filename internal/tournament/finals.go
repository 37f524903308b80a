package tournament

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

// OpenFinal moves a final from UPCOMING to LIVE. Opening a live final is a
// no-op.
func (c *Coordinator) OpenFinal(ctx context.Context, finalID string) (Final, error) {
	return c.transitionFinal(ctx, finalID, FinalUpcoming, FinalLive)
}

// EndFinal moves a final from LIVE to ENDED. Ending an ended final is a
// no-op.
func (c *Coordinator) EndFinal(ctx context.Context, finalID string) (Final, error) {
	return c.transitionFinal(ctx, finalID, FinalLive, FinalEnded)
}

func (c *Coordinator) transitionFinal(ctx context.Context, id string, from, to FinalStatus) (Final, error) {
	if id == "" {
		return Final{}, fmt.Errorf("%w: final id is required", ErrInvalidRequest)
	}
	f, err := c.repo.GetFinal(ctx, id)
	if err != nil {
		return Final{}, fmt.Errorf("get final: %w", err)
	}
	switch f.Status {
	case to:
		return f, nil
	case from:
	default:
		reason := ReasonFinalNotLive
		if f.Status == FinalEnded {
			reason = ReasonFinalEnded
		}
		return Final{}, reject(reason, fmt.Sprintf("final %s is %s, cannot move to %s", f.ID, f.Status, to))
	}

	if err := c.repo.TransitionFinal(ctx, id, from, to); err != nil && !errors.Is(err, ErrConflict) {
		return Final{}, fmt.Errorf("transition final: %w", err)
	}
	f, err = c.repo.GetFinal(ctx, id)
	if err != nil {
		return Final{}, fmt.Errorf("get final: %w", err)
	}
	c.log.Info("final status changed", "final_id", id, "status", f.Status)
	return f, nil
}

// StartFinalResponse is a started final attempt with its questions.
type StartFinalResponse struct {
	Final     Final      `json:"final"`
	Finalist  Finalist   `json:"finalist"`
	Questions []Question `json:"questions"`
}

// StartFinal hands a finalist the final's questions and records the first
// start time.
func (c *Coordinator) StartFinal(ctx context.Context, req FinalRequest) (StartFinalResponse, error) {
	if err := validateRequest(req); err != nil {
		return StartFinalResponse{}, err
	}
	fl, err := c.finalist(ctx, req.FinalID, req.UserID)
	if err != nil {
		return StartFinalResponse{}, err
	}
	if fl.CompletedAt != nil {
		return StartFinalResponse{}, reject(ReasonFinalistCompleted, "final already completed")
	}
	f, err := c.repo.GetFinal(ctx, req.FinalID)
	if err != nil {
		return StartFinalResponse{}, fmt.Errorf("get final: %w", err)
	}
	if f.Status != FinalLive {
		return StartFinalResponse{}, reject(ReasonFinalNotLive, fmt.Sprintf("final %s is %s", f.ID, f.Status))
	}

	now := c.now()
	if err := c.repo.StartFinalist(ctx, fl.ID, now); err != nil {
		return StartFinalResponse{}, fmt.Errorf("start finalist: %w", err)
	}
	if fl.StartedAt == nil {
		fl.StartedAt = &now
	}

	c.log.Info("final started", "user_id", req.UserID, "final_id", f.ID)
	return StartFinalResponse{Final: f, Finalist: fl, Questions: c.cfg.Policy.FinalQuestions(c.gen, f)}, nil
}

// SubmitFinal grades a final attempt exactly once, while the final is LIVE.
func (c *Coordinator) SubmitFinal(ctx context.Context, req SubmitFinalRequest) (SubmitResult, error) {
	if err := validateRequest(req); err != nil {
		return SubmitResult{}, err
	}
	fl, err := c.finalist(ctx, req.FinalID, req.UserID)
	if err != nil {
		return SubmitResult{}, err
	}
	if fl.CompletedAt != nil {
		return SubmitResult{}, reject(ReasonFinalistCompleted, "final already completed")
	}
	if fl.StartedAt == nil {
		return SubmitResult{}, reject(ReasonFinalNotStarted, "final was never started")
	}
	f, err := c.repo.GetFinal(ctx, req.FinalID)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("get final: %w", err)
	}
	switch f.Status {
	case FinalLive:
	case FinalEnded:
		return SubmitResult{}, reject(ReasonFinalEnded, fmt.Sprintf("final %s has ended", f.ID))
	default:
		return SubmitResult{}, reject(ReasonFinalNotLive, fmt.Sprintf("final %s is %s", f.ID, f.Status))
	}

	stage := c.cfg.Policy.Final
	now := c.now()
	elapsed := now.Sub(*fl.StartedAt)
	flagged, err := c.checkTiming(ctx, stage, req.UserID, f.ID, elapsed)
	if err != nil {
		return SubmitResult{}, err
	}

	questions := c.cfg.Policy.FinalQuestions(c.gen, f)
	score, correct := Grade(stage, questions, req.Answers)

	err = c.repo.CompleteFinalist(ctx, fl.ID, score, flagged, now)
	if errors.Is(err, ErrAlreadyCompleted) {
		return SubmitResult{}, reject(ReasonFinalistCompleted, "final already completed")
	}
	if err != nil {
		return SubmitResult{}, fmt.Errorf("complete finalist: %w", err)
	}

	submissionsTotal.WithLabelValues(stage.Name, strconv.FormatBool(flagged)).Inc()
	c.log.Info("final submitted", "user_id", req.UserID, "final_id", f.ID, "score", score, "flagged", flagged)
	return SubmitResult{
		Score:     score,
		Correct:   correct,
		Total:     len(questions),
		Flagged:   flagged,
		Elapsed:   elapsed,
		Completed: now,
	}, nil
}

func (c *Coordinator) finalist(ctx context.Context, finalID, userID string) (Finalist, error) {
	fl, err := c.repo.GetFinalist(ctx, finalID, userID)
	if errors.Is(err, ErrNotFound) {
		return Finalist{}, reject(ReasonNotFinalist, fmt.Sprintf("user is not a finalist of %s", finalID))
	}
	if err != nil {
		return Finalist{}, fmt.Errorf("get finalist: %w", err)
	}
	return fl, nil
}
