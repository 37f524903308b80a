package tournament

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathquest/internal/logger"
	"github.com/abhisek/mathquest/internal/problemgen"
)

// Config configures a Coordinator.
type Config struct {
	Policy        Policy
	DefaultSeason string
	DefaultRegion string
	Now           func() time.Time
	Log           *logger.Logger
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Policy:        DefaultPolicy(),
		DefaultSeason: "SEASON_1_DEFAULT",
		DefaultRegion: "IN",
		Now:           time.Now,
		Log:           logger.Nop(),
	}
}

// Coordinator runs qualifier and final flows. It holds no mutable state;
// mutual exclusion is the repository's job.
type Coordinator struct {
	repo   Repository
	safety SafetyLog
	gen    *problemgen.Generator
	cfg    Config
	log    *logger.Logger
}

// New creates a Coordinator.
func New(repo Repository, safety SafetyLog, gen *problemgen.Generator, cfg Config) *Coordinator {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	return &Coordinator{repo: repo, safety: safety, gen: gen, cfg: cfg, log: cfg.Log}
}

// Policy returns the rules in force.
func (c *Coordinator) Policy() Policy { return c.cfg.Policy }

func (c *Coordinator) now() time.Time { return c.cfg.Now().UTC() }

// StartQualifierResponse is a started attempt with its questions.
type StartQualifierResponse struct {
	Qualifier Qualifier  `json:"qualifier"`
	Entry     Entry      `json:"entry"`
	Questions []Question `json:"questions"`
}

// StartQualifier enters the user into the current week's qualifier for the
// skill, creating the qualifier on first use.
func (c *Coordinator) StartQualifier(ctx context.Context, req StartQualifierRequest) (StartQualifierResponse, error) {
	if err := validateRequest(req); err != nil {
		return StartQualifierResponse{}, err
	}
	if req.SeasonID == "" {
		req.SeasonID = c.cfg.DefaultSeason
	}
	if req.Region == "" {
		req.Region = c.cfg.DefaultRegion
	}

	now := c.now()
	q, err := c.currentQualifier(ctx, req.SeasonID, req.SkillID, req.Region, now)
	if err != nil {
		return StartQualifierResponse{}, err
	}
	if q.Status != QualifierOpen {
		return StartQualifierResponse{}, reject(ReasonQualifierNotOpen, fmt.Sprintf("qualifier %s is %s", q.ID, q.Status))
	}

	if _, err := c.repo.GetEntry(ctx, q.ID, req.UserID); err == nil {
		return StartQualifierResponse{}, reject(ReasonAlreadyEntered, "qualifier already attempted")
	} else if !errors.Is(err, ErrNotFound) {
		return StartQualifierResponse{}, fmt.Errorf("get entry: %w", err)
	}

	questions := c.cfg.Policy.QualifierQuestions(c.gen, q)

	entry := Entry{
		ID:            uuid.NewString(),
		QualifierID:   q.ID,
		UserID:        req.UserID,
		SkillID:       req.SkillID,
		Region:        req.Region,
		RatingAtEntry: req.Rating,
		StartedAt:     now,
	}
	if err := c.repo.CreateEntry(ctx, entry); err != nil {
		if errors.Is(err, ErrDuplicate) {
			return StartQualifierResponse{}, reject(ReasonAlreadyEntered, "qualifier already attempted")
		}
		return StartQualifierResponse{}, fmt.Errorf("create entry: %w", err)
	}

	c.log.Info("qualifier started", "user_id", req.UserID, "qualifier_id", q.ID, "skill_id", q.SkillID)
	return StartQualifierResponse{Qualifier: q, Entry: entry, Questions: questions}, nil
}

func (c *Coordinator) currentQualifier(ctx context.Context, season, skill, region string, now time.Time) (Qualifier, error) {
	week := WeekStart(now)
	q, err := c.repo.FindQualifier(ctx, season, skill, region, week)
	if err == nil {
		return q, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Qualifier{}, fmt.Errorf("find qualifier: %w", err)
	}

	q = Qualifier{
		ID:        uuid.NewString(),
		SeasonID:  season,
		SkillID:   skill,
		Region:    region,
		WeekStart: week,
		WeekEnd:   week.Add(c.cfg.Policy.QualifierLength),
		Status:    QualifierOpen,
	}
	if err := c.repo.CreateQualifier(ctx, q); err != nil {
		if !errors.Is(err, ErrDuplicate) {
			return Qualifier{}, fmt.Errorf("create qualifier: %w", err)
		}
		// Lost the creation race; use the winner's row.
		q, err = c.repo.FindQualifier(ctx, season, skill, region, week)
		if err != nil {
			return Qualifier{}, fmt.Errorf("find qualifier: %w", err)
		}
		return q, nil
	}
	c.log.Info("qualifier created", "qualifier_id", q.ID, "skill_id", skill, "region", region, "week_start", week)
	return q, nil
}

// SubmitResult is a graded submission.
type SubmitResult struct {
	Score     int           `json:"score"`
	Correct   int           `json:"correct"`
	Total     int           `json:"total"`
	Bonus     int           `json:"bonus"`
	Flagged   bool          `json:"flagged"`
	Elapsed   time.Duration `json:"elapsedNs"`
	Completed time.Time     `json:"completedAt"`
}

// SubmitQualifier grades a qualifier attempt exactly once.
func (c *Coordinator) SubmitQualifier(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	if err := validateRequest(req); err != nil {
		return SubmitResult{}, err
	}

	entry, err := c.repo.GetEntry(ctx, req.QualifierID, req.UserID)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("get entry: %w", err)
	}
	if entry.CompletedAt != nil {
		return SubmitResult{}, reject(ReasonAlreadySubmitted, "qualifier already submitted")
	}
	q, err := c.repo.GetQualifier(ctx, req.QualifierID)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("get qualifier: %w", err)
	}

	stage := c.cfg.Policy.Qualifier
	now := c.now()
	elapsed := now.Sub(entry.StartedAt)
	flagged, err := c.checkTiming(ctx, stage, req.UserID, q.ID, elapsed)
	if err != nil {
		return SubmitResult{}, err
	}

	questions := c.cfg.Policy.QualifierQuestions(c.gen, q)
	score, correct := Grade(stage, questions, req.Answers)
	bonus := c.cfg.Policy.SpeedBonus(elapsed, correct)
	score += bonus

	err = c.repo.CompleteEntry(ctx, Completion{
		EntryID:  entry.ID,
		UserID:   entry.UserID,
		SkillID:  entry.SkillID,
		Score:    score,
		Correct:  correct,
		Attempts: len(questions),
		Flagged:  flagged,
		At:       now,
	})
	if errors.Is(err, ErrAlreadyCompleted) {
		return SubmitResult{}, reject(ReasonAlreadySubmitted, "qualifier already submitted")
	}
	if err != nil {
		return SubmitResult{}, fmt.Errorf("complete entry: %w", err)
	}

	submissionsTotal.WithLabelValues(stage.Name, strconv.FormatBool(flagged)).Inc()
	c.log.Info("qualifier submitted",
		"user_id", req.UserID,
		"qualifier_id", q.ID,
		"score", score,
		"correct", correct,
		"flagged", flagged,
		"elapsed", elapsed,
	)
	return SubmitResult{
		Score:     score,
		Correct:   correct,
		Total:     len(questions),
		Bonus:     bonus,
		Flagged:   flagged,
		Elapsed:   elapsed,
		Completed: now,
	}, nil
}

// checkTiming applies the stage's anti-cheat window. A too-fast submission
// is rejected; an overlong one is accepted but flagged. Both are logged as
// safety events.
func (c *Coordinator) checkTiming(ctx context.Context, stage Stage, userID, scopeID string, elapsed time.Duration) (flagged bool, err error) {
	verdict := stage.CheckTiming(elapsed)
	var eventType string
	switch verdict {
	case TimingOK:
		return false, nil
	case TimingTooFast:
		eventType = stage.EventPrefix + "SPEED_VIOLATION"
	case TimingExceeded:
		eventType = stage.EventPrefix + "TIME_EXCEEDED"
	}

	ev := SafetyEvent{
		UserID:    userID,
		EventType: eventType,
		Details: map[string]any{
			"stage":       stage.Name,
			"id":          scopeID,
			"durationSec": elapsed.Seconds(),
		},
		At: c.now(),
	}
	if err := c.safety.Record(ctx, ev); err != nil {
		return false, fmt.Errorf("record safety event: %w", err)
	}
	c.log.Warn("tournament timing violation", "user_id", userID, "event", eventType, "elapsed", elapsed)

	if verdict == TimingTooFast {
		return false, rejectCheat(ReasonTooFast, fmt.Sprintf("submitted after %.1fs (min %s)", elapsed.Seconds(), stage.MinDuration))
	}
	return true, nil
}

// LockResult reports the effect of a lock.
type LockResult struct {
	QualifierID    string `json:"qualifierId"`
	FinalID        string `json:"finalId"`
	AlreadyLocked  bool   `json:"alreadyLocked"`
	FinalistsAdded int    `json:"finalistsAdded"`
}

// LockQualifier closes a qualifier and promotes its top entries into the
// season final for the skill. Locking again re-runs promotion; existing
// finalists are skipped.
func (c *Coordinator) LockQualifier(ctx context.Context, req LockRequest) (LockResult, error) {
	if err := validateRequest(req); err != nil {
		return LockResult{}, err
	}
	topN := req.TopN
	if topN == 0 {
		topN = c.cfg.Policy.FinalistsPerQualifier
	}

	q, err := c.repo.GetQualifier(ctx, req.QualifierID)
	if err != nil {
		return LockResult{}, fmt.Errorf("get qualifier: %w", err)
	}

	res := LockResult{QualifierID: q.ID, AlreadyLocked: q.Status == QualifierLocked}
	if q.Status == QualifierOpen {
		err := c.repo.TransitionQualifier(ctx, q.ID, QualifierOpen, QualifierLocked)
		if errors.Is(err, ErrConflict) {
			res.AlreadyLocked = true
		} else if err != nil {
			return LockResult{}, fmt.Errorf("lock qualifier: %w", err)
		}
	}

	final, err := c.seasonFinal(ctx, q.SeasonID, q.SkillID)
	if err != nil {
		return LockResult{}, err
	}
	res.FinalID = final.ID

	top, err := c.repo.TopEntries(ctx, q.ID, topN)
	if err != nil {
		return LockResult{}, fmt.Errorf("top entries: %w", err)
	}
	for i, e := range top {
		err := c.repo.CreateFinalist(ctx, Finalist{
			ID:            uuid.NewString(),
			FinalID:       final.ID,
			UserID:        e.UserID,
			QualifierID:   q.ID,
			Region:        e.Region,
			QualifierRank: i + 1,
		})
		if errors.Is(err, ErrDuplicate) {
			continue
		}
		if err != nil {
			return LockResult{}, fmt.Errorf("create finalist: %w", err)
		}
		res.FinalistsAdded++
	}
	finalistsPromoted.Add(float64(res.FinalistsAdded))

	c.log.Info("qualifier locked",
		"qualifier_id", q.ID,
		"final_id", final.ID,
		"finalists_added", res.FinalistsAdded,
		"already_locked", res.AlreadyLocked,
	)
	return res, nil
}

func (c *Coordinator) seasonFinal(ctx context.Context, season, skill string) (Final, error) {
	f, err := c.repo.FindFinal(ctx, season, skill)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Final{}, fmt.Errorf("find final: %w", err)
	}

	now := c.now()
	f = Final{
		ID:       uuid.NewString(),
		SeasonID: season,
		SkillID:  skill,
		Status:   FinalUpcoming,
		StartAt:  now.Add(c.cfg.Policy.FinalStartDelay),
		EndAt:    now.Add(c.cfg.Policy.FinalStartDelay + c.cfg.Policy.FinalLength),
	}
	if err := c.repo.CreateFinal(ctx, f); err != nil {
		if !errors.Is(err, ErrDuplicate) {
			return Final{}, fmt.Errorf("create final: %w", err)
		}
		return c.repo.FindFinal(ctx, season, skill)
	}
	return f, nil
}
