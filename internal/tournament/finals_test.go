package tournament

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lockedFinal returns a final with u0 and u1 as finalists.
func (h *harness) lockedFinal(t *testing.T) string {
	t.Helper()
	qid := h.completeEntries(t, 3)
	res, err := h.coord.LockQualifier(context.Background(), LockRequest{QualifierID: qid, TopN: 2})
	require.NoError(t, err)
	return res.FinalID
}

func TestFinal_Lifecycle(t *testing.T) {
	h := newHarness()
	fid := h.lockedFinal(t)
	ctx := context.Background()

	_, err := h.coord.EndFinal(ctx, fid)
	requireRejection(t, err, KindPolicy, ReasonFinalNotLive)

	f, err := h.coord.OpenFinal(ctx, fid)
	require.NoError(t, err)
	assert.Equal(t, FinalLive, f.Status)

	f, err = h.coord.OpenFinal(ctx, fid)
	require.NoError(t, err, "opening a live final is a no-op")
	assert.Equal(t, FinalLive, f.Status)

	f, err = h.coord.EndFinal(ctx, fid)
	require.NoError(t, err)
	assert.Equal(t, FinalEnded, f.Status)

	_, err = h.coord.OpenFinal(ctx, fid)
	requireRejection(t, err, KindPolicy, ReasonFinalEnded)

	_, err = h.coord.OpenFinal(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStartFinal_Gates(t *testing.T) {
	h := newHarness()
	fid := h.lockedFinal(t)
	ctx := context.Background()

	_, err := h.coord.StartFinal(ctx, FinalRequest{UserID: "u0", FinalID: fid})
	requireRejection(t, err, KindPolicy, ReasonFinalNotLive)

	_, err = h.coord.OpenFinal(ctx, fid)
	require.NoError(t, err)

	_, err = h.coord.StartFinal(ctx, FinalRequest{UserID: "u2", FinalID: fid})
	requireRejection(t, err, KindPolicy, ReasonNotFinalist)

	_, err = h.coord.StartFinal(ctx, FinalRequest{UserID: "u0"})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestFinal_StartAndSubmit(t *testing.T) {
	h := newHarness()
	fid := h.lockedFinal(t)
	ctx := context.Background()
	_, err := h.coord.OpenFinal(ctx, fid)
	require.NoError(t, err)

	_, err = h.coord.SubmitFinal(ctx, SubmitFinalRequest{UserID: "u0", FinalID: fid})
	requireRejection(t, err, KindPolicy, ReasonFinalNotStarted)

	start, err := h.coord.StartFinal(ctx, FinalRequest{UserID: "u0", FinalID: fid})
	require.NoError(t, err)
	require.Len(t, start.Questions, 15)
	assert.Equal(t, 20.0, start.Questions[14].Difficulty)
	startedAt := *start.Finalist.StartedAt

	// Restarting hands back the same questions and keeps the first start.
	h.clock.Advance(time.Minute)
	again, err := h.coord.StartFinal(ctx, FinalRequest{UserID: "u0", FinalID: fid})
	require.NoError(t, err)
	assert.Equal(t, startedAt, *again.Finalist.StartedAt)
	assert.Equal(t, start.Questions[0].Content, again.Questions[0].Content)

	h.clock.Advance(4 * time.Minute)
	res, err := h.coord.SubmitFinal(ctx, SubmitFinalRequest{UserID: "u0", FinalID: fid, Answers: answersFor(start.Questions, 12)})
	require.NoError(t, err)
	assert.Equal(t, 12*20-3*5, res.Score)
	assert.Equal(t, 15, res.Total)
	assert.False(t, res.Flagged)
	assert.Equal(t, 5*time.Minute, res.Elapsed)

	_, err = h.coord.SubmitFinal(ctx, SubmitFinalRequest{UserID: "u0", FinalID: fid, Answers: answersFor(start.Questions, 15)})
	requireRejection(t, err, KindPolicy, ReasonFinalistCompleted)

	_, err = h.coord.StartFinal(ctx, FinalRequest{UserID: "u0", FinalID: fid})
	requireRejection(t, err, KindPolicy, ReasonFinalistCompleted)

	fl, err := h.repo.GetFinalist(ctx, fid, "u0")
	require.NoError(t, err)
	require.NotNil(t, fl.FinalScore)
	assert.Equal(t, 225, *fl.FinalScore)
}

func TestSubmitFinal_Timing(t *testing.T) {
	h := newHarness()
	fid := h.lockedFinal(t)
	ctx := context.Background()
	_, err := h.coord.OpenFinal(ctx, fid)
	require.NoError(t, err)

	s0, err := h.coord.StartFinal(ctx, FinalRequest{UserID: "u0", FinalID: fid})
	require.NoError(t, err)
	s1, err := h.coord.StartFinal(ctx, FinalRequest{UserID: "u1", FinalID: fid})
	require.NoError(t, err)

	h.clock.Advance(3 * time.Second)
	_, err = h.coord.SubmitFinal(ctx, SubmitFinalRequest{UserID: "u0", FinalID: fid, Answers: answersFor(s0.Questions, 15)})
	requireRejection(t, err, KindAntiCheat, ReasonTooFast)

	h.clock.Advance(11 * time.Minute)
	res, err := h.coord.SubmitFinal(ctx, SubmitFinalRequest{UserID: "u1", FinalID: fid, Answers: answersFor(s1.Questions, 15)})
	require.NoError(t, err)
	assert.True(t, res.Flagged)
	assert.Equal(t, 300, res.Score)

	require.Len(t, h.safety.events, 2)
	assert.Equal(t, "FINAL_SPEED_VIOLATION", h.safety.events[0].EventType)
	assert.Equal(t, "FINAL_TIME_EXCEEDED", h.safety.events[1].EventType)

	board, err := h.coord.FinalLeaderboard(ctx, fid, 0)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, Standing{Rank: 1, UserID: "u1", Region: "IN", Score: 300, Flagged: true}, board[0])
}

func TestSubmitFinal_AfterEndRejected(t *testing.T) {
	h := newHarness()
	fid := h.lockedFinal(t)
	ctx := context.Background()
	_, err := h.coord.OpenFinal(ctx, fid)
	require.NoError(t, err)

	start, err := h.coord.StartFinal(ctx, FinalRequest{UserID: "u0", FinalID: fid})
	require.NoError(t, err)
	_, err = h.coord.EndFinal(ctx, fid)
	require.NoError(t, err)

	h.clock.Advance(2 * time.Minute)
	_, err = h.coord.SubmitFinal(ctx, SubmitFinalRequest{UserID: "u0", FinalID: fid, Answers: answersFor(start.Questions, 15)})
	requireRejection(t, err, KindPolicy, ReasonFinalEnded)

	fl, err := h.repo.GetFinalist(ctx, fid, "u0")
	require.NoError(t, err)
	assert.Nil(t, fl.CompletedAt)
	assert.Nil(t, fl.FinalScore)
}
