package cmd

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathquest/internal/leaderboard"
	"github.com/abhisek/mathquest/internal/logger"
	"github.com/abhisek/mathquest/internal/store"
	"github.com/abhisek/mathquest/internal/tournament"
)

// deleteLog is a leaderboard cache that never hits and records deletes.
type deleteLog struct {
	mu      sync.Mutex
	deleted []string
}

func (c *deleteLog) Get(context.Context, string, string) ([]byte, bool, error) { return nil, false, nil }

func (c *deleteLog) Set(context.Context, string, string, []byte, time.Duration) error { return nil }

func (c *deleteLog) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, key)
	return nil
}

func testRuntime(t *testing.T, now func() time.Time, cache leaderboard.Cache) *runtime {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "mathquest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	log := logger.Nop()
	cfg := tournament.DefaultConfig()
	cfg.Now = now
	cfg.Log = log
	gen := newGenerator(log)
	coord := tournament.New(st.Tournament(), st.Safety(), gen, cfg)
	return &runtime{
		log:      log,
		store:    st,
		gen:      gen,
		profiles: st.Profiles(),
		coord:    coord,
		board:    leaderboard.New(coord, cache, leaderboard.Options{Log: log}),
	}
}

func TestLockQualifier_InvalidatesBoards(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	cache := &deleteLog{}
	rt := testRuntime(t, func() time.Time { return now }, cache)

	start, err := rt.coord.StartQualifier(ctx, tournament.StartQualifierRequest{
		UserID: "u1", SkillID: "math-add-1", Rating: 1000,
	})
	require.NoError(t, err)
	now = now.Add(2 * time.Minute)
	_, err = rt.coord.SubmitQualifier(ctx, tournament.SubmitRequest{
		UserID: "u1", QualifierID: start.Qualifier.ID, Answers: map[int]string{},
	})
	require.NoError(t, err)

	res, err := lockQualifier(ctx, rt, tournament.LockRequest{QualifierID: start.Qualifier.ID})
	require.NoError(t, err)
	require.Equal(t, 1, res.FinalistsAdded)
	assert.Equal(t, []string{
		"mathquest:lb:qualifier:" + start.Qualifier.ID,
		"mathquest:lb:final:" + res.FinalID,
	}, cache.deleted)

	// Re-locking promotes nobody new, so the final's board stays cached.
	cache.deleted = nil
	_, err = lockQualifier(ctx, rt, tournament.LockRequest{QualifierID: start.Qualifier.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"mathquest:lb:qualifier:" + start.Qualifier.ID}, cache.deleted)
}
