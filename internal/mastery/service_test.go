package mastery

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mathquest/internal/problemgen"
)

type memRepo struct {
	mu     sync.Mutex
	states map[string]State
	err    error
}

func newMemRepo() *memRepo { return &memRepo{states: map[string]State{}} }

func (m *memRepo) GetMastery(_ context.Context, userID, skillID string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return State{}, m.err
	}
	s, ok := m.states[userID+"/"+skillID]
	if !ok {
		return State{}, ErrNotFound
	}
	return s, nil
}

func (m *memRepo) ApplyMastery(_ context.Context, userID, skillID string, fn func(State) State) (State, State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return State{}, State{}, m.err
	}
	prev, ok := m.states[userID+"/"+skillID]
	if !ok {
		prev = DefaultState()
	}
	next := fn(prev)
	m.states[userID+"/"+skillID] = next
	return prev, next, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, problemgen.New(problemgen.DefaultConfig()), nil)
}

func TestService_GetDefaultsLazily(t *testing.T) {
	svc := newTestService(newMemRepo())
	st, err := svc.Get(context.Background(), "u1", problemgen.SkillAddition)
	require.NoError(t, err)
	assert.Equal(t, DefaultState(), st)
}

func TestService_RecordAnswerPersists(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	out, err := svc.RecordAnswer(ctx, "u1", "math-add-1", ItemResult{IsCorrect: true, TimeTakenMs: 3000, Difficulty: 1})
	require.NoError(t, err)
	assert.True(t, out.Summary.IsCorrect)
	assert.Equal(t, 1, out.Summary.Streak)
	assert.Equal(t, TierBronze, out.Tier)
	assert.Equal(t, 1, out.NextDifficulty)
	assert.Equal(t, out.State, repo.states["u1/math-add-1"])

	out, err = svc.RecordAnswer(ctx, "u1", "math-add-1", ItemResult{IsCorrect: true, TimeTakenMs: 3000, Difficulty: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, out.State.Streak)
}

func TestService_RecordAnswerRepoError(t *testing.T) {
	repo := newMemRepo()
	repo.err = errors.New("disk gone")
	svc := newTestService(repo)

	_, err := svc.RecordAnswer(context.Background(), "u1", "math-add-1", ItemResult{})
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.err)
}

func TestService_SubmitGradesFromSeed(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	// "golden" at difficulty 3 is 4 + 3.
	out, err := svc.Submit(ctx, Answer{UserID: "u1", SkillID: "math-add-1", Seed: "golden", Difficulty: 3, Given: " 7 ", TimeTakenMs: 2500})
	require.NoError(t, err)
	assert.True(t, out.Summary.IsCorrect)

	out, err = svc.Submit(ctx, Answer{UserID: "u1", SkillID: "math-add-1", Seed: "golden", Difficulty: 3, Given: "8", TimeTakenMs: 2500})
	require.NoError(t, err)
	assert.False(t, out.Summary.IsCorrect)
	assert.Equal(t, 0, out.State.Streak)

	_, err = svc.Submit(ctx, Answer{UserID: "u1", SkillID: "math-add-1"})
	assert.Error(t, err)
}

func TestService_NextItemUsesAdaptiveDifficulty(t *testing.T) {
	repo := newMemRepo()
	repo.states["u1/math-mul-1"] = State{CurrentDifficulty: 3.6}
	svc := newTestService(repo)

	p, res, err := svc.NextItem(context.Background(), "u1", "math-mul-1", "n1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, p.Difficulty)
	assert.Equal(t, 4.0, res.Content.Difficulty)
	assert.NotEmpty(t, res.Content.Question)
}

func TestService_RecordAnswerConcurrent(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()
	r := ItemResult{IsCorrect: true, TimeTakenMs: 3000, Difficulty: 1}

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordAnswer(ctx, "u1", "math-add-1", r)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	want := DefaultState()
	for i := 0; i < n; i++ {
		want = Update(want, r)
	}
	assert.Equal(t, want, repo.states["u1/math-add-1"])
	assert.Equal(t, n, want.Streak)
}
