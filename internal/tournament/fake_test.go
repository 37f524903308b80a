package tournament

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

// memRepo is an in-memory Repository with the same uniqueness and
// exactly-once semantics as the SQL store.
type memRepo struct {
	mu         sync.Mutex
	qualifiers map[string]Qualifier
	entries    map[string]Entry // by qualifierID/userID
	finals     map[string]Final
	finalists  map[string]Finalist // by finalID/userID
	aggregates map[string][2]int   // userID/skillID/day -> attempts, correct
}

func newMemRepo() *memRepo {
	return &memRepo{
		qualifiers: map[string]Qualifier{},
		entries:    map[string]Entry{},
		finals:     map[string]Final{},
		finalists:  map[string]Finalist{},
		aggregates: map[string][2]int{},
	}
}

func (m *memRepo) FindQualifier(_ context.Context, season, skill, region string, week time.Time) (Qualifier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range m.qualifiers {
		if q.SeasonID == season && q.SkillID == skill && q.Region == region && q.WeekStart.Equal(week) {
			return q, nil
		}
	}
	return Qualifier{}, ErrNotFound
}

func (m *memRepo) GetQualifier(_ context.Context, id string) (Qualifier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.qualifiers[id]
	if !ok {
		return Qualifier{}, ErrNotFound
	}
	return q, nil
}

func (m *memRepo) CreateQualifier(_ context.Context, q Qualifier) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.qualifiers {
		if o.SeasonID == q.SeasonID && o.SkillID == q.SkillID && o.Region == q.Region && o.WeekStart.Equal(q.WeekStart) {
			return ErrDuplicate
		}
	}
	m.qualifiers[q.ID] = q
	return nil
}

func (m *memRepo) TransitionQualifier(_ context.Context, id string, from, to QualifierStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.qualifiers[id]
	if !ok || q.Status != from {
		return ErrConflict
	}
	q.Status = to
	m.qualifiers[id] = q
	return nil
}

func (m *memRepo) GetEntry(_ context.Context, qualifierID, userID string) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[qualifierID+"/"+userID]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (m *memRepo) CreateEntry(_ context.Context, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := e.QualifierID + "/" + e.UserID
	if _, ok := m.entries[key]; ok {
		return ErrDuplicate
	}
	m.entries[key] = e
	return nil
}

func (m *memRepo) CompleteEntry(_ context.Context, c Completion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, e := range m.entries {
		if e.ID != c.EntryID {
			continue
		}
		if e.CompletedAt != nil {
			return ErrAlreadyCompleted
		}
		at := c.At
		e.CompletedAt, e.Score, e.Flagged = &at, c.Score, c.Flagged
		m.entries[k] = e
		day := c.UserID + "/" + c.SkillID + "/" + c.At.UTC().Format(time.DateOnly)
		agg := m.aggregates[day]
		m.aggregates[day] = [2]int{agg[0] + c.Attempts, agg[1] + c.Correct}
		return nil
	}
	return ErrNotFound
}

func (m *memRepo) TopEntries(_ context.Context, qualifierID string, limit int) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Entry
	for _, e := range m.entries {
		if e.QualifierID == qualifierID && e.CompletedAt != nil {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b Entry) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if c := a.CompletedAt.Compare(*b.CompletedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	return out[:min(limit, len(out))], nil
}

func (m *memRepo) FindFinal(_ context.Context, season, skill string) (Final, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.finals {
		if f.SeasonID == season && f.SkillID == skill {
			return f, nil
		}
	}
	return Final{}, ErrNotFound
}

func (m *memRepo) GetFinal(_ context.Context, id string) (Final, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.finals[id]
	if !ok {
		return Final{}, ErrNotFound
	}
	return f, nil
}

func (m *memRepo) CreateFinal(_ context.Context, f Final) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.finals {
		if o.SeasonID == f.SeasonID && o.SkillID == f.SkillID {
			return ErrDuplicate
		}
	}
	m.finals[f.ID] = f
	return nil
}

func (m *memRepo) TransitionFinal(_ context.Context, id string, from, to FinalStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.finals[id]
	if !ok || f.Status != from {
		return ErrConflict
	}
	f.Status = to
	m.finals[id] = f
	return nil
}

func (m *memRepo) GetFinalist(_ context.Context, finalID, userID string) (Finalist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.finalists[finalID+"/"+userID]
	if !ok {
		return Finalist{}, ErrNotFound
	}
	return f, nil
}

func (m *memRepo) CreateFinalist(_ context.Context, f Finalist) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := f.FinalID + "/" + f.UserID
	if _, ok := m.finalists[key]; ok {
		return ErrDuplicate
	}
	m.finalists[key] = f
	return nil
}

func (m *memRepo) updateFinalist(id string, fn func(*Finalist) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, f := range m.finalists {
		if f.ID == id {
			if err := fn(&f); err != nil {
				return err
			}
			m.finalists[k] = f
			return nil
		}
	}
	return ErrNotFound
}

func (m *memRepo) StartFinalist(_ context.Context, id string, at time.Time) error {
	return m.updateFinalist(id, func(f *Finalist) error {
		if f.StartedAt == nil {
			f.StartedAt = &at
		}
		return nil
	})
}

func (m *memRepo) CompleteFinalist(_ context.Context, id string, score int, flagged bool, at time.Time) error {
	return m.updateFinalist(id, func(f *Finalist) error {
		if f.CompletedAt != nil {
			return ErrAlreadyCompleted
		}
		f.CompletedAt, f.FinalScore, f.Flagged = &at, &score, flagged
		return nil
	})
}

func (m *memRepo) TopFinalists(_ context.Context, finalID string, limit int) ([]Finalist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Finalist
	for _, f := range m.finalists {
		if f.FinalID == finalID && f.CompletedAt != nil {
			out = append(out, f)
		}
	}
	slices.SortFunc(out, func(a, b Finalist) int {
		if c := cmp.Compare(*b.FinalScore, *a.FinalScore); c != 0 {
			return c
		}
		if c := a.CompletedAt.Compare(*b.CompletedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.UserID, b.UserID)
	})
	return out[:min(limit, len(out))], nil
}

type memSafety struct {
	events []SafetyEvent
}

func (s *memSafety) Record(_ context.Context, e SafetyEvent) error {
	s.events = append(s.events, e)
	return nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
