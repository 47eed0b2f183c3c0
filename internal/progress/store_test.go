package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masteryloop/internal/store"
)

type memSnapshots struct {
	saved  []store.Snapshot
	pruned int
	err    error
}

func (m *memSnapshots) Save(_ context.Context, s *store.Snapshot) error {
	if m.err != nil {
		return m.err
	}
	s.ID = len(m.saved) + 1
	m.saved = append(m.saved, *s)
	return nil
}

func (m *memSnapshots) Latest(context.Context) (*store.Snapshot, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.saved) == 0 {
		return nil, nil
	}
	s := m.saved[len(m.saved)-1]
	return &s, nil
}

func (m *memSnapshots) Prune(_ context.Context, keep int) error {
	m.pruned = keep
	return nil
}

type fixedSeq int64

func (f fixedSeq) LatestSequence(context.Context) (int64, error) { return int64(f), nil }

func TestStore_LoadEmpty(t *testing.T) {
	s := NewStore(&memSnapshots{}, nil)
	p, err := s.Load(context.Background(), fakeCatalog{version: "1.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", p.CurriculumVersion)
	assert.Empty(t, p.Mastered)
}

func TestStore_SaveThenLoad(t *testing.T) {
	snaps := &memSnapshots{}
	s := NewStore(snaps, fixedSeq(42))
	ctx := context.Background()

	p := New("1.0.0")
	p.Mastered["a"] = time.Now().UTC()
	require.NoError(t, s.Save(ctx, p))

	require.Len(t, snaps.saved, 1)
	assert.Equal(t, int64(42), snaps.saved[0].Sequence)
	assert.Equal(t, SnapshotVersion, snaps.saved[0].Data.Version)
	assert.Equal(t, KeepSnapshots, snaps.pruned)

	loaded, err := s.Load(ctx, fakeCatalog{version: "1.1.0", concepts: map[string]bool{}})
	require.NoError(t, err)
	assert.True(t, loaded.IsMastered("a"), "minor bump keeps unknown concepts")
	assert.Equal(t, "1.1.0", loaded.CurriculumVersion)
}

func TestStore_Errors(t *testing.T) {
	boom := errors.New("boom")
	s := NewStore(&memSnapshots{err: boom}, nil)

	_, err := s.Load(context.Background(), fakeCatalog{version: "1.0.0"})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Save(context.Background(), New("1.0.0")), boom)
}

func TestStore_WithSQLite(t *testing.T) {
	st, err := store.Open("file:progress_sqlite?mode=memory&cache=shared")
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	s := NewStore(st.SnapshotRepo(), st.EventRepo())

	p := New("1.0.0")
	at := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	p.Mastered["concept-1-1"] = at
	p.Checkpoints["operating-systems/quiz-checkpoint-2"] = Result{Rounds: 2, Passes: 1, CompletedAt: at}
	require.NoError(t, s.Save(ctx, p))

	loaded, err := s.Load(ctx, fakeCatalog{version: "1.0.0"})
	require.NoError(t, err)
	assert.True(t, loaded.Mastered["concept-1-1"].Equal(at))
	r, ok := loaded.Checkpoint("operating-systems", "quiz-checkpoint-2")
	require.True(t, ok)
	assert.Equal(t, 2, r.Rounds)
}
