package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masteryloop/internal/store"
)

type memRepo struct {
	data    *store.LearnerData
	saves   int
	loadErr error
}

func (m *memRepo) Load(context.Context) (*store.LearnerData, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.data == nil {
		return nil, nil
	}
	d := *m.data
	return &d, nil
}

func (m *memRepo) Save(_ context.Context, d store.LearnerData) error {
	m.saves++
	m.data = &d
	return nil
}

func (m *memRepo) Delete(context.Context) error {
	m.data = nil
	return nil
}

func TestSessionStore_SignedOutByDefault(t *testing.T) {
	s := NewSessionStore(&memRepo{})
	l, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, l)
}

func TestSessionStore_SignInDefaults(t *testing.T) {
	repo := &memRepo{}
	s := NewSessionStore(repo)

	l, err := s.SignIn(context.Background(), Learner{Name: "   "})
	require.NoError(t, err)
	assert.Equal(t, DefaultName, l.Name)
	assert.Equal(t, DefaultRole, l.Role)
	assert.Equal(t, DefaultTrack, l.Track)
	assert.Equal(t, DefaultRole, l.Label())
	assert.False(t, l.UpdatedAt.IsZero())

	require.NotNil(t, repo.data)
	assert.True(t, repo.data.SignedIn)

	// A fresh store over the same repo sees the learner.
	again, err := NewSessionStore(repo).Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, DefaultName, again.Name)
}

func TestSessionStore_Email(t *testing.T) {
	s := NewSessionStore(&memRepo{})

	l, err := s.SignIn(context.Background(), Learner{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", l.Label())

	for _, bad := range []string{"ada", "Ada <ada@example.com>", "ada@"} {
		_, err := s.SignIn(context.Background(), Learner{Name: "Ada", Email: bad})
		assert.ErrorIs(t, err, ErrInvalidEmail, bad)
	}
}

func TestSessionStore_Update(t *testing.T) {
	repo := &memRepo{}
	s := NewSessionStore(repo)
	ctx := context.Background()

	_, err := s.Update(ctx, Learner{Name: "X"})
	assert.ErrorIs(t, err, ErrNotSignedIn)

	_, err = s.SignIn(ctx, Learner{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	l, err := s.Update(ctx, Learner{Role: "Night Owl", Subject: "cpu-scheduling"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", l.Name)
	assert.Equal(t, "ada@example.com", l.Email)
	assert.Equal(t, "Night Owl", l.Role)
	assert.Equal(t, "cpu-scheduling", repo.data.Subject)

	_, err = s.Update(ctx, Learner{Email: "nope"})
	assert.ErrorIs(t, err, ErrInvalidEmail)
	assert.Equal(t, "ada@example.com", repo.data.Email, "rejected update must not be saved")
}

func TestSessionStore_SignOutKeepsProfile(t *testing.T) {
	repo := &memRepo{}
	s := NewSessionStore(repo)
	ctx := context.Background()

	_, err := s.SignIn(ctx, Learner{Name: "Ada"})
	require.NoError(t, err)
	require.NoError(t, s.SignOut(ctx))

	l, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, l)

	last, err := s.Last(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "Ada", last.Name)
	assert.False(t, repo.data.SignedIn)

	require.NoError(t, s.Forget(ctx))
	last, err = s.Last(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestSessionStore_ReturnsCopies(t *testing.T) {
	s := NewSessionStore(&memRepo{})
	l, err := s.SignIn(context.Background(), Learner{Name: "Ada"})
	require.NoError(t, err)
	l.Name = "Mallory"

	again, _ := s.Load(context.Background())
	assert.Equal(t, "Ada", again.Name)
}

func TestSessionStore_LoadError(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := NewSessionStore(&memRepo{loadErr: boom}).Load(context.Background())
	assert.ErrorIs(t, err, boom)
}
