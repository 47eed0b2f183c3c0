// Package profile owns the local learner. There is no real authentication:
// signing in just records who is studying on this machine.
package profile

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/masteryloop/internal/store"
)

// Defaults applied on sign-in.
const (
	DefaultName  = "User"
	DefaultRole  = "Student Plan"
	DefaultTrack = "academic"
)

var (
	// ErrNotSignedIn is returned by Update when nobody is signed in.
	ErrNotSignedIn = errors.New("not signed in")

	// ErrInvalidEmail is returned when an email is given but malformed.
	ErrInvalidEmail = errors.New("invalid email address")
)

// Learner is the local learner profile.
type Learner struct {
	Name    string
	Email   string
	Role    string
	Track   string
	Subject string // last studied subject ID

	UpdatedAt time.Time
}

// Label returns the secondary line shown under the learner's name.
func (l Learner) Label() string {
	if l.Email != "" {
		return l.Email
	}
	if l.Role != "" {
		return l.Role
	}
	return DefaultRole
}

// SessionStore is the process-wide owner of the signed-in learner. It is
// safe for concurrent use.
type SessionStore struct {
	repo store.ProfileRepo

	mu      sync.Mutex
	loaded  bool
	current *Learner
}

// NewSessionStore creates a SessionStore backed by repo.
func NewSessionStore(repo store.ProfileRepo) *SessionStore {
	return &SessionStore{repo: repo}
}

// Load returns the signed-in learner, or nil when signed out.
func (s *SessionStore) Load(ctx context.Context) (*Learner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	return s.copyCurrent(), nil
}

func (s *SessionStore) loadLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	data, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if data != nil && data.SignedIn {
		l := fromData(*data)
		s.current = &l
	}
	s.loaded = true
	return nil
}

// Last returns the stored learner even when signed out, so a sign-in form
// can be pre-filled. It returns nil when no profile was ever saved.
func (s *SessionStore) Last(ctx context.Context) (*Learner, error) {
	data, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	l := fromData(*data)
	return &l, nil
}

// SignIn records l as the signed-in learner. An empty name becomes
// DefaultName; the email is optional but must be well-formed when given.
func (s *SessionStore) SignIn(ctx context.Context, l Learner) (*Learner, error) {
	l, err := normalize(l)
	if err != nil {
		return nil, err
	}
	if l.Role == "" {
		l.Role = DefaultRole
	}
	if l.Track == "" {
		l.Track = DefaultTrack
	}
	l.UpdatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, toData(l, true)); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	s.current = &l
	s.loaded = true
	return s.copyCurrent(), nil
}

// Update merges the non-empty fields of patch into the signed-in learner.
func (s *SessionStore) Update(ctx context.Context, patch Learner) (*Learner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	if s.current == nil {
		return nil, ErrNotSignedIn
	}

	next := *s.current
	if name := strings.TrimSpace(patch.Name); name != "" {
		next.Name = name
	}
	if patch.Email != "" {
		next.Email = patch.Email
	}
	if patch.Role != "" {
		next.Role = patch.Role
	}
	if patch.Track != "" {
		next.Track = patch.Track
	}
	if patch.Subject != "" {
		next.Subject = patch.Subject
	}
	next, err := normalize(next)
	if err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, toData(next, true)); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	s.current = &next
	return s.copyCurrent(), nil
}

// SignOut marks the learner signed out. The profile is kept for the next
// sign-in; Forget removes it.
func (s *SessionStore) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if data != nil && data.SignedIn {
		data.SignedIn = false
		data.UpdatedAt = time.Now()
		if err := s.repo.Save(ctx, *data); err != nil {
			return fmt.Errorf("save profile: %w", err)
		}
	}
	s.current = nil
	s.loaded = true
	return nil
}

// Forget signs out and deletes the stored profile.
func (s *SessionStore) Forget(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	s.current = nil
	s.loaded = true
	return nil
}

func (s *SessionStore) copyCurrent() *Learner {
	if s.current == nil {
		return nil
	}
	l := *s.current
	return &l
}

func normalize(l Learner) (Learner, error) {
	l.Name = strings.TrimSpace(l.Name)
	if l.Name == "" {
		l.Name = DefaultName
	}
	l.Email = strings.TrimSpace(l.Email)
	if l.Email != "" {
		addr, err := mail.ParseAddress(l.Email)
		if err != nil || addr.Address != l.Email {
			return l, fmt.Errorf("%w: %q", ErrInvalidEmail, l.Email)
		}
	}
	return l, nil
}

func fromData(d store.LearnerData) Learner {
	return Learner{
		Name:      d.Name,
		Email:     d.Email,
		Role:      d.Role,
		Track:     d.Track,
		Subject:   d.Subject,
		UpdatedAt: d.UpdatedAt,
	}
}

func toData(l Learner, signedIn bool) store.LearnerData {
	return store.LearnerData{
		Name:      l.Name,
		Email:     l.Email,
		Role:      l.Role,
		Track:     l.Track,
		Subject:   l.Subject,
		SignedIn:  signedIn,
		UpdatedAt: l.UpdatedAt,
	}
}
