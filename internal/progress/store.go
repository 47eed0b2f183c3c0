package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/masteryloop/internal/store"
)

// Snapshot layout written by this package.
const (
	SnapshotVersion = 1
	KeepSnapshots   = 20
)

// SequenceSource reports the latest event sequence, stamped on snapshots.
type SequenceSource interface {
	LatestSequence(ctx context.Context) (int64, error)
}

// Store loads and saves progress as snapshots.
type Store struct {
	snaps store.SnapshotRepo
	seq   SequenceSource
}

// NewStore creates a progress store. seq may be nil.
func NewStore(snaps store.SnapshotRepo, seq SequenceSource) *Store {
	return &Store{snaps: snaps, seq: seq}
}

// Load returns the latest saved progress reconciled against c, or empty
// progress when nothing was saved yet.
func (s *Store) Load(ctx context.Context, c Catalog) (*Progress, error) {
	snap, err := s.snaps.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	var p *Progress
	if snap != nil {
		p = FromData(snap.Data.Progress)
	}
	if p == nil {
		return New(c.Version()), nil
	}
	p.Reconcile(c)
	return p, nil
}

// Save writes p as a new snapshot and prunes old ones.
func (s *Store) Save(ctx context.Context, p *Progress) error {
	var seq int64
	if s.seq != nil {
		var err error
		if seq, err = s.seq.LatestSequence(ctx); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}
	}

	snap := &store.Snapshot{
		Sequence:  seq,
		Timestamp: time.Now(),
		Data: store.SnapshotData{
			Version:  SnapshotVersion,
			Progress: p.Data(),
		},
	}
	if err := s.snaps.Save(ctx, snap); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	if err := s.snaps.Prune(ctx, KeepSnapshots); err != nil {
		return fmt.Errorf("prune progress snapshots: %w", err)
	}
	return nil
}
