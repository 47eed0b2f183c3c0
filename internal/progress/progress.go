// Package progress tracks what the learner has mastered: the concepts
// covered by passed checkpoints and the checkpoint results themselves.
package progress

import (
	"errors"
	"maps"
	"slices"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/store"
)

// ErrIncomplete is returned when recording a checkpoint that was not passed.
var ErrIncomplete = errors.New("checkpoint not complete")

// Result is the record of a passed checkpoint.
type Result struct {
	// Rounds is the number of rounds the most recent pass took.
	Rounds int
	// Passes counts how many times the checkpoint was passed.
	Passes      int
	CompletedAt time.Time
}

// Progress is the learner's mastery state. It is not safe for concurrent
// use.
type Progress struct {
	CurriculumVersion string
	Mastered          map[string]time.Time
	Checkpoints       map[string]Result // keyed by CheckpointKey
}

// New creates empty progress for a curriculum version.
func New(curriculumVersion string) *Progress {
	return &Progress{
		CurriculumVersion: curriculumVersion,
		Mastered:          make(map[string]time.Time),
		Checkpoints:       make(map[string]Result),
	}
}

// CheckpointKey identifies a checkpoint across subjects; checkpoint IDs
// alone repeat between subjects.
func CheckpointKey(subjectID, checkpointID string) string {
	return subjectID + "/" + checkpointID
}

// RecordCheckpoint marks every concept covered by a completed checkpoint
// as mastered and stores the result.
func (p *Progress) RecordCheckpoint(subjectID string, v checkpoint.View, at time.Time) error {
	if !v.IsComplete {
		return ErrIncomplete
	}
	for _, id := range v.ConceptIDs() {
		if _, ok := p.Mastered[id]; !ok {
			p.Mastered[id] = at
		}
	}
	key := CheckpointKey(subjectID, v.CheckpointID)
	r := p.Checkpoints[key]
	r.Rounds = v.Round
	r.Passes++
	r.CompletedAt = at
	p.Checkpoints[key] = r
	return nil
}

// IsMastered reports whether a concept is mastered.
func (p *Progress) IsMastered(conceptID string) bool {
	_, ok := p.Mastered[conceptID]
	return ok
}

// MasteredSet returns the mastered concept IDs as a set.
func (p *Progress) MasteredSet() map[string]bool {
	set := make(map[string]bool, len(p.Mastered))
	for id := range p.Mastered {
		set[id] = true
	}
	return set
}

// MasteredIDs returns the mastered concept IDs, sorted.
func (p *Progress) MasteredIDs() []string {
	return slices.Sorted(maps.Keys(p.Mastered))
}

// Checkpoint returns the result of a passed checkpoint.
func (p *Progress) Checkpoint(subjectID, checkpointID string) (Result, bool) {
	r, ok := p.Checkpoints[CheckpointKey(subjectID, checkpointID)]
	return r, ok
}

// Catalog is the part of the curriculum that reconciliation needs.
type Catalog interface {
	Version() string
	HasConcept(id string) bool
	Checkpoint(subjectID, id string) (checkpoint.Checkpoint, error)
}

// Reconcile brings progress recorded against an older curriculum up to
// date. When the major version changed, concepts and checkpoints that no
// longer exist are dropped; their IDs are returned. Minor and patch
// releases keep everything.
func (p *Progress) Reconcile(c Catalog) []string {
	current := c.Version()
	stored := p.CurriculumVersion
	p.CurriculumVersion = current

	if stored == "" || semver.Major("v"+stored) == semver.Major("v"+current) {
		return nil
	}

	var dropped []string
	for id := range p.Mastered {
		if !c.HasConcept(id) {
			delete(p.Mastered, id)
			dropped = append(dropped, id)
		}
	}
	for key := range p.Checkpoints {
		subjectID, cpID, ok := strings.Cut(key, "/")
		if !ok {
			delete(p.Checkpoints, key)
			dropped = append(dropped, key)
			continue
		}
		if _, err := c.Checkpoint(subjectID, cpID); err != nil {
			delete(p.Checkpoints, key)
			dropped = append(dropped, key)
		}
	}
	slices.Sort(dropped)
	return dropped
}

// FromData rebuilds progress from its stored form. nil yields nil.
func FromData(d *store.ProgressData) *Progress {
	if d == nil {
		return nil
	}
	p := New(d.CurriculumVersion)
	for id, at := range d.Mastered {
		p.Mastered[id] = at
	}
	for key, r := range d.Checkpoints {
		p.Checkpoints[key] = Result{Rounds: r.Rounds, Passes: r.Passes, CompletedAt: r.CompletedAt}
	}
	return p
}

// Data converts progress into its stored form.
func (p *Progress) Data() *store.ProgressData {
	d := &store.ProgressData{
		CurriculumVersion: p.CurriculumVersion,
		Mastered:          maps.Clone(p.Mastered),
		Checkpoints:       make(map[string]store.CheckpointResultData, len(p.Checkpoints)),
	}
	for key, r := range p.Checkpoints {
		d.Checkpoints[key] = store.CheckpointResultData{Rounds: r.Rounds, Passes: r.Passes, CompletedAt: r.CompletedAt}
	}
	return d
}
