// Package curriculum holds the embedded course catalog: subjects made of
// modules made of concepts, plus the review checkpoints placed between them.
package curriculum

import (
	_ "embed"
	"fmt"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/masteryloop/internal/checkpoint"
)

//go:embed data/catalog.yaml
var catalogYAML []byte

// Catalog is a validated, indexed curriculum.
type Catalog struct {
	version   string
	subjects  []Subject
	byID      map[string]*Concept
	bySubject map[string][]*Concept
	position  map[string]int // index in the subject timeline
}

type catalogFile struct {
	Version  string    `yaml:"version"`
	Subjects []Subject `yaml:"subjects"`
}

var (
	loadOnce sync.Once
	loaded   *Catalog
	loadErr  error
)

// Load parses and validates the embedded catalog. The result is cached.
func Load() (*Catalog, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(catalogYAML)
	})
	return loaded, loadErr
}

// Parse decodes a YAML catalog and validates it.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode curriculum: %w", err)
	}
	if err := validateCatalog(f.Version, f.Subjects); err != nil {
		return nil, err
	}
	return buildCatalog(f.Version, f.Subjects), nil
}

func buildCatalog(version string, subjects []Subject) *Catalog {
	c := &Catalog{
		version:   version,
		subjects:  subjects,
		byID:      make(map[string]*Concept),
		bySubject: make(map[string][]*Concept, len(subjects)),
		position:  make(map[string]int),
	}
	for si := range c.subjects {
		s := &c.subjects[si]
		for mi := range s.Modules {
			m := &s.Modules[mi]
			for ci := range m.Concepts {
				concept := &m.Concepts[ci]
				concept.SubjectID = s.ID
				concept.ModuleID = m.ID
				c.position[concept.ID] = len(c.bySubject[s.ID])
				c.bySubject[s.ID] = append(c.bySubject[s.ID], concept)
				c.byID[concept.ID] = concept
			}
		}
	}
	return c
}

// Version returns the catalog's semantic version, e.g. "1.0.0".
func (c *Catalog) Version() string {
	return c.version
}

// Subjects returns all subjects in catalog order.
func (c *Catalog) Subjects() []Subject {
	return slices.Clone(c.subjects)
}

// Subject returns a subject by ID.
func (c *Catalog) Subject(id string) (Subject, error) {
	for _, s := range c.subjects {
		if s.ID == id {
			return s, nil
		}
	}
	return Subject{}, fmt.Errorf("subject not found: %q", id)
}

// Concept returns a concept by ID.
func (c *Catalog) Concept(id string) (Concept, error) {
	concept, ok := c.byID[id]
	if !ok {
		return Concept{}, fmt.Errorf("concept not found: %q", id)
	}
	return *concept, nil
}

// HasConcept reports whether id names a concept in the catalog.
func (c *Catalog) HasConcept(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Concepts returns a subject's concepts flattened into timeline order.
func (c *Catalog) Concepts(subjectID string) []Concept {
	list := c.bySubject[subjectID]
	out := make([]Concept, len(list))
	for i, concept := range list {
		out[i] = *concept
	}
	return out
}

// ConceptIDs returns a subject's concept IDs in timeline order.
func (c *Catalog) ConceptIDs(subjectID string) []string {
	list := c.bySubject[subjectID]
	out := make([]string, len(list))
	for i, concept := range list {
		out[i] = concept.ID
	}
	return out
}

// Next returns the concept after id in its subject timeline. ok is false
// for the last concept or an unknown ID.
func (c *Catalog) Next(id string) (next Concept, ok bool) {
	concept, found := c.byID[id]
	if !found {
		return Concept{}, false
	}
	list := c.bySubject[concept.SubjectID]
	i := c.position[id] + 1
	if i >= len(list) {
		return Concept{}, false
	}
	return *list[i], true
}

// PrerequisitesMet reports whether every prerequisite of id is mastered.
// Unknown concepts never have their prerequisites met.
func (c *Catalog) PrerequisitesMet(id string, mastered map[string]bool) bool {
	concept, ok := c.byID[id]
	if !ok {
		return false
	}
	for _, prereqID := range concept.Prerequisites {
		if !mastered[prereqID] {
			return false
		}
	}
	return true
}

// State returns the learner-relative state of a concept.
func (c *Catalog) State(id string, mastered map[string]bool) State {
	switch {
	case mastered[id]:
		return StateMastered
	case c.PrerequisitesMet(id, mastered):
		return StateAvailable
	default:
		return StateLocked
	}
}

// Checkpoints returns the review checkpoints of a subject timeline.
func (c *Catalog) Checkpoints(subjectID string) []checkpoint.Checkpoint {
	return checkpoint.PlanCheckpoints(c.ConceptIDs(subjectID), checkpoint.DefaultEvery)
}

// Checkpoint looks up a checkpoint of a subject by ID. Checkpoint IDs are
// only unique within one subject.
func (c *Catalog) Checkpoint(subjectID, id string) (checkpoint.Checkpoint, error) {
	for _, cp := range c.Checkpoints(subjectID) {
		if cp.ID == id {
			return cp, nil
		}
	}
	return checkpoint.Checkpoint{}, fmt.Errorf("checkpoint %q not found in subject %q", id, subjectID)
}
