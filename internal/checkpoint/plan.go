package checkpoint

import "fmt"

// DefaultEvery is the number of concepts covered by one review checkpoint.
const DefaultEvery = 3

// Checkpoint is a review point placed in a learning timeline.
type Checkpoint struct {
	ID         string
	Title      string
	ConceptIDs []string
}

// PlanCheckpoints places a checkpoint after every `every` concepts. The
// checkpoint ID is derived from the position of the last covered concept
// in the timeline. A trailing group shorter than every gets no checkpoint.
func PlanCheckpoints(concepts []string, every int) []Checkpoint {
	if every <= 0 {
		every = DefaultEvery
	}
	var out []Checkpoint
	for end := every; end <= len(concepts); end += every {
		ids := make([]string, every)
		copy(ids, concepts[end-every:end])
		out = append(out, Checkpoint{
			ID:         fmt.Sprintf("quiz-checkpoint-%d", end-1),
			Title:      fmt.Sprintf("Review Checkpoint %d", len(out)+1),
			ConceptIDs: ids,
		})
	}
	return out
}
