package checkpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCheckpoints(t *testing.T) {
	concepts := []string{"a", "b", "c", "d", "e", "f", "g"}
	cps := PlanCheckpoints(concepts, 3)

	require.Len(t, cps, 2)
	assert.Equal(t, "quiz-checkpoint-2", cps[0].ID)
	assert.Equal(t, []string{"a", "b", "c"}, cps[0].ConceptIDs)
	assert.Equal(t, "quiz-checkpoint-5", cps[1].ID)
	assert.Equal(t, []string{"d", "e", "f"}, cps[1].ConceptIDs)
	assert.Equal(t, "Review Checkpoint 2", cps[1].Title)
}

func TestPlanCheckpoints_Edges(t *testing.T) {
	assert.Empty(t, PlanCheckpoints(nil, 3))
	assert.Empty(t, PlanCheckpoints([]string{"a", "b"}, 3))
	assert.Len(t, PlanCheckpoints([]string{"a", "b", "c"}, 0), 1)
	assert.Len(t, PlanCheckpoints([]string{"a", "b"}, 1), 2)
}

func TestPlanCheckpoints_DoesNotAliasInput(t *testing.T) {
	concepts := []string{"a", "b", "c"}
	cps := PlanCheckpoints(concepts, 3)
	concepts[0] = "z"
	assert.Equal(t, "a", cps[0].ConceptIDs[0])
}
