package curriculum

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// validateCatalog performs all structural checks on a decoded catalog.
// Returns a combined error describing all problems found, or nil if valid.
func validateCatalog(version string, subjects []Subject) error {
	var errs []string

	if !semver.IsValid("v" + version) {
		errs = append(errs, fmt.Sprintf("invalid catalog version %q (want MAJOR.MINOR.PATCH)", version))
	}
	if len(subjects) == 0 {
		errs = append(errs, "catalog has no subjects")
	}

	var concepts []Concept
	subjectIDs := make(map[string]bool, len(subjects))
	for _, s := range subjects {
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("subject %q has no ID", s.Title))
		}
		if subjectIDs[s.ID] {
			errs = append(errs, fmt.Sprintf("duplicate subject ID: %q", s.ID))
		}
		subjectIDs[s.ID] = true
		for _, m := range s.Modules {
			concepts = append(concepts, m.Concepts...)
		}
	}

	idSet := make(map[string]bool, len(concepts))

	// Check for duplicate IDs
	for _, c := range concepts {
		if c.ID == "" {
			errs = append(errs, fmt.Sprintf("concept %q has no ID", c.Title))
			continue
		}
		if idSet[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate concept ID: %q", c.ID))
		}
		idSet[c.ID] = true
	}

	// Check for dangling prerequisites
	for _, c := range concepts {
		for _, prereqID := range c.Prerequisites {
			if !idSet[prereqID] {
				errs = append(errs, fmt.Sprintf("concept %q references nonexistent prerequisite %q", c.ID, prereqID))
			}
		}
	}

	if cycle := cycleNodes(concepts); len(cycle) > 0 {
		errs = append(errs, fmt.Sprintf("cycle detected involving concepts: %s", strings.Join(cycle, ", ")))
	}

	// Check per-concept fields
	for _, c := range concepts {
		if c.Title == "" {
			errs = append(errs, fmt.Sprintf("concept %q has no title", c.ID))
		}
		if !c.Difficulty.Valid() {
			errs = append(errs, fmt.Sprintf("concept %q: difficulty must be Easy, Medium or Hard, got %q", c.ID, c.Difficulty))
		}
		if c.EstimatedMins < 0 {
			errs = append(errs, fmt.Sprintf("concept %q: estimated_mins must be >= 0, got %d", c.ID, c.EstimatedMins))
		}
		for i, q := range c.Quiz {
			prefix := fmt.Sprintf("concept %q quiz %d", c.ID, i)
			if q.Question == "" {
				errs = append(errs, prefix+": empty question")
			}
			if len(q.Options) < 2 {
				errs = append(errs, fmt.Sprintf("%s: need at least 2 options, got %d", prefix, len(q.Options)))
			}
			if q.Answer < 0 || q.Answer >= len(q.Options) {
				errs = append(errs, fmt.Sprintf("%s: answer %d out of range [0, %d)", prefix, q.Answer, len(q.Options)))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("curriculum validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// cycleNodes runs Kahn's algorithm over the prerequisite graph and returns
// the concepts left unvisited, which are exactly those on or behind a cycle.
// Prerequisites that don't exist are ignored here; they are reported
// separately.
func cycleNodes(concepts []Concept) []string {
	known := make(map[string]bool, len(concepts))
	for _, c := range concepts {
		known[c.ID] = true
	}

	inDegree := make(map[string]int, len(concepts))
	adjList := make(map[string][]string)
	for _, c := range concepts {
		for _, prereqID := range c.Prerequisites {
			if !known[prereqID] {
				continue
			}
			inDegree[c.ID]++
			adjList[prereqID] = append(adjList[prereqID], c.ID)
		}
	}

	var queue []string
	for _, c := range concepts {
		if inDegree[c.ID] == 0 {
			queue = append(queue, c.ID)
		}
	}

	visited := make(map[string]bool, len(concepts))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited[id] = true
		for _, depID := range adjList[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	var cycle []string
	for _, c := range concepts {
		if !visited[c.ID] {
			cycle = append(cycle, c.ID)
		}
	}
	return cycle
}
