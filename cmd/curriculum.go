package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/masteryloop/internal/curriculum"
	"github.com/abhisek/masteryloop/internal/progress"
)

var curriculumCmd = &cobra.Command{
	Use:     "curriculum [subject-id]",
	Aliases: []string{"subjects"},
	Short:   "List subjects, concepts and checkpoints with your progress",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := curriculum.Load()
		if err != nil {
			return fmt.Errorf("load curriculum: %w", err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		prog, err := progress.NewStore(s.SnapshotRepo(), s.EventRepo()).Load(cmd.Context(), catalog)
		if err != nil {
			return err
		}

		subjects := catalog.Subjects()
		if len(args) == 1 {
			subj, err := catalog.Subject(args[0])
			if err != nil {
				return err
			}
			subjects = []curriculum.Subject{subj}
		}
		for i, subj := range subjects {
			if i > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
			}
			printSubject(cmd.OutOrStdout(), catalog, prog, subj)
		}
		return nil
	},
}

// printSubject lists a subject's concepts by module, with each checkpoint
// after the last concept it covers.
func printSubject(w io.Writer, catalog *curriculum.Catalog, prog *progress.Progress, subj curriculum.Subject) {
	mastered := prog.MasteredSet()
	ids := catalog.ConceptIDs(subj.ID)
	done := 0
	for _, id := range ids {
		if mastered[id] {
			done++
		}
	}

	fmt.Fprintf(w, "%s (%s)  %d/%d mastered\n", subj.Title, subj.ID, done, len(ids))
	fmt.Fprintln(w, strings.Repeat("═", 60))

	after := make(map[string][]string)
	for _, cp := range catalog.Checkpoints(subj.ID) {
		last := cp.ConceptIDs[len(cp.ConceptIDs)-1]
		status := "not passed"
		if res, ok := prog.Checkpoint(subj.ID, cp.ID); ok {
			status = fmt.Sprintf("passed in %d round(s)", res.Rounds)
		}
		after[last] = append(after[last],
			fmt.Sprintf("  📝 %-22s %-24s %s", cp.Title, cp.ID, status))
	}

	for _, mod := range subj.Modules {
		fmt.Fprintf(w, "\n%s\n", strings.ToUpper(mod.Title))
		for _, c := range mod.Concepts {
			state := catalog.State(c.ID, mastered)
			fmt.Fprintf(w, "  %s %-28s %-22s %-7s %s\n",
				state.Icon(), truncate(c.Title, 28), c.ID, c.Difficulty, state.Label())
			for _, line := range after[c.ID] {
				fmt.Fprintln(w, line)
			}
		}
	}
}
