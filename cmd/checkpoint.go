package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/curriculum"
	"github.com/abhisek/masteryloop/internal/progress"
	"github.com/abhisek/masteryloop/internal/review"
)

var checkpointCmd = &cobra.Command{
	Use:   "checkpoint",
	Short: "Take a review checkpoint in the terminal",
	Long: `Answer a checkpoint's questions on stdin. Missed concepts come back in
adaptive review rounds until a round is answered without a miss.

Use --subject and --checkpoint for a checkpoint from the timeline, which
masters its concepts when passed, or --concepts for a practice run.`,
	RunE: runCheckpoint,
}

func init() {
	checkpointCmd.Flags().String("subject", "", "Subject ID")
	checkpointCmd.Flags().String("checkpoint", "", "Checkpoint ID (default: first not yet passed)")
	checkpointCmd.Flags().StringSlice("concepts", nil, "Comma-separated concept IDs for a practice checkpoint")
	checkpointCmd.MarkFlagsMutuallyExclusive("checkpoint", "concepts")
}

func runCheckpoint(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log, err := cliLogger(cmd, true)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	d, err := openDeps(ctx, cmd, log)
	if err != nil {
		return err
	}
	defer d.Close()

	subjectID, _ := cmd.Flags().GetString("subject")
	cpID, _ := cmd.Flags().GetString("checkpoint")
	conceptIDs, _ := cmd.Flags().GetStringSlice("concepts")

	reviews := d.reviews
	var cp checkpoint.Checkpoint
	if len(conceptIDs) > 0 {
		for _, id := range conceptIDs {
			if !d.catalog.HasConcept(id) {
				return fmt.Errorf("unknown concept %q", id)
			}
		}
		if subjectID == "" {
			first, _ := d.catalog.Concept(conceptIDs[0])
			subjectID = first.SubjectID
		}
		cp = checkpoint.Checkpoint{ID: "practice", Title: "Practice checkpoint", ConceptIDs: conceptIDs}
		// Practice runs are recorded as events but master nothing.
		reviews = review.NewService(d.source, progress.New(d.catalog.Version()),
			review.WithRecorder(d.store.EventRepo()),
			review.WithLogger(log),
		)
		fmt.Fprintln(cmd.OutOrStdout(), "(practice run: mastery is not saved)")
	} else {
		cp, err = pickCheckpoint(d.catalog, d.progress, subjectID, cpID)
		if err != nil {
			return err
		}
	}

	titles := make(map[string]string, len(cp.ConceptIDs))
	for _, id := range cp.ConceptIDs {
		if c, err := d.catalog.Concept(id); err == nil {
			titles[id] = c.Title
		}
	}
	return playCheckpoint(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), reviews, subjectID, cp, titles)
}

// pickCheckpoint resolves the checkpoint flags. Without an ID it picks the
// subject's first checkpoint not yet passed.
func pickCheckpoint(catalog *curriculum.Catalog, prog *progress.Progress, subjectID, cpID string) (checkpoint.Checkpoint, error) {
	if subjectID == "" {
		return checkpoint.Checkpoint{}, errors.New("--subject is required unless --concepts is given")
	}
	if _, err := catalog.Subject(subjectID); err != nil {
		return checkpoint.Checkpoint{}, err
	}
	if cpID != "" {
		return catalog.Checkpoint(subjectID, cpID)
	}
	cps := catalog.Checkpoints(subjectID)
	if len(cps) == 0 {
		return checkpoint.Checkpoint{}, fmt.Errorf("subject %q has no checkpoints", subjectID)
	}
	for _, cp := range cps {
		if _, passed := prog.Checkpoint(subjectID, cp.ID); !passed {
			return cp, nil
		}
	}
	return cps[0], nil
}

// playCheckpoint runs one attempt against in and out. Entering q abandons
// the attempt.
func playCheckpoint(ctx context.Context, in io.Reader, out io.Writer, reviews *review.Service, subjectID string, cp checkpoint.Checkpoint, titles map[string]string) error {
	fmt.Fprintf(out, "%s (%d concepts)\n", cp.Title, len(cp.ConceptIDs))
	fmt.Fprintf(out, "Preparing %d review questions...\n\n", len(cp.ConceptIDs))

	attempt, err := reviews.Begin(ctx, subjectID, cp)
	if err != nil {
		return err
	}

	title := func(id string) string {
		if t, ok := titles[id]; ok {
			return t
		}
		return id
	}

	scanner := bufio.NewScanner(in)
	for {
		q, ok := attempt.Current()
		if !ok {
			return nil
		}
		v := attempt.View()
		done, total := attempt.Progress()

		header := fmt.Sprintf("── Question %d/%d ──", done+1, total)
		if v.IsAdaptiveRound {
			header = fmt.Sprintf("── Adaptive Review · Round %d · Question %d/%d ──", v.Round, done+1, total)
		}
		fmt.Fprintln(out, header)
		fmt.Fprintf(out, "Concept: %s\n", title(q.ConceptID))
		fmt.Fprintln(out, q.Prompt)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
		}

		option, quit, err := readOption(scanner, out, len(q.Options))
		if err != nil || quit {
			attempt.Abandon(ctx)
			fmt.Fprintln(out, "\nCheckpoint left. Progress on it was not saved.")
			return err
		}

		res, err := attempt.Answer(ctx, option)
		if err != nil {
			return err
		}
		if res.Correct {
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Not quite.\033[0m Answer: %s\n", q.Options[q.CorrectIndex])
		}
		if q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
		fmt.Fprintln(out)

		switch {
		case res.Retry:
			missed := make([]string, len(res.MissedConceptIDs))
			for i, id := range res.MissedConceptIDs {
				missed[i] = title(id)
			}
			fmt.Fprintf(out, "Round %d finished with %d missed. Adaptive review: %s\n\n",
				res.Round, len(missed), strings.Join(missed, ", "))
		case res.Completed:
			fmt.Fprintf(out, "── Checkpoint passed in %d round(s) ──\n", res.Round)
			return nil
		}
	}
}

// readOption prompts until a valid 1-based option or letter is entered.
func readOption(scanner *bufio.Scanner, out io.Writer, n int) (option int, quit bool, err error) {
	for {
		fmt.Fprint(out, "\nYour answer (q to leave): ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, true, fmt.Errorf("read answer: %w", err)
			}
			return 0, true, nil
		}
		if i, ok := parseOption(scanner.Text(), n); ok {
			return i, false, nil
		}
		if strings.EqualFold(strings.TrimSpace(scanner.Text()), "q") {
			return 0, true, nil
		}
		fmt.Fprintf(out, "Enter 1-%d or a-%c.", n, 'a'+rune(n-1))
	}
}

// parseOption accepts "2" or "b" style answers and returns a 0-based index.
func parseOption(s string, n int) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 1 {
		return 0, false
	}
	var i int
	switch c := s[0]; {
	case c >= '1' && c <= '9':
		i = int(c - '1')
	case c >= 'a' && c <= 'z':
		i = int(c - 'a')
	default:
		return 0, false
	}
	if i >= n {
		return 0, false
	}
	return i, true
}
