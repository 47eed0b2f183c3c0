package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/masteryloop/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent checkpoint attempts and per-concept accuracy",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events := s.EventRepo()
		attempts, err := events.CheckpointHistory(cmd.Context(), limit)
		if err != nil {
			return err
		}
		acc, err := events.ConceptAccuracy(cmd.Context())
		if err != nil {
			return err
		}
		printHistory(cmd.OutOrStdout(), attempts, acc)
		return nil
	},
}

func printHistory(w io.Writer, attempts []store.CheckpointAttempt, acc []store.ConceptAccuracy) {
	if len(attempts) == 0 {
		fmt.Fprintln(w, "No checkpoint attempts yet.")
		return
	}

	fmt.Fprintf(w, "%-16s  %-16s  %-22s  %6s  %9s  %s\n",
		"Started", "Subject", "Checkpoint", "Rounds", "Correct", "Status")
	fmt.Fprintln(w, strings.Repeat("─", 92))
	for _, a := range attempts {
		fmt.Fprintf(w, "%-16s  %-16s  %-22s  %6d  %4d/%-4d  %s\n",
			a.StartedAt.Local().Format("2006-01-02 15:04"),
			truncate(a.SubjectID, 16),
			truncate(a.CheckpointID, 22),
			a.Rounds,
			a.Correct, a.Answers,
			a.Status,
		)
	}

	if len(acc) == 0 {
		return
	}
	sort.Slice(acc, func(i, j int) bool {
		if acc[i].Rate() != acc[j].Rate() {
			return acc[i].Rate() < acc[j].Rate()
		}
		return acc[i].ConceptID < acc[j].ConceptID
	})
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Concept accuracy (weakest first)")
	fmt.Fprintln(w, strings.Repeat("─", 48))
	for _, c := range acc {
		fmt.Fprintf(w, "%-28s  %3d/%-3d  %5.0f%%\n", truncate(c.ConceptID, 28), c.Correct, c.Answers, c.Rate()*100)
	}
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
}
