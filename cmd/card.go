package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/masteryloop/internal/cards"
)

var cardCmd = &cobra.Command{
	Use:   "card <concept-id>",
	Short: "Print the learning card for a concept",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := cliLogger(cmd, true)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		d, err := openDeps(cmd.Context(), cmd, log)
		if err != nil {
			return err
		}
		defer d.Close()

		concept, err := d.catalog.Concept(args[0])
		if err != nil {
			return err
		}
		printCard(cmd.OutOrStdout(), d.cards.Generate(cmd.Context(), concept))
		return nil
	},
}

func printCard(w io.Writer, c *cards.Card) {
	source := string(c.Origin)
	if c.Origin == cards.OriginAI && c.Provider != "" {
		source = "ai · " + c.Provider
	}
	fmt.Fprintf(w, "%s  [%s]\n", c.Title, source)
	fmt.Fprintf(w, "Difficulty: %s\n", c.Difficulty)

	section := func(title string) {
		fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("─", len(title)))
	}

	section("DEFINITION")
	fmt.Fprintln(w, c.Definition)

	if c.VisualPrompt != "" {
		section("PICTURE IT")
		fmt.Fprintln(w, c.VisualPrompt)
	}
	if len(c.Examples) > 0 {
		section("EXAMPLES")
		for _, ex := range c.Examples {
			fmt.Fprintf(w, "• %s: %s\n", ex.Title, ex.Explanation)
		}
	}
	if len(c.SubConcepts) > 0 {
		section("KEY TERMS")
		for _, sc := range c.SubConcepts {
			fmt.Fprintf(w, "• %s: %s\n", sc.Title, sc.Definition)
		}
	}
	if len(c.Quiz) > 0 {
		fmt.Fprintf(w, "\n%d practice question(s) available in the next checkpoint.\n", len(c.Quiz))
	}
}
