package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/masteryloop/internal/app"
	"github.com/abhisek/masteryloop/internal/logging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive learning app",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	runCmd.Flags().Bool("skip-welcome", false, "Start on the home screen")
}

// runApp opens the store, builds dependencies, and launches the TUI. Logs
// go to a rotating file while the TUI owns the terminal.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	log, closeLog, err := logging.NewFile(appConfig.Log)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	d, err := openDeps(ctx, cmd, log)
	if err != nil {
		return err
	}
	defer d.Close()

	skip, _ := cmd.Flags().GetBool("skip-welcome")
	return app.Run(ctx, app.Options{
		Deps:        d.home(),
		Log:         log,
		SkipWelcome: skip,
	})
}
