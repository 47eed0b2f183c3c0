package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/masteryloop/internal/config"
	"github.com/abhisek/masteryloop/internal/logging"
	"github.com/abhisek/masteryloop/internal/store"
)

// appConfig is loaded once per invocation by the root command's pre-run.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "masteryloop",
	Short: "Adaptive checkpoint learning in the terminal",
	Long: "MasteryLoop teaches a subject one concept card at a time and checks " +
		"understanding with review checkpoints that loop over missed concepts " +
		"until every answer is right.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		envFile, _ := cmd.Flags().GetString("env-file")
		cfg, err := config.Load(config.Options{ConfigFile: configFile, EnvFile: envFile})
		if err != nil {
			return err
		}
		if level, _ := cmd.Flags().GetString("log-level"); level != "" {
			cfg.Log.Level = level
			if err := cfg.Log.Validate(); err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
		}
		appConfig = cfg
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MASTERYLOOP_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config.yaml")
	rootCmd.PersistentFlags().String("env-file", "", "Path to a .env file (default .env)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkpointCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(curriculumCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MASTERYLOOP_DB or the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if appConfig != nil && appConfig.DBPath != "" {
		return appConfig.DBPath, store.EnsureDir(appConfig.DBPath)
	}
	return store.DefaultDBPath()
}

// cliLogger logs to stderr for commands that print to stdout. Interactive
// commands pass quiet to keep info lines out of the prompt unless
// --log-level asks for them.
func cliLogger(cmd *cobra.Command, quiet bool) (*zap.Logger, error) {
	cfg := logging.DefaultConfig()
	if appConfig != nil {
		cfg = appConfig.Log
	}
	if quiet && !cmd.Flags().Changed("log-level") {
		cfg.Level = "warn"
	}
	return logging.New(cfg)
}

// openStore opens the database resolved for cmd.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
