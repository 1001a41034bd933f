package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gilead/flashcards/internal/app"
	"github.com/gilead/flashcards/internal/config"
	"github.com/gilead/flashcards/internal/store"
	"github.com/gilead/flashcards/pkg/logger"
)

// cfg is loaded once per invocation by the root PersistentPreRunE.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:          "gilead",
	Short:        "Spaced-repetition flashcard reviewer",
	Long:         "Gilead schedules flashcard reviews with the SM-2 algorithm and keeps per-card progress across sessions.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides GILEAD_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file (overrides GILEAD_CONFIG env var)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig layers the config file and environment, then applies the
// --log-level flag on top.
func loadConfig(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	c, err := config.Load(path)
	if err != nil {
		return err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		c.LogLevel = lvl
	}
	if err := logger.SetLevelString(c.LogLevel); err != nil {
		return err
	}
	cfg = c
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then db_path from config, then GILEAD_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openApp opens the configured backend. Callers must Close the result.
func openApp(cmd *cobra.Command) (*app.App, error) {
	if cfg == nil {
		cfg = config.New()
	}
	opts := app.Options{Config: cfg, Log: logger.Get()}
	if cfg.Backend == config.BackendSQLite {
		p, err := resolveDBPath(cmd)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		opts.DBPath = p
	}
	return app.Open(cmd.Context(), opts)
}
