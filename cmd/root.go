package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/aprende/internal/config"
	"github.com/abhisek/aprende/internal/logger"
	"github.com/abhisek/aprende/internal/store"
)

var (
	cfg    *config.Config
	appLog *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "aprende",
	Short: "Practice course questions in the terminal",
	Long: "aprende runs practice sessions over JSON course files, picking the next " +
		"question with a pluggable strategy and keeping progress in a local SQLite database.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		c, err := config.Load(configFile, cmd.Flags())
		if err != nil {
			return err
		}
		l, err := logger.Setup(c.LogLevel, c.LogFormat, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		cfg, appLog = c, l
		appLog.WithFields(logrus.Fields{
			"strategy": c.DefaultStrategy,
			"stride":   c.SpacedStride,
		}).Debug("config loaded")
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides APRENDE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(strategiesCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db / APRENDE_DB / config
// (highest priority), then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
