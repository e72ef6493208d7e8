package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"financeflow/app/config"
)

var (
	// Command line flags
	envFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "financeflow",
	Short: "FinanceFlow API - generate finance SOPs with an LLM",
	Long: `FinanceFlow turns a short description of a finance task into a
Standard Operating Procedure (title and step-by-step content).`,
	SilenceUsage: true,
	// Without a subcommand the API server is started.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile,
		"Path to an optional .env file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override LOG_LEVEL (debug, info, warn, error)")
}

// loadConfig applies command line overrides on top of the loaded config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	}))
}
