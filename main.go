package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bijbelquiz.app/backend/internal/config"
	"bijbelquiz.app/backend/internal/logger"
)

var (
	configFile string
	debugMode  bool
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if _, fprintfErr := fmt.Fprintf(os.Stderr, "failed to execute a command: %+v\n", err); fprintfErr != nil {
			panic(fmt.Errorf("failed to output an error: %w. Reason: %w", err, fprintfErr))
		}
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "bijbelquiz",
		Short:         "BijbelQuiz backend and question tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", os.Getenv("BIJBELQUIZ_CONFIG"), "config file path")
	root.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	root.AddCommand(
		newServeCommand(),
		newAuthorCommand(),
		newQuestionsCommand(),
	)
	return root
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if debugMode {
		cfg.Server.Mode = "debug"
	}
	return cfg, nil
}

// setupLogger writes to the rotated log file and, unless a full screen UI
// owns the terminal, to stdout.
func setupLogger(cfg *config.Config, console bool) {
	logger.Init(logger.Options{
		Debug:      cfg.Debug(),
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Console:    console,
	})
}
