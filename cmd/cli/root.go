package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sevigo/review-relay/internal/config"
	"github.com/sevigo/review-relay/internal/logger"
)

var (
	modelOverride   string
	backendOverride string
	logLevel        string
)

var rootCmd = &cobra.Command{
	Use:           "review-relay",
	Short:         "review-relay sends code snippets to Gemini and returns a structured review.",
	Long:          `A CLI for the review relay: run one-off code reviews from the terminal or start the HTTP service.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.PersistentFlags().StringVarP(&modelOverride, "model", "m", "", "Gemini model (overrides GEMINI_MODEL)")
	rootCmd.PersistentFlags().StringVar(&backendOverride, "backend", "", "Model backend: sdk or rest (overrides LLM_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
}

// loadConfig reads the environment and applies command-line overrides.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if modelOverride != "" {
		cfg.AI.Model = modelOverride
	}
	if backendOverride != "" {
		cfg.AI.Backend = backendOverride
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, logger.NewLogger(cfg.Logging, nil), nil
}
