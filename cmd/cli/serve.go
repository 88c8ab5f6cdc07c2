package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sevigo/review-relay/internal/app"
	"github.com/sevigo/review-relay/internal/metrics"
	"github.com/sevigo/review-relay/internal/server"
	"github.com/sevigo/review-relay/internal/wire"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP review service",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	m := metrics.New()
	reviewer, err := wire.InitializeReviewer(ctx, cfg, m, log)
	if err != nil {
		return fmt.Errorf("failed to initialize reviewer: %w", err)
	}
	application := app.NewApp(cfg, server.NewServer(cfg, reviewer, m, log), log)

	errCh := make(chan error, 1)
	go func() { errCh <- application.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	return application.Stop()
}
