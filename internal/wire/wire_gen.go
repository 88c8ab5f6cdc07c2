// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/review-relay/internal/app"
	"github.com/sevigo/review-relay/internal/config"
	"github.com/sevigo/review-relay/internal/core"
	"github.com/sevigo/review-relay/internal/llm"
	"github.com/sevigo/review-relay/internal/metrics"
	"github.com/sevigo/review-relay/internal/server"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerConfig := provideLoggerConfig(cfg)
	writer := provideLogWriter(cfg)
	slogLogger := provideSlogLogger(loggerConfig, writer)

	m := metrics.New()
	reviewService, err := buildReviewService(ctx, cfg, m, slogLogger)
	if err != nil {
		return nil, nil, err
	}

	srv := server.NewServer(cfg, reviewService, m, slogLogger)
	application := app.NewApp(cfg, srv, slogLogger)

	cleanup := func() {}
	return application, cleanup, nil
}

// InitializeReviewer wires a standalone reviewer for the CLI.
func InitializeReviewer(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (core.Reviewer, error) {
	return buildReviewService(ctx, cfg, m, logger)
}

func buildReviewService(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (*llm.ReviewService, error) {
	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt manager: %w", err)
	}

	httpClient := provideHTTPClient(cfg)
	generator := provideGenerator(ctx, cfg, httpClient, logger)
	policy := provideRetryPolicy(cfg)
	invoker := provideInvoker(generator, policy, m, logger)

	return llm.NewReviewService(provideModel(cfg), promptMgr, invoker, m, logger), nil
}
