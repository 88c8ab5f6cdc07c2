//go:build wireinject
// +build wireinject

package wire

import (
	"context"
	"log/slog"

	"github.com/google/wire"

	"github.com/sevigo/review-relay/internal/app"
	"github.com/sevigo/review-relay/internal/config"
	"github.com/sevigo/review-relay/internal/core"
	"github.com/sevigo/review-relay/internal/metrics"
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(AppSet)
	return &app.App{}, nil, nil
}

func InitializeReviewer(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (core.Reviewer, error) {
	wire.Build(ReviewerSetWithoutMetrics)
	return nil, nil
}
