package wire

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/wire"

	"github.com/sevigo/review-relay/internal/app"
	"github.com/sevigo/review-relay/internal/config"
	"github.com/sevigo/review-relay/internal/core"
	"github.com/sevigo/review-relay/internal/llm"
	"github.com/sevigo/review-relay/internal/logger"
	"github.com/sevigo/review-relay/internal/metrics"
	"github.com/sevigo/review-relay/internal/server"
)

// ReviewerSetWithoutMetrics builds a reviewer around caller-supplied metrics.
var ReviewerSetWithoutMetrics = wire.NewSet(
	llm.NewPromptManager,
	llm.NewReviewService,
	provideHTTPClient,
	provideGenerator,
	provideRetryPolicy,
	provideInvoker,
	provideModel,
	wire.Bind(new(llm.ReviewRecorder), new(*metrics.Metrics)),
	wire.Bind(new(core.Reviewer), new(*llm.ReviewService)),
)

// ReviewerSet builds everything needed to run a review.
var ReviewerSet = wire.NewSet(
	metrics.New,
	ReviewerSetWithoutMetrics,
)

// AppSet adds the HTTP surface and logging on top of ReviewerSet.
var AppSet = wire.NewSet(
	ReviewerSet,
	app.NewApp,
	server.NewServer,
	config.LoadConfig,
	provideLoggerConfig,
	provideLogWriter,
	provideSlogLogger,
)

func provideHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxConnsPerHost:     10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		Timeout: cfg.Server.RequestTimeout,
	}
}

func provideGenerator(ctx context.Context, cfg *config.Config, client *http.Client, logger *slog.Logger) llm.Generator {
	switch cfg.AI.Backend {
	case config.BackendREST:
		logger.Info("using Gemini REST backend", "model", cfg.AI.Model)
		return llm.NewRESTGenerator(cfg.AI.GeminiAPIKey, cfg.AI.BaseURL, client)
	default:
		logger.Info("using Gemini SDK backend", "model", cfg.AI.Model)
		return llm.NewGeminiGenerator(ctx, cfg.AI.GeminiAPIKey, client)
	}
}

func provideRetryPolicy(cfg *config.Config) llm.RetryPolicy {
	return llm.RetryPolicy{
		MaxAttempts: cfg.Retry.MaxAttempts,
		BaseDelay:   cfg.Retry.BaseDelay,
		MaxDelay:    cfg.Retry.MaxDelay,
	}
}

func provideInvoker(gen llm.Generator, policy llm.RetryPolicy, m *metrics.Metrics, logger *slog.Logger) *llm.Invoker {
	return llm.NewInvoker(gen, policy, logger, llm.WithObserver(m))
}

func provideModel(cfg *config.Config) string {
	return cfg.AI.Model
}

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter(cfg *config.Config) io.Writer {
	return cfg.Logging.Writer()
}

func provideSlogLogger(loggerConfig logger.Config, writer io.Writer) *slog.Logger {
	return logger.NewLogger(loggerConfig, writer)
}
