package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sevigo/review-relay/internal/core"
)

// ReviewRecorder is notified once per finished review.
type ReviewRecorder interface {
	ObserveReview(result string, elapsed time.Duration)
}

// ReviewService composes the review prompt, invokes the model through the
// resilient invoker and normalizes the response. It implements core.Reviewer.
type ReviewService struct {
	model    string
	provider ModelProvider
	prompts  *PromptManager
	invoker  *Invoker
	recorder ReviewRecorder
	logger   *slog.Logger
}

var _ core.Reviewer = (*ReviewService)(nil)

// NewReviewService creates a review orchestrator for the given model.
// recorder may be nil.
func NewReviewService(model string, prompts *PromptManager, invoker *Invoker, recorder ReviewRecorder, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		model:    model,
		provider: GeminiProvider,
		prompts:  prompts,
		invoker:  invoker,
		recorder: recorder,
		logger:   logger,
	}
}

// Model returns the configured model identifier.
func (s *ReviewService) Model() string {
	return s.model
}

// Review runs a single code review. Empty code fails with a 400 ServiceError
// before the model is contacted; remote failures come back unchanged from the
// invoker.
func (s *ReviewService) Review(ctx context.Context, req core.ReviewRequest) (core.ReviewResult, error) {
	start := time.Now()
	result, err := s.review(ctx, req)
	s.record(err, time.Since(start))
	return result, err
}

func (s *ReviewService) review(ctx context.Context, req core.ReviewRequest) (core.ReviewResult, error) {
	if err := req.Validate(); err != nil {
		return core.ReviewResult{}, core.NewInputError(err)
	}
	req = req.Normalized()

	reviewID := uuid.NewString()
	logger := s.logger.With("review_id", reviewID, "language", req.Language, "model", s.model)

	prompt, err := s.prompts.Render(CodeReviewPrompt, s.provider, core.PromptData{
		Language: req.Language,
		Code:     req.Code,
	})
	if err != nil {
		return core.ReviewResult{}, &core.ServiceError{
			StatusCode: http.StatusInternalServerError,
			Message:    "failed to build review prompt",
			Kind:       core.KindFatal,
			Err:        fmt.Errorf("render prompt: %w", err),
		}
	}

	logger.Info("requesting code review", "code_bytes", len(req.Code))
	raw, err := s.invoker.Invoke(ctx, InvocationParams{Model: s.model, Prompt: prompt})
	if err != nil {
		logger.Error("code review failed", "error", err)
		return core.ReviewResult{}, err
	}

	text := ExtractText(raw)
	logger.Info("code review completed", "review_bytes", len(text))
	return core.ReviewResult{Text: text}, nil
}

func (s *ReviewService) record(err error, elapsed time.Duration) {
	if s.recorder == nil {
		return
	}
	result := "success"
	if err != nil {
		result = string(core.AsServiceError(err).Kind)
	}
	s.recorder.ObserveReview(result, elapsed)
}
