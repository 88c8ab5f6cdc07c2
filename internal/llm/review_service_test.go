package llm_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/genai"

	"github.com/sevigo/review-relay/internal/core"
	"github.com/sevigo/review-relay/internal/llm"
	"github.com/sevigo/review-relay/mocks"
)

type recordingRecorder struct {
	results []string
}

func (r *recordingRecorder) ObserveReview(result string, _ time.Duration) {
	r.results = append(r.results, result)
}

func newReviewService(t *testing.T, gen llm.Generator, recorder llm.ReviewRecorder) *llm.ReviewService {
	t.Helper()
	prompts, err := llm.NewPromptManager()
	require.NoError(t, err)
	inv := llm.NewInvoker(gen, testPolicy, discardLogger(), llm.WithSleeper(&recordingSleeper{}))
	return llm.NewReviewService("gemini-2.5-flash", prompts, inv, recorder, discardLogger())
}

func TestReviewService_EmptyCodeIsRejectedLocally(t *testing.T) {
	for _, code := range []string{"", "   \n\t"} {
		ctrl := gomock.NewController(t)
		gen := mocks.NewMockGenerator(ctrl)
		gen.EXPECT().Generate(gomock.Any(), gomock.Any()).Times(0)
		recorder := &recordingRecorder{}

		svc := newReviewService(t, gen, recorder)
		result, err := svc.Review(context.Background(), core.ReviewRequest{Code: code})

		assert.Empty(t, result.Text)
		var se *core.ServiceError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, http.StatusBadRequest, se.StatusCode)
		assert.Equal(t, core.KindInput, se.Kind)
		assert.ErrorIs(t, err, core.ErrEmptyCode)
		assert.Equal(t, []string{string(core.KindInput)}, recorder.results)
	}
}

func TestReviewService_EndToEnd(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mocks.NewMockGenerator(ctrl)
	recorder := &recordingRecorder{}

	var captured llm.InvocationParams
	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params llm.InvocationParams) (any, error) {
			captured = params
			return &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []*genai.Part{
						{Text: "1. One-line summary: logs a constant."},
						{Text: "```javascript\nconsole.log(1)\n```"},
					}},
				}},
			}, nil
		},
	)

	svc := newReviewService(t, gen, recorder)
	result, err := svc.Review(context.Background(), core.ReviewRequest{Code: "console.log(1)", Language: "javascript"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Text)
	assert.Contains(t, result.Text, "console.log(1)")
	assert.NotContains(t, result.Text, "candidates")
	assert.Equal(t, []string{"success"}, recorder.results)

	assert.Equal(t, "gemini-2.5-flash", captured.Model)
	assert.Contains(t, captured.Prompt, "senior software engineer")
	assert.Contains(t, captured.Prompt, "9. Final verdict")
	assert.Contains(t, captured.Prompt, "User code (javascript):")
	assert.Contains(t, captured.Prompt, "```javascript\nconsole.log(1)\n```")
}

func TestReviewService_DefaultLanguage(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mocks.NewMockGenerator(ctrl)

	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params llm.InvocationParams) (any, error) {
			assert.Contains(t, params.Prompt, "```generic\n")
			return map[string]any{"text": "review"}, nil
		},
	)

	svc := newReviewService(t, gen, nil)
	result, err := svc.Review(context.Background(), core.ReviewRequest{Code: "x = 1"})

	require.NoError(t, err)
	assert.Equal(t, "review", result.Text)
}

func TestReviewService_PropagatesServiceErrorUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	gen := mocks.NewMockGenerator(ctrl)
	recorder := &recordingRecorder{}

	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(nil, overloaded()).Times(testPolicy.MaxAttempts)

	svc := newReviewService(t, gen, recorder)
	_, err := svc.Review(context.Background(), core.ReviewRequest{Code: "fn main() {}", Language: "rust"})

	var se *core.ServiceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.StatusCode)
	assert.Equal(t, core.KindExhausted, se.Kind)
	assert.Equal(t, []string{string(core.KindExhausted)}, recorder.results)
}
