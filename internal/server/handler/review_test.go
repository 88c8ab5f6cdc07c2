package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sevigo/review-relay/internal/core"
	"github.com/sevigo/review-relay/mocks"
)

func TestReviewHandler_Handle(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		mockSetup  func(r *mocks.MockReviewer)
		wantStatus int
		wantBody   map[string]string
	}{
		{
			name: "Success",
			body: `{"code":"console.log(1)","language":"javascript"}`,
			mockSetup: func(r *mocks.MockReviewer) {
				r.EXPECT().Review(gomock.Any(), core.ReviewRequest{Code: "console.log(1)", Language: "javascript"}).
					Return(core.ReviewResult{Text: "## Review"}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]string{"review": "## Review"},
		},
		{
			name: "Missing code maps to 400",
			body: `{"language":"go"}`,
			mockSetup: func(r *mocks.MockReviewer) {
				r.EXPECT().Review(gomock.Any(), gomock.Any()).Return(core.ReviewResult{}, core.NewInputError(core.ErrEmptyCode))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]string{"error": "code input is required"},
		},
		{
			name: "Exhausted overload maps to 503",
			body: `{"code":"x"}`,
			mockSetup: func(r *mocks.MockReviewer) {
				r.EXPECT().Review(gomock.Any(), gomock.Any()).Return(core.ReviewResult{}, &core.ServiceError{
					StatusCode: http.StatusServiceUnavailable,
					Message:    "AI service error: The model is overloaded.",
					Kind:       core.KindExhausted,
					Err:        errors.New("raw provider payload"),
				})
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   map[string]string{"error": "AI service error: The model is overloaded."},
		},
		{
			name: "Out of range status maps to 500",
			body: `{"code":"x"}`,
			mockSetup: func(r *mocks.MockReviewer) {
				r.EXPECT().Review(gomock.Any(), gomock.Any()).Return(core.ReviewResult{}, &core.ServiceError{StatusCode: 200, Message: "odd"})
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]string{"error": "odd"},
		},
		{
			name: "Foreign error is hidden",
			body: `{"code":"x"}`,
			mockSetup: func(r *mocks.MockReviewer) {
				r.EXPECT().Review(gomock.Any(), gomock.Any()).Return(core.ReviewResult{}, errors.New("secret details"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]string{"error": "internal server error"},
		},
		{
			name:       "Malformed JSON",
			body:       `{"code":`,
			mockSetup:  func(*mocks.MockReviewer) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]string{"error": "invalid JSON body"},
		},
		{
			name:       "Oversized body",
			body:       `{"code":"` + strings.Repeat("a", maxBodyBytes) + `"}`,
			mockSetup:  func(*mocks.MockReviewer) {},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantBody:   map[string]string{"error": "request body too large"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			reviewer := mocks.NewMockReviewer(ctrl)
			tc.mockSetup(reviewer)

			h := NewReviewHandler(reviewer, slog.New(slog.NewTextHandler(io.Discard, nil)))
			req := httptest.NewRequestWithContext(context.Background(), http.MethodPost, "/ai/get-review", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()

			h.Handle(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			var got map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tc.wantBody, got)
		})
	}
}
