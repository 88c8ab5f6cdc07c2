package llm

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"github.com/sevigo/review-relay/internal/core"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantOK     bool
	}{
		{
			name:       "Direct status",
			err:        &core.ServiceError{StatusCode: 503, Message: "overloaded"},
			wantStatus: 503,
			wantOK:     true,
		},
		{
			name:       "Nested response status",
			err:        &APIError{Response: &http.Response{StatusCode: 429}, Message: "slow down"},
			wantStatus: 429,
			wantOK:     true,
		},
		{
			name:       "Nested error code value",
			err:        genai.APIError{Code: 503, Message: "The model is overloaded.", Status: "UNAVAILABLE"},
			wantStatus: 503,
			wantOK:     true,
		},
		{
			name:       "Nested error code pointer",
			err:        &genai.APIError{Code: 400, Message: "bad request"},
			wantStatus: 400,
			wantOK:     true,
		},
		{
			name:       "Wrapped error code",
			err:        fmt.Errorf("generate: %w", genai.APIError{Code: 500}),
			wantStatus: 500,
			wantOK:     true,
		},
		{
			name:       "Direct status wins over nested code",
			err:        &core.ServiceError{StatusCode: 401, Err: genai.APIError{Code: 503}},
			wantStatus: 401,
			wantOK:     true,
		},
		{
			name:       "Response without status falls through",
			err:        &APIError{Message: "no response"},
			wantStatus: 0,
			wantOK:     false,
		},
		{
			name:   "Plain error is unknown",
			err:    errors.New("connection reset by peer"),
			wantOK: false,
		},
		{
			name:   "Nil error",
			err:    nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ok := StatusOf(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "503 from SDK", err: genai.APIError{Code: 503}, want: true},
		{name: "503 from REST", err: &APIError{Response: &http.Response{StatusCode: 503}}, want: true},
		{name: "503 direct", err: &core.ServiceError{StatusCode: 503}, want: true},
		{name: "400", err: genai.APIError{Code: 400}, want: false},
		{name: "401", err: genai.APIError{Code: 401}, want: false},
		{name: "429 stays terminal", err: genai.APIError{Code: 429}, want: false},
		{name: "500", err: genai.APIError{Code: 500}, want: false},
		{name: "Unknown", err: errors.New("boom"), want: false},
		{name: "Nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
