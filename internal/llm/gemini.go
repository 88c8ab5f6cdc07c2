package llm

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// GeminiGenerator calls Gemini through the official genai SDK.
type GeminiGenerator struct {
	client  *genai.Client
	initErr error
}

// NewGeminiGenerator creates the SDK client once at startup. A failed client
// initialization, typically a missing API key, is reported on first use so the
// service can still start and surface the failure per request.
func NewGeminiGenerator(ctx context.Context, apiKey string, httpClient *http.Client) *GeminiGenerator {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return &GeminiGenerator{initErr: fmt.Errorf("failed to initialize Gemini client: %w", err)}
	}
	return &GeminiGenerator{client: client}
}

// Generate sends the prompt as a single user turn. SDK errors are returned
// unwrapped so their status code stays visible to the classifier.
func (g *GeminiGenerator) Generate(ctx context.Context, params InvocationParams) (any, error) {
	if g.initErr != nil {
		return nil, g.initErr
	}
	if g.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}

	resp, err := g.client.Models.GenerateContent(ctx, params.Model, genai.Text(params.Prompt), nil)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
