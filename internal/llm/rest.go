package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// DefaultGeminiBaseURL is the public Gemini REST endpoint.
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// RESTGenerator calls the generateContent REST endpoint directly and returns
// the undecoded JSON body.
type RESTGenerator struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewRESTGenerator creates a REST based generator. An empty baseURL selects
// DefaultGeminiBaseURL.
func NewRESTGenerator(apiKey, baseURL string, client *http.Client) *RESTGenerator {
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &RESTGenerator{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type restRequest struct {
	Contents []restContent `json:"contents"`
}

type restContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []restPart `json:"parts"`
}

type restPart struct {
	Text string `json:"text"`
}

type restErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// APIError is returned for non-2xx responses from the REST endpoint.
type APIError struct {
	Response *http.Response
	Message  string
	Status   string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("%s: %s", e.Status, e.Message)
	}
	return e.Message
}

// HTTPResponse exposes the failed response for status resolution.
func (e *APIError) HTTPResponse() *http.Response {
	return e.Response
}

func (g *RESTGenerator) Generate(ctx context.Context, params InvocationParams) (any, error) {
	payload, err := json.Marshal(restRequest{
		Contents: []restContent{{Role: "user", Parts: []restPart{{Text: params.Prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, params.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp, body)
	}
	return json.RawMessage(body), nil
}

func newAPIError(resp *http.Response, body []byte) *APIError {
	apiErr := &APIError{Response: resp, Message: http.StatusText(resp.StatusCode)}
	var parsed restErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		apiErr.Message = parsed.Error.Message
		apiErr.Status = parsed.Error.Status
	} else if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		apiErr.Message = fmt.Sprintf("API error (status %d): %s", resp.StatusCode, trimmed)
	}
	return apiErr
}
