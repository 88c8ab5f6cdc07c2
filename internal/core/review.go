package core

import "strings"

// DefaultLanguage is used when a request does not declare a language.
const DefaultLanguage = "generic"

// ReviewRequest is the inbound payload for a single review.
type ReviewRequest struct {
	Code     string `json:"code"`
	Language string `json:"language,omitempty"`
}

// Normalized returns a copy with the language defaulted and trimmed.
func (r ReviewRequest) Normalized() ReviewRequest {
	r.Language = strings.TrimSpace(r.Language)
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
	return r
}

// Validate reports ErrEmptyCode when there is nothing to review.
func (r ReviewRequest) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return ErrEmptyCode
	}
	return nil
}

// ReviewResult carries the Markdown review produced by the model.
type ReviewResult struct {
	Text string
}

// PromptData is a type-safe struct for rendering review prompts.
type PromptData struct {
	Language string
	Code     string
}
