// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing the HTTP layer and the CLI to stay decoupled from the model client.
package core

import (
	"context"
)

//go:generate go run go.uber.org/mock/mockgen -destination=../../mocks/mock_reviewer.go -package=mocks github.com/sevigo/review-relay/internal/core Reviewer

// Reviewer defines the contract for a component that turns a submitted code
// snippet into a structured review. This interface decouples the inbound
// surfaces (HTTP handler, CLI) from the model invocation mechanism.
type Reviewer interface {
	// Review validates the request, invokes the remote model and returns the
	// normalized review text. Failures are always reported as *ServiceError so
	// callers never inspect provider-specific error shapes.
	Review(ctx context.Context, req ReviewRequest) (ReviewResult, error)
}
