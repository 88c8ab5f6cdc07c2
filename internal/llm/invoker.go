package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sevigo/review-relay/internal/core"
)

// statusClientClosedRequest is reported when the caller gives up first.
const statusClientClosedRequest = 499

// InvocationParams is the immutable input of a single model invocation.
type InvocationParams struct {
	Model  string
	Prompt string
}

//go:generate go run go.uber.org/mock/mockgen -destination=../../mocks/mock_generator.go -package=mocks github.com/sevigo/review-relay/internal/llm Generator

// Generator performs one call against the remote text-generation service.
// The returned response is provider specific and is normalized by ExtractText.
type Generator interface {
	Generate(ctx context.Context, params InvocationParams) (any, error)
}

// Observer receives invocation signals. It is optional.
type Observer interface {
	ObserveAttempt(outcome string)
	ObserveRetry(attempt, status int, delay time.Duration)
}

// Attempt outcomes reported to the Observer.
const (
	OutcomeSuccess   = "success"
	OutcomeRetryable = "retryable"
	OutcomeTerminal  = "terminal"
)

type nopObserver struct{}

func (nopObserver) ObserveAttempt(string)                {}
func (nopObserver) ObserveRetry(int, int, time.Duration) {}

// Invoker calls a Generator with bounded retries on transient overload.
type Invoker struct {
	generator Generator
	policy    RetryPolicy
	sleeper   Sleeper
	observer  Observer
	logger    *slog.Logger
}

// InvokerOption customizes an Invoker.
type InvokerOption func(*Invoker)

// WithSleeper replaces the timer based wait, mainly for tests.
func WithSleeper(s Sleeper) InvokerOption {
	return func(i *Invoker) {
		if s != nil {
			i.sleeper = s
		}
	}
}

// WithObserver registers an Observer for attempt and retry signals.
func WithObserver(o Observer) InvokerOption {
	return func(i *Invoker) {
		if o != nil {
			i.observer = o
		}
	}
}

// NewInvoker creates an Invoker. A policy with MaxAttempts below 1 makes a
// single attempt.
func NewInvoker(generator Generator, policy RetryPolicy, logger *slog.Logger, opts ...InvokerOption) *Invoker {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	inv := &Invoker{
		generator: generator,
		policy:    policy,
		sleeper:   TimerSleeper,
		observer:  nopObserver{},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// Policy returns the retry policy in effect.
func (i *Invoker) Policy() RetryPolicy {
	return i.policy
}

// Invoke performs at most MaxAttempts calls. Success returns the raw response
// immediately. Any failure that ends the loop is returned as *core.ServiceError.
func (i *Invoker) Invoke(ctx context.Context, params InvocationParams) (any, error) {
	var lastErr error
	kind := core.KindFatal

	for attempt := 1; attempt <= i.policy.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, canceledError(err, lastErr)
		}

		raw, err := i.generator.Generate(ctx, params)
		if err == nil {
			i.observer.ObserveAttempt(OutcomeSuccess)
			return raw, nil
		}
		lastErr = err

		if ctxErr := ctx.Err(); ctxErr != nil {
			i.observer.ObserveAttempt(OutcomeTerminal)
			return nil, canceledError(ctxErr, lastErr)
		}

		if !IsRetryable(err) {
			i.observer.ObserveAttempt(OutcomeTerminal)
			kind = core.KindFatal
			break
		}

		i.observer.ObserveAttempt(OutcomeRetryable)
		if attempt == i.policy.MaxAttempts {
			kind = core.KindExhausted
			i.logger.Warn("AI model overloaded, attempts exhausted",
				"attempt", attempt,
				"max_attempts", i.policy.MaxAttempts,
			)
			break
		}

		delay := Delay(attempt, i.policy.BaseDelay, i.policy.MaxDelay)
		status, _ := StatusOf(err)
		i.logger.Warn("AI model overloaded, retrying",
			"status", status,
			"attempt", attempt,
			"max_attempts", i.policy.MaxAttempts,
			"delay", delay,
		)
		i.observer.ObserveRetry(attempt, status, delay)

		if err := i.sleeper.Sleep(ctx, delay); err != nil {
			return nil, canceledError(err, lastErr)
		}
	}

	return nil, terminalError(kind, lastErr)
}

// terminalError is the single point where remote failures become ServiceErrors.
func terminalError(kind core.ErrorKind, cause error) *core.ServiceError {
	status, ok := StatusOf(cause)
	if !ok {
		status = http.StatusInternalServerError
	}
	return &core.ServiceError{
		StatusCode: status,
		Message:    "AI service error: " + failureMessage(cause),
		Kind:       kind,
		Err:        cause,
	}
}

func canceledError(ctxErr, lastErr error) *core.ServiceError {
	status := statusClientClosedRequest
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}
	cause := ctxErr
	if lastErr != nil {
		cause = errors.Join(ctxErr, lastErr)
	}
	return &core.ServiceError{
		StatusCode: status,
		Message:    fmt.Sprintf("AI service error: request abandoned: %v", ctxErr),
		Kind:       core.KindCanceled,
		Err:        cause,
	}
}

func failureMessage(err error) string {
	if err == nil {
		return "unknown AI service error"
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	if b, mErr := json.Marshal(err); mErr == nil && len(b) > 0 && string(b) != "{}" && string(b) != "null" {
		return string(b)
	}
	return "unknown AI service error"
}
