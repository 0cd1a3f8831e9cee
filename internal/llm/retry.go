package llm

import (
	"context"
	"fmt"
	"time"
)

// RetryPolicy is an explicit, injectable retry schedule for capability calls.
// It replaces ad-hoc retry decorators so the backoff behavior can be tested
// without any network involvement.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int `json:"max_attempts" validate:"gte=1,lte=10"`
	// InitialBackoff is the delay before the second attempt.
	InitialBackoff time.Duration `json:"initial_backoff"`
	// Multiplier scales the backoff after each failed attempt.
	Multiplier float64 `json:"multiplier"`
	// MaxBackoff caps the delay between attempts.
	MaxBackoff time.Duration `json:"max_backoff"`
}

// DefaultRetryPolicy returns the standard schedule: 3 attempts, 500ms initial
// backoff doubling up to 5s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    3,
		InitialBackoff: 500 * time.Millisecond,
		Multiplier:     2.0,
		MaxBackoff:     5 * time.Second,
	}
}

// WithRetry wraps a client so every call follows the policy's schedule.
// A single-attempt policy returns the client unwrapped.
func WithRetry(client Client, policy RetryPolicy) Client {
	if policy.MaxAttempts <= 1 {
		return client
	}
	return &retryClient{inner: client, policy: policy}
}

type retryClient struct {
	inner  Client
	policy RetryPolicy
}

func (r *retryClient) Generate(ctx context.Context, prompt string) (string, error) {
	var out string
	err := r.policy.Do(ctx, func(ctx context.Context) error {
		var callErr error
		out, callErr = r.inner.Generate(ctx, prompt)
		return callErr
	})
	return out, err
}

func (r *retryClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	var out string
	err := r.policy.Do(ctx, func(ctx context.Context) error {
		var callErr error
		out, callErr = r.inner.GenerateJSON(ctx, prompt)
		return callErr
	})
	return out, err
}

func (r *retryClient) Close() error { return r.inner.Close() }

// Do runs fn until it succeeds, attempts are exhausted, or the context is
// done. The last error is returned wrapped with the attempt count.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	backoff := p.InitialBackoff
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = time.Duration(float64(backoff) * p.Multiplier)
		if p.MaxBackoff > 0 && backoff > p.MaxBackoff {
			backoff = p.MaxBackoff
		}
	}
	return fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
