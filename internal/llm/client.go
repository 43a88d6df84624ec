package llm

import (
	"context"
	"time"
)

// Client is the provider-agnostic interface for model calls: one prompt in,
// one text payload back. Each call blocks until the full response arrives.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds provider selection and connection settings for model calls.
type Config struct {
	Provider string
	Model    string
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// withTimeout applies the configured per-call timeout when one is set.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return ctx, func() {}
}
