package llm

import (
	"context"
	"time"
)

// Client defines the interface for LLM providers.
type Client interface {
	// Complete sends a prompt and returns the raw text of the reply.
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// Prompt is a single-turn request.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Config holds configuration for the LLM classifier and its provider client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	MaxRetries  int
	RetryDelay  time.Duration
	CacheTTL    time.Duration
	RateLimit   int // requests per minute
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}
