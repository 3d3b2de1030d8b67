package llm

import (
	"context"
	"time"
)

// Provider defines the interface for LLM providers backing the reasoning
// and decision stages
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete generates one stage turn from a system role and a prompt
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one stage completion
type CompletionRequest struct {
	// System is the stage's role instruction
	System string

	// Prompt is the stage input: the shared conversation log plus the
	// current turn's task
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// CompletionResponse contains the LLM's output for one turn
type CompletionResponse struct {
	// Text is the generated stage output
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxRetries bounds retry attempts for transient API failures
	MaxRetries int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:   "", // Disabled by default
		Model:      "",
		Timeout:    30,
		MaxRetries: 3,
		MaxTokens:  1000,
	}
}

// withRetry runs fn up to attempts times with linear backoff. Context
// cancellation stops the loop immediately.
func withRetry(ctx context.Context, attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i+1) * time.Second):
		}
	}
	return err
}
