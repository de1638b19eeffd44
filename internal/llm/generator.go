package llm

import (
	"context"
	"fmt"
	"time"
)

// Options are the sampling parameters sent with every generation call.
type Options struct {
	Model       string
	Temperature float64
	TopP        float64
	MaxTokens   int
}

// ClassificationOptions favor deterministic output for labeling calls.
func ClassificationOptions() Options {
	return Options{Temperature: 0.3, TopP: 0.9, MaxTokens: 2048}
}

// PersonalizationOptions favor variety for the final rewrite.
func PersonalizationOptions() Options {
	return Options{Temperature: 0.7, TopP: 0.9, MaxTokens: 2048}
}

type Response struct {
	Text      string    `json:"text"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

// Generator is the model-call boundary: prompt in, text out.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (Response, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string, opts Options) (Response, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string, opts Options) (Response, error) {
	return f(ctx, prompt, opts)
}

// TransportError reports that the model backend was unreachable or
// answered with a failure.
type TransportError struct {
	Model string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Model, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
