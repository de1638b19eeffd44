package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const DefaultServerURL = "http://localhost:11434"

// Ollama generates text through an Ollama server.
type Ollama struct {
	model  llms.Model
	name   string
	logger *slog.Logger
	now    func() time.Time
}

func NewOllama(serverURL, model string, logger *slog.Logger) (*Ollama, error) {
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	m, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(&http.Client{Timeout: 300 * time.Second}),
	)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}
	return newWithModel(m, model, logger), nil
}

func newWithModel(m llms.Model, name string, logger *slog.Logger) *Ollama {
	return &Ollama{model: m, name: name, logger: logger, now: time.Now}
}

// Model returns the default model name.
func (o *Ollama) Model() string {
	return o.name
}

// Generate sends prompt as a single user message. Any failure from the
// backend is returned as a *TransportError; nothing is retried here.
func (o *Ollama) Generate(ctx context.Context, prompt string, opts Options) (Response, error) {
	model := opts.Model
	if model == "" {
		model = o.name
	}

	callOpts := []llms.CallOption{
		llms.WithModel(model),
		llms.WithTemperature(opts.Temperature),
	}
	if opts.TopP > 0 {
		callOpts = append(callOpts, llms.WithTopP(opts.TopP))
	}
	if opts.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(opts.MaxTokens))
	}

	start := o.now()
	text, err := llms.GenerateFromSinglePrompt(ctx, o.model, prompt, callOpts...)
	if err != nil {
		o.logger.Error("model call failed", "model", model, "error", err)
		return Response{}, &TransportError{Model: model, Err: err}
	}

	o.logger.Debug("model call complete",
		"model", model,
		"prompt_len", len(prompt),
		"response_len", len(text),
		"elapsed", o.now().Sub(start),
	)

	return Response{Text: text, Model: model, CreatedAt: o.now().UTC()}, nil
}
