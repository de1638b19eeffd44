package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeModel struct {
	text   string
	err    error
	prompt string
	opts   llms.CallOptions
}

func (f *fakeModel) GenerateContent(_ context.Context, msgs []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, o := range options {
		o(&f.opts)
	}
	if len(msgs) == 1 && len(msgs[0].Parts) == 1 {
		if tc, ok := msgs[0].Parts[0].(llms.TextContent); ok {
			f.prompt = tc.Text
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.text}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestGenerate_Success(t *testing.T) {
	fm := &fakeModel{text: "world"}
	o := newWithModel(fm, "gemma3", discardLogger())

	resp, err := o.Generate(context.Background(), "hello", ClassificationOptions())
	require.NoError(t, err)

	assert.Equal(t, "world", resp.Text)
	assert.Equal(t, "gemma3", resp.Model)
	assert.False(t, resp.CreatedAt.IsZero())
	assert.Equal(t, "hello", fm.prompt)
	assert.Equal(t, 0.3, fm.opts.Temperature)
	assert.Equal(t, 0.9, fm.opts.TopP)
	assert.Equal(t, 2048, fm.opts.MaxTokens)
	assert.Equal(t, "gemma3", fm.opts.Model)
}

func TestGenerate_ModelOverride(t *testing.T) {
	fm := &fakeModel{text: "ok"}
	o := newWithModel(fm, "gemma3", discardLogger())

	opts := PersonalizationOptions()
	opts.Model = "llama3.2"
	resp, err := o.Generate(context.Background(), "hi", opts)
	require.NoError(t, err)

	assert.Equal(t, "llama3.2", resp.Model)
	assert.Equal(t, "llama3.2", fm.opts.Model)
	assert.Equal(t, 0.7, fm.opts.Temperature)
}

func TestGenerate_TransportError(t *testing.T) {
	cause := errors.New("connection refused")
	o := newWithModel(&fakeModel{err: cause}, "gemma3", discardLogger())

	_, err := o.Generate(context.Background(), "hi", ClassificationOptions())
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "gemma3", te.Model)
	assert.ErrorIs(t, err, cause)
}

func TestGeneratorFunc(t *testing.T) {
	var g Generator = GeneratorFunc(func(_ context.Context, prompt string, opts Options) (Response, error) {
		return Response{Text: prompt + "!", Model: opts.Model}, nil
	})

	resp, err := g.Generate(context.Background(), "ping", Options{Model: "stub"})
	require.NoError(t, err)
	assert.Equal(t, "ping!", resp.Text)
	assert.Equal(t, "stub", resp.Model)
}
