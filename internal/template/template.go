// Package template turns one of an owner's writing samples into a
// positional skeleton for a new letter.
package template

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/MikeSquared-Agency/letterforge/internal/category"
	"github.com/MikeSquared-Agency/letterforge/internal/sentence"
)

type Position string

const (
	Opening Position = "opening"
	Middle  Position = "middle"
	Closing Position = "closing"
)

// InsufficientDataError reports that an operation needed at least one
// writing sample and found none.
type InsufficientDataError struct {
	What string
}

func (e *InsufficientDataError) Error() string {
	return "insufficient data: " + e.What
}

// Is lets errors.Is match any InsufficientDataError against ErrNoTemplate.
func (e *InsufficientDataError) Is(target error) bool {
	_, ok := target.(*InsufficientDataError)
	return ok
}

var ErrNoTemplate error = &InsufficientDataError{What: "no writing samples to build a template from"}

type Item struct {
	Category category.Category `json:"category"`
	Original string            `json:"originalSentence"`
	Position Position          `json:"position"`
}

// Labeler assigns one category per sentence.
type Labeler interface {
	CategorizeTemplate(ctx context.Context, sentences []string) ([]category.Category, error)
}

type Builder struct {
	labeler Labeler
	pick    func(n int) int
	logger  *slog.Logger
}

func NewBuilder(labeler Labeler, logger *slog.Logger) *Builder {
	return &Builder{labeler: labeler, pick: rand.IntN, logger: logger}
}

// WithPicker replaces the uniform random sample choice.
func (b *Builder) WithPicker(pick func(n int) int) *Builder {
	b.pick = pick
	return b
}

// Build picks one sample, labels its sentences and tags positions.
func (b *Builder) Build(ctx context.Context, samples []string) ([]Item, error) {
	if len(samples) == 0 {
		return nil, ErrNoTemplate
	}

	chosen := b.pick(len(samples))
	sentences := sentence.Split(samples[chosen])

	labels, err := b.labeler.CategorizeTemplate(ctx, sentences)
	if err != nil {
		return nil, fmt.Errorf("label template sentences: %w", err)
	}
	if len(labels) != len(sentences) {
		return nil, fmt.Errorf("labeler returned %d labels for %d sentences", len(labels), len(sentences))
	}

	positions := Tag(len(sentences))
	items := make([]Item, len(sentences))
	for i, s := range sentences {
		items[i] = Item{Category: labels[i], Original: s, Position: positions[i]}
	}

	b.logger.Info("template built", "sample_index", chosen, "items", len(items))
	return items, nil
}

// Tag returns the position of each of n template items. Index 0 is
// always opening. The last two items close a template of three or more;
// shorter templates close on their final item only.
func Tag(n int) []Position {
	out := make([]Position, n)
	closingFrom := n - 2
	if n < 3 {
		closingFrom = n - 1
	}
	for i := range out {
		switch {
		case i == 0:
			out[i] = Opening
		case i >= closingFrom:
			out[i] = Closing
		default:
			out[i] = Middle
		}
	}
	return out
}

// IsInsufficientData reports whether err stems from missing samples.
func IsInsufficientData(err error) bool {
	return errors.Is(err, ErrNoTemplate)
}
