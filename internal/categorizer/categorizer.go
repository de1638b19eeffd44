package categorizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MikeSquared-Agency/letterforge/internal/category"
	"github.com/MikeSquared-Agency/letterforge/internal/llm"
	"github.com/MikeSquared-Agency/letterforge/internal/sentence"
)

// AnalysisError is returned when the model call behind a categorization
// fails. Unparseable model output is never an AnalysisError.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("sentence analysis: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

type Categorizer struct {
	llm    llm.Generator
	logger *slog.Logger
}

func New(g llm.Generator, logger *slog.Logger) *Categorizer {
	return &Categorizer{llm: g, logger: logger}
}

// Categorize splits text into sentences and assigns each to exactly one
// category. The result always holds every input sentence once.
func (c *Categorizer) Categorize(ctx context.Context, text string) (category.Analysis, error) {
	sentences := sentence.Split(text)
	if len(sentences) == 0 {
		return category.Analysis{}, nil
	}

	c.logger.Info("categorizing sample", "sentences", len(sentences))

	prompt := fmt.Sprintf(analysisPrompt, strings.Join(sentences, "\n"))
	resp, err := c.llm.Generate(ctx, prompt, llm.ClassificationOptions())
	if err != nil {
		return category.Analysis{}, &AnalysisError{Err: err}
	}

	grouped, ok := parseGrouped(resp.Text)
	if !ok {
		c.logger.Warn("analysis response was not JSON, using header scan",
			"response_len", len(resp.Text),
		)
		grouped = scanGrouped(resp.Text)
	}

	result, stats := reconcile(sentences, grouped)
	if stats.unplaced > 0 || stats.unknown > 0 || stats.repeated > 0 {
		c.logger.Warn("analysis response did not cover input exactly",
			"unplaced", stats.unplaced,
			"unknown", stats.unknown,
			"repeated", stats.repeated,
		)
	}

	c.logger.Info("categorization complete",
		"introduction_context", len(result.IntroductionContext),
		"endorsement", len(result.Endorsement),
		"commentary", len(result.Commentary),
		"qualities", len(result.Qualities),
		"further_discussion", len(result.FurtherDiscussion),
	)
	return result, nil
}

// CategorizeTemplate labels each of sentences in order. The returned
// slice always has len(sentences) entries.
func (c *Categorizer) CategorizeTemplate(ctx context.Context, sentences []string) ([]category.Category, error) {
	if len(sentences) == 0 {
		return nil, nil
	}

	var numbered strings.Builder
	for i, s := range sentences {
		fmt.Fprintf(&numbered, "%d. %s\n", i+1, s)
	}
	prompt := fmt.Sprintf(templatePrompt, numbered.String(), len(sentences))

	resp, err := c.llm.Generate(ctx, prompt, llm.ClassificationOptions())
	if err != nil {
		return nil, &AnalysisError{Err: err}
	}

	labels, tier := parseLabels(resp.Text, len(sentences))
	if tier != tierJSON {
		c.logger.Warn("template labels recovered by fallback", "tier", tier)
	}
	if len(labels) != len(sentences) {
		c.logger.Warn("template label count mismatch",
			"labels", len(labels),
			"sentences", len(sentences),
		)
	}
	return align(labels, len(sentences)), nil
}

type reconcileStats struct {
	unplaced int
	unknown  int
	repeated int
}

// reconcile maps the model's grouping back onto the input sentences.
// Each input sentence keeps its first placement; strings that match no
// input are dropped; inputs the model never placed go to commentary.
func reconcile(inputs []string, grouped category.Analysis) (category.Analysis, reconcileStats) {
	var stats reconcileStats

	pending := make(map[string][]int, len(inputs))
	for i, s := range inputs {
		k := matchKey(s)
		pending[k] = append(pending[k], i)
	}
	placed := make([]category.Category, len(inputs))

	for _, c := range category.All() {
		for _, s := range grouped.Sentences(c) {
			k := matchKey(s)
			idx := pending[k]
			if len(idx) == 0 {
				if _, known := findInput(inputs, k); known {
					stats.repeated++
				} else {
					stats.unknown++
				}
				continue
			}
			placed[idx[0]] = c
			pending[k] = idx[1:]
		}
	}

	var out category.Analysis
	for _, c := range category.All() {
		for i, s := range inputs {
			if placed[i] == c {
				out.Add(c, s)
			}
		}
	}
	for i, s := range inputs {
		if placed[i] == "" {
			stats.unplaced++
			out.Add(category.Commentary, s)
		}
	}
	return out, stats
}

func findInput(inputs []string, key string) (int, bool) {
	for i, s := range inputs {
		if matchKey(s) == key {
			return i, true
		}
	}
	return -1, false
}

// matchKey compares sentences loosely: case, inner whitespace, wrapping
// quotes and trailing terminators are ignored.
func matchKey(s string) string {
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	s = strings.Trim(s, "\"'`“”‘’ ")
	return strings.TrimRight(s, ".!? ")
}
