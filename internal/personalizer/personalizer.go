// Package personalizer asks the model to adapt an assembled draft to a
// specific student.
package personalizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MikeSquared-Agency/letterforge/internal/llm"
)

// FallbackMessage replaces the letter when the model gives nothing back.
const FallbackMessage = "Sorry, the letter could not be personalized right now. Please try generating it again."

type Personalizer struct {
	llm    llm.Generator
	logger *slog.Logger
}

func New(g llm.Generator, logger *slog.Logger) *Personalizer {
	return &Personalizer{llm: g, logger: logger}
}

// Personalize returns the model's rewrite of draft, or FallbackMessage
// when the call fails or yields empty text. It never returns an error.
func (p *Personalizer) Personalize(ctx context.Context, draft string, info StudentInfo, owner string) string {
	prompt := BuildPrompt(draft, info, owner)

	resp, err := p.llm.Generate(ctx, prompt, llm.PersonalizationOptions())
	if err != nil {
		p.logger.Error("personalization failed", "owner", owner, "error", err)
		return FallbackMessage
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		p.logger.Warn("personalization returned empty text", "owner", owner, "model", resp.Model)
		return FallbackMessage
	}
	return text
}

func BuildPrompt(draft string, info StudentInfo, owner string) string {
	return fmt.Sprintf(personalizePrompt,
		owner,
		info.Name,
		info.TargetProgram,
		info.Course,
		info.Term,
		info.Strength,
		strings.Join(info.CharacterWords, ", "),
		info.AcademicAnecdote,
		info.CharacterAnecdote,
		draft,
	)
}
