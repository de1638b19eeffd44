// Package assembler fills a template with sentences from an owner's
// category store and inferred boilerplate.
package assembler

import (
	"math/rand/v2"
	"strings"

	"github.com/MikeSquared-Agency/letterforge/internal/category"
	"github.com/MikeSquared-Agency/letterforge/internal/patterns"
	"github.com/MikeSquared-Agency/letterforge/internal/template"
)

// NoTemplateMessage is returned in place of a draft when there is
// nothing to assemble.
const NoTemplateMessage = "Sorry, there is not enough information to generate a letter yet. Please add at least one writing sample and try again."

type Assembler struct {
	pick func(n int) int
}

func New() *Assembler {
	return &Assembler{pick: rand.IntN}
}

// WithPicker replaces the uniform random choice used for every slot.
func (a *Assembler) WithPicker(pick func(n int) int) *Assembler {
	a.pick = pick
	return a
}

// Assemble produces one sentence per template item, joined by spaces.
// Opening and closing items prefer inferred boilerplate; every other
// item draws from its category, falling back to the template's own
// sentence when that category is empty.
func (a *Assembler) Assemble(items []template.Item, store category.Analysis, set patterns.Set) string {
	if len(items) == 0 {
		return NoTemplateMessage
	}

	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, a.fill(item, store, set))
	}
	return strings.Join(parts, " ")
}

func (a *Assembler) fill(item template.Item, store category.Analysis, set patterns.Set) string {
	switch {
	case item.Position == template.Opening && len(set.Opening) > 0:
		return a.choose(set.Opening)
	case item.Position == template.Closing && len(set.Closing) > 0:
		return a.choose(set.Closing)
	}
	if pool := store.Sentences(item.Category); len(pool) > 0 {
		return a.choose(pool)
	}
	return item.Original
}

func (a *Assembler) choose(pool []string) string {
	return pool[a.pick(len(pool))]
}
