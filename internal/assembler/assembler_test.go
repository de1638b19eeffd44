package assembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MikeSquared-Agency/letterforge/internal/category"
	"github.com/MikeSquared-Agency/letterforge/internal/patterns"
	"github.com/MikeSquared-Agency/letterforge/internal/template"
)

func first(int) int { return 0 }

func TestAssemble_EmptyTemplate(t *testing.T) {
	got := New().Assemble(nil, category.Analysis{}, patterns.Set{})
	assert.Equal(t, NoTemplateMessage, got)
}

func TestAssemble_FallsBackToOriginalSentences(t *testing.T) {
	items := []template.Item{
		{Category: category.IntroductionContext, Original: "I taught Ana.", Position: template.Opening},
		{Category: category.Qualities, Original: "She is diligent.", Position: template.Middle},
		{Category: category.FurtherDiscussion, Original: "Call me.", Position: template.Closing},
	}

	got := New().Assemble(items, category.Analysis{}, patterns.Set{})

	assert.Equal(t, "I taught Ana. She is diligent. Call me.", got)
}

func TestAssemble_PrefersPatternsAtEdges(t *testing.T) {
	items := []template.Item{
		{Category: category.IntroductionContext, Original: "orig open.", Position: template.Opening},
		{Category: category.Qualities, Original: "orig middle.", Position: template.Middle},
		{Category: category.FurtherDiscussion, Original: "orig close.", Position: template.Closing},
	}
	store := category.Analysis{
		IntroductionContext: []string{"store open."},
		Qualities:           []string{"store middle."},
		FurtherDiscussion:   []string{"store close."},
	}
	set := patterns.Set{Opening: []string{"pattern open."}, Closing: []string{"pattern close."}}

	got := New().WithPicker(first).Assemble(items, store, set)

	assert.Equal(t, "pattern open. store middle. pattern close.", got)
}

func TestAssemble_EdgesUseStoreWithoutPatterns(t *testing.T) {
	items := []template.Item{
		{Category: category.Endorsement, Original: "orig.", Position: template.Opening},
		{Category: category.Commentary, Original: "orig.", Position: template.Closing},
	}
	store := category.Analysis{
		Endorsement: []string{"e1.", "e2."},
		Commentary:  []string{"c1.", "c2."},
	}
	last := func(n int) int { return n - 1 }

	got := New().WithPicker(last).Assemble(items, store, patterns.Set{})

	assert.Equal(t, "e2. c2.", got)
}

func TestAssemble_NeverDropsContent(t *testing.T) {
	items := make([]template.Item, 0, 7)
	for i, pos := range template.Tag(7) {
		items = append(items, template.Item{
			Category: category.All()[i%len(category.All())],
			Original: "Original sentence.",
			Position: pos,
		})
	}
	sparse := category.Analysis{Endorsement: []string{"Only endorsement."}}

	for _, set := range []patterns.Set{{}, {Opening: []string{"Hello."}}, {Closing: []string{"Bye."}}} {
		got := New().WithPicker(first).Assemble(items, sparse, set)
		for _, part := range strings.SplitAfter(got, ". ") {
			assert.NotEmpty(t, strings.TrimSpace(part))
		}
		assert.Equal(t, len(items), strings.Count(got, "."))
	}
}
