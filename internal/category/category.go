// Package category defines the five rhetorical roles a sentence can play
// in a recommendation letter and the cumulative per-owner collection of
// categorized sentences.
package category

import "strings"

// Category is one of the five fixed rhetorical roles.
type Category string

const (
	IntroductionContext Category = "introduction_context"
	Endorsement         Category = "endorsement"
	Commentary          Category = "commentary"
	Qualities           Category = "qualities"
	FurtherDiscussion   Category = "further_discussion"
)

// All returns the categories in canonical order.
func All() []Category {
	return []Category{IntroductionContext, Endorsement, Commentary, Qualities, FurtherDiscussion}
}

// Valid reports whether c is one of the five canonical categories.
func (c Category) Valid() bool {
	switch c {
	case IntroductionContext, Endorsement, Commentary, Qualities, FurtherDiscussion:
		return true
	}
	return false
}

// Parse maps a canonical name (case-insensitive, spaces or hyphens in
// place of underscores) to a category.
func Parse(s string) (Category, bool) {
	c := Category(canonicalize(s))
	return c, c.Valid()
}

// synonyms are checked in order; the first matching fragment wins.
var synonyms = []struct {
	fragment string
	category Category
}{
	{"intro", IntroductionContext},
	{"context", IntroductionContext},
	{"endorse", Endorsement},
	{"recommend", Endorsement},
	{"qualit", Qualities},
	{"trait", Qualities},
	{"strength", Qualities},
	{"character", Qualities},
	{"further", FurtherDiscussion},
	{"discussion", FurtherDiscussion},
	{"closing", FurtherDiscussion},
	{"conclu", FurtherDiscussion},
	{"comment", Commentary},
}

// Match maps free-text labels to a category by synonym fragment.
// ok is false when nothing in label resembles a category.
func Match(label string) (Category, bool) {
	if c, ok := Parse(label); ok {
		return c, true
	}
	l := strings.ToLower(label)
	for _, s := range synonyms {
		if strings.Contains(l, s.fragment) {
			return s.category, true
		}
	}
	return "", false
}

// Normalize is Match with commentary as the default.
func Normalize(label string) Category {
	if c, ok := Match(label); ok {
		return c
	}
	return Commentary
}

var headerPhrases = []struct {
	phrase   string
	category Category
}{
	{"introduction", IntroductionContext},
	{"endorsement", Endorsement},
	{"commentary", Commentary},
	{"qualities", Qualities},
	{"further", FurtherDiscussion},
	{"discussion", FurtherDiscussion},
}

// HeaderCategory recognizes a category header line in free-form model
// output, such as "**Qualities:**". Lines that end like a sentence are
// content, not headers.
func HeaderCategory(line string) (Category, bool) {
	l := strings.ToLower(strings.TrimSpace(line))
	if l == "" || strings.HasSuffix(l, ".") || strings.HasSuffix(l, "!") || strings.HasSuffix(l, "?") {
		return "", false
	}
	if c, ok := Parse(strings.Trim(l, "#*_: ")); ok {
		return c, true
	}
	for _, h := range headerPhrases {
		if strings.Contains(l, h.phrase) {
			return h.category, true
		}
	}
	return "", false
}

func canonicalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}
