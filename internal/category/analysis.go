package category

import (
	"encoding/json"
	"strings"
)

// Analysis holds categorized sentences, one ordered slice per category.
type Analysis struct {
	IntroductionContext []string `json:"introduction_context"`
	Endorsement         []string `json:"endorsement"`
	Commentary          []string `json:"commentary"`
	Qualities           []string `json:"qualities"`
	FurtherDiscussion   []string `json:"further_discussion"`
}

// Sentences returns the slice for c. Unknown categories yield nil.
func (a *Analysis) Sentences(c Category) []string {
	if p := a.slot(c); p != nil {
		return *p
	}
	return nil
}

// Add appends a trimmed, non-empty sentence to c without deduplication.
func (a *Analysis) Add(c Category, s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	if p := a.slot(c); p != nil {
		*p = append(*p, s)
	}
}

// Total is the number of sentences across all categories.
func (a Analysis) Total() int {
	n := 0
	for _, c := range All() {
		n += len(a.Sentences(c))
	}
	return n
}

// Empty reports whether no category holds a sentence.
func (a Analysis) Empty() bool {
	return a.Total() == 0
}

// Counts returns per-category sentence counts.
func (a Analysis) Counts() map[Category]int {
	out := make(map[Category]int, 5)
	for _, c := range All() {
		out[c] = len(a.Sentences(c))
	}
	return out
}

// MarshalJSON always emits all five keys with arrays, never null.
func (a Analysis) MarshalJSON() ([]byte, error) {
	out := make(map[string][]string, 5)
	for _, c := range All() {
		s := a.Sentences(c)
		if s == nil {
			s = []string{}
		}
		out[string(c)] = s
	}
	return json.Marshal(out)
}

func (a *Analysis) slot(c Category) *[]string {
	switch c {
	case IntroductionContext:
		return &a.IntroductionContext
	case Endorsement:
		return &a.Endorsement
	case Commentary:
		return &a.Commentary
	case Qualities:
		return &a.Qualities
	case FurtherDiscussion:
		return &a.FurtherDiscussion
	}
	return nil
}

// Merge appends every incoming sentence whose trimmed text is not already
// present anywhere in existing. Membership is updated as sentences are
// appended, so duplicates within incoming collapse to their first
// occurrence. existing is not modified.
func Merge(existing, incoming Analysis) Analysis {
	var out Analysis
	seen := make(map[string]struct{}, existing.Total()+incoming.Total())

	for _, c := range All() {
		for _, s := range existing.Sentences(c) {
			t := strings.TrimSpace(s)
			if t == "" {
				continue
			}
			out.Add(c, t)
			seen[t] = struct{}{}
		}
	}

	for _, c := range All() {
		for _, s := range incoming.Sentences(c) {
			t := strings.TrimSpace(s)
			if t == "" {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out.Add(c, t)
		}
	}
	return out
}

// Clone returns a deep copy.
func (a Analysis) Clone() Analysis {
	var out Analysis
	for _, c := range All() {
		if src := a.Sentences(c); len(src) > 0 {
			*out.slot(c) = append([]string(nil), src...)
		}
	}
	return out
}

// OwnerKey normalizes an owner identifier by collapsing whitespace. Two
// owners differing only in whitespace share one key.
func OwnerKey(owner string) string {
	return strings.Join(strings.Fields(owner), " ")
}
