package categorizer

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/MikeSquared-Agency/letterforge/internal/category"
)

type labelTier string

const (
	tierJSON       labelTier = "json"
	tierLines      labelTier = "lines"
	tierPositional labelTier = "positional"
)

// balancedSpan returns the first balanced open...close span of s,
// ignoring delimiters inside JSON strings.
func balancedSpan(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// decodeLenient decodes span into v, retrying once after jsonrepair.
func decodeLenient(span string, v any) bool {
	if json.Unmarshal([]byte(span), v) == nil {
		return true
	}
	repaired, err := jsonrepair.JSONRepair(span)
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(repaired), v) == nil
}

// parseGrouped decodes the first JSON object in text. Keys are matched to
// categories leniently; values that are not arrays of strings contribute
// nothing.
func parseGrouped(text string) (category.Analysis, bool) {
	span, ok := balancedSpan(text, '{', '}')
	if !ok {
		return category.Analysis{}, false
	}

	var raw map[string]any
	if !decodeLenient(span, &raw) || raw == nil {
		return category.Analysis{}, false
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out category.Analysis
	for _, k := range keys {
		c, ok := category.Match(k)
		if !ok {
			continue
		}
		items, isArray := raw[k].([]any)
		if !isArray {
			continue
		}
		for _, item := range items {
			if s, isString := item.(string); isString {
				out.Add(c, s)
			}
		}
	}
	return out, true
}

// scanGrouped reads free-form output where category header lines
// introduce the sentences that follow them.
func scanGrouped(text string) category.Analysis {
	var out category.Analysis
	var active category.Category

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if c, ok := category.HeaderCategory(line); ok {
			active = c
			continue
		}
		if active == "" || isBullet(line) {
			continue
		}
		out.Add(active, line)
	}
	return out
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•")
}

// parseLabels extracts one label per sentence, trying a JSON array, then
// label lines, then a positional guess.
func parseLabels(text string, n int) ([]category.Category, labelTier) {
	if span, ok := balancedSpan(text, '[', ']'); ok {
		var raw []any
		if decodeLenient(span, &raw) && len(raw) > 0 {
			labels := make([]category.Category, 0, len(raw))
			for _, item := range raw {
				s, _ := item.(string)
				labels = append(labels, category.Normalize(s))
			}
			return labels, tierJSON
		}
	}

	var labels []category.Category
	for _, line := range strings.Split(text, "\n") {
		if c, ok := category.Match(stripListMarker(line)); ok {
			labels = append(labels, c)
		}
	}
	if len(labels) > 0 {
		return labels, tierLines
	}

	return positionalLabels(n), tierPositional
}

// stripListMarker removes numbering, bullets and quoting around a label.
func stripListMarker(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimLeft(line, "-*•# ")
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')' || line[i] == ':') {
		line = line[i+1:]
	}
	return strings.Trim(line, "\"'`,*: ")
}

// positionalLabels guesses labels from position alone: the first 20% of
// a letter introduces, the next 20% describes qualities, the next 30%
// endorses, the next 20% comments, and the rest closes.
func positionalLabels(n int) []category.Category {
	labels := make([]category.Category, n)
	for i := range labels {
		frac := float64(i) / float64(n)
		switch {
		case frac < 0.2:
			labels[i] = category.IntroductionContext
		case frac < 0.4:
			labels[i] = category.Qualities
		case frac < 0.7:
			labels[i] = category.Endorsement
		case frac < 0.9:
			labels[i] = category.Commentary
		default:
			labels[i] = category.FurtherDiscussion
		}
	}
	return labels
}

// align pads with commentary or truncates so len(labels) == n.
func align(labels []category.Category, n int) []category.Category {
	if len(labels) >= n {
		return labels[:n]
	}
	out := make([]category.Category, n)
	copy(out, labels)
	for i := len(labels); i < n; i++ {
		out[i] = category.Commentary
	}
	return out
}
