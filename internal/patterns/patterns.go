// Package patterns infers a teacher's stable opening and closing
// boilerplate by comparing sentence sequences across writing samples.
package patterns

import "github.com/MikeSquared-Agency/letterforge/internal/sentence"

// Set holds boilerplate sentences in letter order.
type Set struct {
	Opening []string `json:"openingSentences"`
	Closing []string `json:"closingSentences"`
}

// Empty reports whether neither side has a pattern.
func (s Set) Empty() bool {
	return len(s.Opening) == 0 && len(s.Closing) == 0
}

// Extract splits each sample into sentences and extracts patterns.
func Extract(samples []string) Set {
	split := make([][]string, len(samples))
	for i, s := range samples {
		split[i] = sentence.Split(s)
	}
	return ExtractSentences(split)
}

// ExtractSentences scans inward from both ends of every sample while the
// sentences at each position agree. With a single sample its first and
// last sentences are returned as the only candidates.
func ExtractSentences(samples [][]string) Set {
	set := Set{Opening: []string{}, Closing: []string{}}

	switch len(samples) {
	case 0:
		return set
	case 1:
		only := samples[0]
		if len(only) > 0 {
			set.Opening = append(set.Opening, only[0])
			set.Closing = append(set.Closing, only[len(only)-1])
		}
		return set
	}

	maxLen := MaxPatternLength(samples)

	for p := 0; p < maxLen; p++ {
		column := make([]string, len(samples))
		for i, s := range samples {
			column[i] = s[p]
		}
		if !Similar(column) {
			break
		}
		set.Opening = append(set.Opening, samples[0][p])
	}

	for k := 1; k <= maxLen; k++ {
		column := make([]string, len(samples))
		for i, s := range samples {
			column[i] = s[len(s)-k]
		}
		if !Similar(column) {
			break
		}
		first := samples[0]
		set.Closing = append([]string{first[len(first)-k]}, set.Closing...)
	}

	return set
}

// MaxPatternLength is the smallest half-length over all samples, which
// keeps opening and closing windows from overlapping.
func MaxPatternLength(samples [][]string) int {
	if len(samples) == 0 {
		return 0
	}
	m := len(samples[0]) / 2
	for _, s := range samples[1:] {
		if h := len(s) / 2; h < m {
			m = h
		}
	}
	return m
}
