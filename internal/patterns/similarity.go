package patterns

import (
	"math"
	"strings"

	"github.com/MikeSquared-Agency/letterforge/internal/sentence"
)

const (
	// lengthTolerance is the allowed deviation of a sentence's length from
	// the group mean before it is treated as an outlier.
	lengthTolerance = 0.3
	// maxOutlierFraction is the share of outliers above which a group is
	// too varied to be a stable pattern.
	maxOutlierFraction = 0.3
	// jaccardThreshold is the minimum average pairwise token overlap.
	jaccardThreshold = 0.3
)

var openingPhrases = []string{
	"i am writing",
	"it is my pleasure",
	"i am pleased",
	"to whom it may concern",
	"i have known",
	"i am delighted",
	"it is with great pleasure",
}

var closingPhrases = []string{
	"sincerely",
	"i highly recommend",
	"please contact me",
	"please feel free",
	"do not hesitate",
	"without reservation",
	"best regards",
	"i recommend",
	"at your convenience",
}

// Similar reports whether sentences, one per sample at the same position,
// are close enough to count as one boilerplate sentence.
func Similar(sentences []string) bool {
	if len(sentences) < 2 {
		return true
	}
	for _, s := range sentences {
		if strings.TrimSpace(s) == "" {
			return false
		}
	}

	kept := withinMeanLength(sentences)
	removed := len(sentences) - len(kept)
	if float64(removed)/float64(len(sentences)) > maxOutlierFraction {
		return false
	}

	if hasBoilerplatePhrase(kept) {
		return true
	}
	return averageJaccard(kept) >= jaccardThreshold
}

func withinMeanLength(sentences []string) []string {
	total := 0
	for _, s := range sentences {
		total += len(s)
	}
	mean := float64(total) / float64(len(sentences))

	kept := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if math.Abs(float64(len(s))-mean) <= mean*lengthTolerance {
			kept = append(kept, s)
		}
	}
	return kept
}

func hasBoilerplatePhrase(sentences []string) bool {
	for _, s := range sentences {
		l := strings.ToLower(s)
		for _, p := range openingPhrases {
			if strings.Contains(l, p) {
				return true
			}
		}
		for _, p := range closingPhrases {
			if strings.Contains(l, p) {
				return true
			}
		}
	}
	return false
}

// averageJaccard is the mean Jaccard index over all token-set pairs.
func averageJaccard(sentences []string) float64 {
	sets := make([]map[string]struct{}, len(sentences))
	for i, s := range sentences {
		set := make(map[string]struct{})
		for _, tok := range sentence.Tokens(s) {
			set[tok] = struct{}{}
		}
		sets[i] = set
	}

	var sum float64
	pairs := 0
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			sum += jaccard(sets[i], sets[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return sum / float64(pairs)
}

func jaccard(a, b map[string]struct{}) float64 {
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
