// Package sentence splits prose into sentences and sentences into
// comparison tokens.
package sentence

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var sentenceRe = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Split returns the trimmed sentences of text: runs of non-terminator
// characters ending in one or more of '.', '!' or '?'. Trailing text
// without a terminator is not a sentence.
func Split(text string) []string {
	matches := sentenceRe.FindAllString(text, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if s := strings.TrimSpace(m); s != "" && hasWord(s) {
			out = append(out, s)
		}
	}
	return out
}

// Tokens lowercases s, strips punctuation and keeps words longer than
// three characters.
func Tokens(s string) []string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' {
			return unicode.ToLower(r)
		}
		return -1
	}, s)

	var out []string
	for _, w := range strings.Fields(stripped) {
		if utf8.RuneCountInString(w) > 3 {
			out = append(out, w)
		}
	}
	return out
}

func hasWord(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}
