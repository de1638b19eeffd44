package sentence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"whitespace", "   \n ", []string{}},
		{"no terminator", "Dear committee", []string{}},
		{
			"mixed terminators",
			"I am writing for Jane. She is brilliant! Would I hire her? Yes.",
			[]string{"I am writing for Jane.", "She is brilliant!", "Would I hire her?", "Yes."},
		},
		{
			"runs of terminators and newlines",
			"Wow!!\nReally?! Trailing fragment",
			[]string{"Wow!!", "Really?!"},
		},
		{"stray ellipsis", "Hello. ... World.", []string{"Hello.", "World."}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.in))
		})
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t,
		[]string{"highly", "recommend", "janes", "work", "without", "reservation"},
		Tokens("I highly recommend Jane's work, without reservation!"),
	)
	assert.Empty(t, Tokens("I am so. To be."))
	assert.Equal(t, []string{"2024", "class"}, Tokens("In 2024, the class..."))
}
