package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilar(t *testing.T) {
	tests := []struct {
		name      string
		sentences []string
		want      bool
	}{
		{"empty group", nil, true},
		{"single sentence", []string{"Anything at all."}, true},
		{"missing sentence", []string{"Her lab work was excellent.", ""}, false},
		{
			"near-equal length with shared tokens",
			[]string{
				"Maria consistently produced thoughtful laboratory reports.",
				"David consistently produced thoughtful laboratory notebooks.",
			},
			true,
		},
		{
			"near-equal length without shared tokens",
			[]string{
				"Maria painted murals across the school cafeteria.",
				"David organized tutoring sessions for freshmen.",
			},
			false,
		},
		{
			"low overlap rescued by closing phrase",
			[]string{
				"Sincerely, Margaret Smith.",
				"Sincerely yours, Dr. Olsen.",
			},
			true,
		},
		{
			"low overlap rescued by opening phrase",
			[]string{
				"I am writing on behalf of Jane.",
				"I am writing about Tom Baker.",
			},
			true,
		},
		{
			"identical wording at wildly different length",
			[]string{
				"I highly recommend Jane.",
				"I highly recommend Jane, who is the most diligent and generous student I have taught in twenty years.",
			},
			false,
		},
		{
			"one outlier among many is tolerated",
			[]string{
				"Please contact me with any questions about Jane.",
				"Please contact me with any questions about Omar.",
				"Please contact me with any questions about Lena.",
				"Please contact me with any questions about Kwame.",
				"Questions?",
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Similar(tt.sentences))
		})
	}
}

// Length outliers are measured against the group mean, so for a pair the
// cut-off falls at a length ratio of 1.3/0.7.
func TestSimilar_PairLengthRatio(t *testing.T) {
	short := "I highly recommend Jane."
	medium := "I highly recommend Jane to your lab."
	long := "I highly recommend Jane to your graduate program."

	ratio := func(a, b string) float64 { return float64(len(b)) / float64(len(a)) }
	assert.InDelta(t, 1.5, ratio(short, medium), 0.01)
	assert.Greater(t, ratio(short, long), 1.3/0.7)

	assert.True(t, Similar([]string{short, medium}), "ratio 1.5 stays within the mean tolerance")
	assert.False(t, Similar([]string{short, long}), "ratio above 1.86 drops both sentences")
}

func TestAverageJaccard(t *testing.T) {
	assert.Equal(t, 1.0, averageJaccard([]string{"Brilliant chemistry student.", "brilliant CHEMISTRY student!"}))
	assert.Equal(t, 0.0, averageJaccard([]string{"Art.", "Sun."}))
	assert.InDelta(t, 1.0/3.0, averageJaccard([]string{"alpha bravo", "bravo charlie"}), 1e-9)
}
